package session

import (
	"fmt"

	"github.com/sprite-ai/callguard/internal/model"
)

// CallState returns the current call state.
func (s *Session) CallState() model.CallState { return s.call }

// Elapsed returns the seconds the current (or last) call has been active.
func (s *Session) Elapsed() int { return s.clock.elapsed }

// Muted reports the microphone toggle.
func (s *Session) Muted() bool { return s.muted }

// Speaker reports the speaker toggle.
func (s *Session) Speaker() bool { return s.speaker }

func (s *Session) require(want model.CallState, action string) error {
	if s.call != want {
		return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, s.call)
	}
	return nil
}

// enterActive resets the per-call controls. Mute and speaker are cleared
// here, on the way in, rather than when a call ends.
func (s *Session) enterActive() {
	s.call = model.CallActive
	s.muted = false
	s.speaker = false
	s.bubbleOpen = false
	s.clock.start(0)
}

// leaveCall tears down what only makes sense during a call: the call clock
// and any challenge put to the caller.
func (s *Session) leaveCall() {
	s.call = model.CallIdle
	s.bubbleOpen = false
	s.clock.stop()
	s.dropChallenge()
}

// StartCall starts a demo call from idle.
func (s *Session) StartCall() error {
	if err := s.require(model.CallIdle, "start a call"); err != nil {
		return err
	}
	s.enterActive()
	s.status = StatusAssessing
	s.record(msgStartCall)
	s.logger.Debug("call started")
	return nil
}

// Incoming simulates a ringing call.
func (s *Session) Incoming() error {
	if err := s.require(model.CallIdle, "ring"); err != nil {
		return err
	}
	s.call = model.CallIncoming
	s.bubbleOpen = false
	s.record(msgIncoming)
	s.logger.Debug("incoming call")
	return nil
}

// Accept answers a ringing call.
func (s *Session) Accept() error {
	if err := s.require(model.CallIncoming, "accept"); err != nil {
		return err
	}
	s.enterActive()
	s.record(msgAccept)
	s.logger.Debug("call accepted")
	return nil
}

// Decline rejects a ringing call.
func (s *Session) Decline() error {
	if err := s.require(model.CallIncoming, "decline"); err != nil {
		return err
	}
	s.leaveCall()
	s.record(msgDecline)
	s.logger.Debug("call declined")
	return nil
}

// EndCall hangs up an active call.
func (s *Session) EndCall() error {
	if err := s.require(model.CallActive, "end the call"); err != nil {
		return err
	}
	s.leaveCall()
	s.record(msgEndCall)
	s.logger.Debug("call ended", "elapsed", s.clock.elapsed)
	return nil
}

// ToggleMute flips the microphone during a call.
func (s *Session) ToggleMute() error {
	if s.call != model.CallActive {
		return ErrCallInactive
	}
	s.muted = !s.muted
	if s.muted {
		s.record(msgMuteOn)
	} else {
		s.record(msgMuteOff)
	}
	return nil
}

// ToggleSpeaker flips the speaker during a call.
func (s *Session) ToggleSpeaker() error {
	if s.call != model.CallActive {
		return ErrCallInactive
	}
	s.speaker = !s.speaker
	if s.speaker {
		s.record(msgSpeakerOn)
	} else {
		s.record(msgSpeakerOff)
	}
	return nil
}

// BubbleVisible reports whether the floating assistant bubble can be shown.
func (s *Session) BubbleVisible() bool {
	return s.call == model.CallActive
}

// AssistantVisible reports whether the expanded assistant panel is shown.
func (s *Session) AssistantVisible() bool {
	return s.bubbleOpen && s.BubbleVisible()
}

// ToggleBubble expands or collapses the assistant panel.
func (s *Session) ToggleBubble() {
	s.bubbleOpen = !s.bubbleOpen
}

// OpenBubble expands the assistant panel.
func (s *Session) OpenBubble() {
	s.bubbleOpen = true
}

// CloseBubble collapses the assistant panel.
func (s *Session) CloseBubble() {
	s.bubbleOpen = false
}
