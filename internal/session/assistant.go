package session

import (
	"fmt"

	"github.com/sprite-ai/callguard/internal/clipboard"
	"github.com/sprite-ai/callguard/internal/evidence"
	"github.com/sprite-ai/callguard/internal/model"
	"github.com/sprite-ai/callguard/internal/signal"
)

// Selected returns the manually tagged signal ids in the order they were
// tagged.
func (s *Session) Selected() []string {
	return append([]string(nil), s.selected...)
}

// IsSelected reports whether id has been tagged.
func (s *Session) IsSelected(id string) bool {
	for _, sel := range s.selected {
		if sel == id {
			return true
		}
	}
	return false
}

// Text returns the free-text call summary.
func (s *Session) Text() string { return s.text }

// SafetyPause returns the seconds left on the safety pause.
func (s *Session) SafetyPause() int { return s.pause.remaining }

// ToggleSignal tags or untags a signal.
func (s *Session) ToggleSignal(id string) error {
	if !s.cat.Has(id) {
		return fmt.Errorf("%w: %q", signal.ErrUnknownSignal, id)
	}
	wasUrgent := s.Assessment().Urgent()

	if s.IsSelected(id) {
		next := make([]string, 0, len(s.selected))
		for _, sel := range s.selected {
			if sel != id {
				next = append(next, sel)
			}
		}
		s.selected = next
	} else {
		s.selected = append(s.selected, id)
	}

	s.updateUrgency(wasUrgent)
	return nil
}

// SetText replaces the call summary.
func (s *Session) SetText(text string) {
	wasUrgent := s.Assessment().Urgent()
	s.text = text
	s.updateUrgency(wasUrgent)
}

// VoiceDemo fills the summary with a canned transcription.
func (s *Session) VoiceDemo() {
	s.SetText(SampleVoice)
	s.record(msgVoiceDemo)
}

// updateUrgency starts the safety pause when urgency appears and clears it
// when urgency goes away. Staying urgent leaves a running pause alone.
func (s *Session) updateUrgency(wasUrgent bool) {
	urgent := s.Assessment().Urgent()
	switch {
	case urgent && !wasUrgent:
		s.pause.start(SafetyPauseSeconds)
		s.logger.Debug("safety pause started", "seconds", SafetyPauseSeconds)
	case !urgent && wasUrgent:
		s.pause.reset()
	}
}

// Challenge returns the running challenge, or nil.
func (s *Session) Challenge() *ChallengeView {
	if s.challenge == nil {
		return nil
	}
	return &ChallengeView{
		Prompt:           s.challenge.prompt,
		SecondsRemaining: s.challenge.timer.remaining,
	}
}

// StartChallenge puts a random liveness prompt to the caller with a 30 second
// window. A running challenge is replaced.
func (s *Session) StartChallenge() (string, error) {
	if s.call != model.CallActive {
		return "", ErrCallInactive
	}
	s.dropChallenge()

	prompt := ChallengePresets[s.rng.IntN(len(ChallengePresets))]
	c := &challenge{prompt: prompt}
	c.timer = countdown{sched: s.sched, onTick: s.changed}
	c.timer.start(ChallengeSeconds)
	s.challenge = c

	s.record(msgStartChalPfx + prompt)
	return prompt, nil
}

// StopChallenge removes the challenge entirely.
func (s *Session) StopChallenge() {
	s.dropChallenge()
	s.record(msgStopChallenge)
}

func (s *Session) dropChallenge() {
	if s.challenge != nil {
		s.challenge.timer.stop()
		s.challenge = nil
	}
}

// CopiedScript returns the id of the script whose copy is still being
// acknowledged, or "".
func (s *Session) CopiedScript() string { return s.copied.value }

// Exported reports whether an export is still being acknowledged.
func (s *Session) Exported() bool { return s.exported.value != "" }

// CopyScript copies a response script. On failure nothing is logged or
// acknowledged and ok is false.
func (s *Session) CopyScript(id string) (ok bool, err error) {
	script, found := findScript(id)
	if !found {
		return false, fmt.Errorf("%w: %q", ErrUnknownScript, id)
	}
	if s.writeClipboard(script.Text) != nil {
		return false, nil
	}
	s.copied.set(script.ID, CopyAckDuration)
	s.record(msgCopyPfx + script.Text)
	return true, nil
}

func (s *Session) writeClipboard(text string) error {
	if s.clip == nil {
		return clipboard.ErrUnavailable
	}
	if err := s.clip.WriteText(text); err != nil {
		s.logger.Debug("clipboard write failed", "error", err)
		return err
	}
	return nil
}

// CallBack logs a call back to the first trusted contact.
func (s *Session) CallBack() (Contact, bool) {
	if len(s.directory) == 0 {
		return Contact{}, false
	}
	c := s.directory[0]
	s.record(fmt.Sprintf("โทรกลับทางการ: %s (%s)", c.Name, c.Number))
	return c, true
}

// Status returns the case status.
func (s *Session) Status() string { return s.status }

// StopAndReport marks the transaction as stopped.
func (s *Session) StopAndReport() {
	s.status = StatusStopped
	s.record(msgStopReport)
}

// Evidence returns the retained evidence events, newest first.
func (s *Session) Evidence() []evidence.Event {
	return s.log.Events()
}

// EvidencePack assembles the export for the current state.
func (s *Session) EvidencePack() evidence.Pack {
	return evidence.Pack{
		CaseID:    s.decoy.CaseID,
		RiskLabel: s.Assessment().Level.Label(),
		Status:    s.status,
		Events:    s.log.Events(),
	}
}

// ExportEvidence copies the evidence pack. It returns the exported text and
// whether the copy succeeded.
func (s *Session) ExportEvidence() (string, bool) {
	text := s.EvidencePack().String()
	if err := s.writeClipboard(text); err != nil {
		return text, false
	}
	s.exported.set("pack", ExportAckDuration)
	s.record(msgExported)
	return text, true
}
