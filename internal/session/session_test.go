package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprite-ai/callguard/internal/clipboard"
	"github.com/sprite-ai/callguard/internal/decoy"
	"github.com/sprite-ai/callguard/internal/evidence"
	"github.com/sprite-ai/callguard/internal/model"
	"github.com/sprite-ai/callguard/internal/schedule"
	"github.com/sprite-ai/callguard/internal/signal"
)

var epoch = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	s     *Session
	sched *schedule.Manual
	clip  *clipboard.Buffer
	ticks int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sched: schedule.NewManual(epoch),
		clip:  &clipboard.Buffer{},
	}
	s, err := New(Options{
		ID:        "test-session",
		Scheduler: f.sched,
		Clipboard: f.clip,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		OnTick:    func() { f.ticks++ },
	})
	require.NoError(t, err)
	f.s = s
	return f
}

func newActiveFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.s.StartCall())
	return f
}

func TestNewRequiresScheduler(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestInitialState(t *testing.T) {
	f := newFixture(t)
	snap := f.s.Snapshot()

	assert.Equal(t, model.CallIdle, snap.Call)
	assert.Equal(t, StatusAssessing, snap.Status)
	assert.Equal(t, model.RiskGreen, snap.Risk.Level)
	assert.Nil(t, snap.Challenge)
	assert.False(t, snap.BubbleVisible)
	require.Len(t, snap.Evidence, 1)
	assert.Equal(t, "--:--:--", snap.Evidence[0].Time)
	assert.Equal(t, decoy.ForSession("test-session", "", ""), snap.Decoy)
}

func TestCallLifecycle(t *testing.T) {
	f := newFixture(t)
	s := f.s

	require.NoError(t, s.Incoming())
	assert.Equal(t, model.CallIncoming, s.CallState())
	assert.False(t, s.BubbleVisible())

	require.NoError(t, s.Accept())
	assert.Equal(t, model.CallActive, s.CallState())
	assert.Equal(t, 0, s.Elapsed())
	assert.True(t, s.BubbleVisible())

	require.NoError(t, s.EndCall())
	assert.Equal(t, model.CallIdle, s.CallState())

	require.NoError(t, s.Incoming())
	require.NoError(t, s.Decline())
	assert.Equal(t, model.CallIdle, s.CallState())

	messages := eventMessages(s.Evidence())
	assert.Equal(t, []string{msgDecline, msgIncoming, msgEndCall, msgAccept, msgIncoming, msgReady}, messages)
}

func TestInvalidTransitions(t *testing.T) {
	f := newFixture(t)
	s := f.s

	assert.ErrorIs(t, s.Accept(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Decline(), ErrInvalidTransition)
	assert.ErrorIs(t, s.EndCall(), ErrInvalidTransition)

	require.NoError(t, s.StartCall())
	assert.ErrorIs(t, s.StartCall(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Incoming(), ErrInvalidTransition)
	assert.Equal(t, model.CallActive, s.CallState())
	assert.Len(t, s.Evidence(), 2, "failed transitions log nothing")
}

func TestElapsedOnlyAdvancesWhileActive(t *testing.T) {
	f := newFixture(t)

	f.sched.Advance(5 * time.Second)
	assert.Equal(t, 0, f.s.Elapsed())

	require.NoError(t, f.s.StartCall())
	f.sched.Advance(65 * time.Second)
	assert.Equal(t, 65, f.s.Elapsed())
	assert.Equal(t, "01:05", f.s.Snapshot().Duration)

	require.NoError(t, f.s.EndCall())
	f.sched.Advance(10 * time.Second)
	assert.Equal(t, 65, f.s.Elapsed())
	assert.Zero(t, f.sched.Pending(), "no timers left after hang up")
}

func TestMuteSpeakerResetOnNextCallStart(t *testing.T) {
	f := newActiveFixture(t)
	s := f.s

	require.NoError(t, s.ToggleMute())
	require.NoError(t, s.ToggleSpeaker())
	require.NoError(t, s.EndCall())

	assert.Equal(t, model.CallIdle, s.CallState())
	assert.True(t, s.Muted(), "flags survive hang up")
	assert.True(t, s.Speaker())

	require.NoError(t, s.StartCall())
	assert.False(t, s.Muted())
	assert.False(t, s.Speaker())
}

func TestMuteSpeakerRequireActiveCall(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.s.ToggleMute(), ErrCallInactive)
	assert.ErrorIs(t, f.s.ToggleSpeaker(), ErrCallInactive)

	require.NoError(t, f.s.StartCall())
	require.NoError(t, f.s.ToggleMute())
	require.NoError(t, f.s.ToggleMute())
	require.NoError(t, f.s.ToggleSpeaker())

	messages := eventMessages(f.s.Evidence())
	assert.Equal(t, []string{msgSpeakerOn, msgMuteOff, msgMuteOn, msgStartCall}, messages[:4])
}

func TestAssistantVisibility(t *testing.T) {
	f := newFixture(t)
	s := f.s

	s.OpenBubble()
	assert.False(t, s.AssistantVisible(), "hidden without a call")

	require.NoError(t, s.StartCall())
	assert.False(t, s.AssistantVisible(), "starting a call collapses the panel")

	s.ToggleBubble()
	assert.True(t, s.AssistantVisible())

	require.NoError(t, s.EndCall())
	assert.False(t, s.AssistantVisible())
}

func TestSafetyPauseOnUrgentToggle(t *testing.T) {
	f := newFixture(t)
	s := f.s

	require.NoError(t, s.ToggleSignal(signal.Urgent))
	assert.Equal(t, SafetyPauseSeconds, s.SafetyPause())

	f.sched.Advance(4 * time.Second)
	assert.Equal(t, 26, s.SafetyPause())

	// still urgent: no restart
	require.NoError(t, s.ToggleSignal(signal.OTP))
	assert.Equal(t, 26, s.SafetyPause())

	require.NoError(t, s.ToggleSignal(signal.Urgent))
	assert.Equal(t, 0, s.SafetyPause())

	f.sched.Advance(time.Minute)
	assert.Equal(t, 0, s.SafetyPause())
}

func TestSafetyPauseClampsAtZero(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.ToggleSignal(signal.Urgent))

	f.sched.Advance(2 * time.Minute)
	assert.Equal(t, 0, f.s.SafetyPause())
	assert.Zero(t, f.sched.Pending())
	assert.Equal(t, SafetyPauseSeconds, f.ticks)
}

func TestSafetyPauseFromText(t *testing.T) {
	f := newFixture(t)
	s := f.s

	s.SetText("เขาเร่งด่วนมาก ห้ามโทรกลับ และให้โอนเงินทันที")
	a := s.Assessment()
	assert.ElementsMatch(t, []string{signal.Urgent, signal.Transfer, signal.NoCallback}, a.Detected)
	assert.Equal(t, model.RiskRed, a.Level)
	assert.Equal(t, SafetyPauseSeconds, s.SafetyPause())

	// urgency held by the manual tag survives clearing the text
	require.NoError(t, s.ToggleSignal(signal.Urgent))
	f.sched.Advance(3 * time.Second)
	s.SetText("")
	assert.Equal(t, 27, s.SafetyPause())

	require.NoError(t, s.ToggleSignal(signal.Urgent))
	assert.Equal(t, 0, s.SafetyPause())
}

func TestToggleUnknownSignal(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.s.ToggleSignal("nope"), signal.ErrUnknownSignal)
	assert.Empty(t, f.s.Selected())
}

func TestOTPOnlyIsYellow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.ToggleSignal(signal.OTP))
	a := f.s.Assessment()
	assert.Equal(t, 3, a.Score)
	assert.Equal(t, model.RiskYellow, a.Level)
}

func TestVoiceDemo(t *testing.T) {
	f := newFixture(t)
	f.s.VoiceDemo()

	assert.Equal(t, SampleVoice, f.s.Text())
	assert.Equal(t, msgVoiceDemo, f.s.Evidence()[0].Message)
	assert.Equal(t, SafetyPauseSeconds, f.s.SafetyPause())
}

func TestChallengeLifecycle(t *testing.T) {
	f := newActiveFixture(t)
	s := f.s

	prompt, err := s.StartChallenge()
	require.NoError(t, err)
	assert.Contains(t, ChallengePresets, prompt)

	c := s.Challenge()
	require.NotNil(t, c)
	assert.Equal(t, ChallengeSeconds, c.SecondsRemaining)
	assert.Equal(t, prompt, c.Prompt)

	f.sched.Advance(10 * time.Second)
	assert.Equal(t, 20, s.Challenge().SecondsRemaining)

	s.StopChallenge()
	assert.Nil(t, s.Challenge())
	assert.Equal(t, msgStopChallenge, s.Evidence()[0].Message)

	before := f.ticks
	f.sched.Advance(5 * time.Second)
	assert.Equal(t, before+5, f.ticks, "only the call clock keeps ticking")
}

func TestChallengeRunsOutButStays(t *testing.T) {
	f := newActiveFixture(t)
	_, err := f.s.StartChallenge()
	require.NoError(t, err)

	f.sched.Advance(time.Minute)
	c := f.s.Challenge()
	require.NotNil(t, c)
	assert.Equal(t, 0, c.SecondsRemaining)
}

func TestChallengeRequiresCall(t *testing.T) {
	f := newFixture(t)
	_, err := f.s.StartChallenge()
	assert.ErrorIs(t, err, ErrCallInactive)
}

func TestChallengeDroppedOnHangUp(t *testing.T) {
	f := newActiveFixture(t)
	_, err := f.s.StartChallenge()
	require.NoError(t, err)

	require.NoError(t, f.s.EndCall())
	assert.Nil(t, f.s.Challenge())
	assert.Zero(t, f.sched.Pending())
}

func TestChallengePromptsAreUniform(t *testing.T) {
	f := newActiveFixture(t)
	seen := make(map[string]int)
	for i := 0; i < 500; i++ {
		prompt, err := f.s.StartChallenge()
		require.NoError(t, err)
		seen[prompt]++
	}
	assert.Len(t, seen, len(ChallengePresets))
}

func TestCopyScript(t *testing.T) {
	f := newFixture(t)
	s := f.s

	ok, err := s.CopyScript("callback")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "callback", s.CopiedScript())
	assert.Equal(t, Scripts[1].Text, f.clip.Last())
	assert.Equal(t, msgCopyPfx+Scripts[1].Text, s.Evidence()[0].Message)

	f.sched.Advance(time.Second)
	ok, err = s.CopyScript("pause")
	require.NoError(t, err)
	assert.True(t, ok)

	// the second copy restarted the acknowledgment window
	f.sched.Advance(time.Second)
	assert.Equal(t, "pause", s.CopiedScript())
	f.sched.Advance(500 * time.Millisecond)
	assert.Equal(t, "", s.CopiedScript())
}

func TestCopyScriptFailure(t *testing.T) {
	sched := schedule.NewManual(epoch)
	s, err := New(Options{Scheduler: sched, Clipboard: clipboard.Failing{}})
	require.NoError(t, err)

	ok, err := s.CopyScript("otp")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", s.CopiedScript())
	assert.Len(t, s.Evidence(), 1, "failed copy logs nothing")

	_, err = s.CopyScript("missing")
	assert.ErrorIs(t, err, ErrUnknownScript)
}

func TestCallBackAndStopReport(t *testing.T) {
	f := newActiveFixture(t)
	s := f.s

	c, ok := s.CallBack()
	require.True(t, ok)
	assert.Equal(t, "bank", c.ID)
	assert.Equal(t, "โทรกลับทางการ: ธนาคาร (ศูนย์ลูกค้า) (02-123-4567)", s.Evidence()[0].Message)

	s.StopAndReport()
	assert.Equal(t, StatusStopped, s.Status())

	// a new call resets the case status
	require.NoError(t, s.EndCall())
	require.NoError(t, s.StartCall())
	assert.Equal(t, StatusAssessing, s.Status())
}

func TestExportEvidence(t *testing.T) {
	f := newActiveFixture(t)
	s := f.s
	require.NoError(t, s.ToggleSignal(signal.NoCallback))
	s.StopAndReport()

	text, ok := s.ExportEvidence()
	require.True(t, ok)
	assert.Equal(t, text, f.clip.Last())
	assert.Contains(t, text, "Case: "+s.Decoy().CaseID)
	assert.Contains(t, text, "Risk: แดง")
	assert.Contains(t, text, "Status: "+StatusStopped)
	assert.Contains(t, text, msgStopReport)
	assert.True(t, s.Exported())
	assert.Equal(t, msgExported, s.Evidence()[0].Message)

	f.sched.Advance(ExportAckDuration)
	assert.False(t, s.Exported())
}

func TestExportFailure(t *testing.T) {
	sched := schedule.NewManual(epoch)
	s, err := New(Options{Scheduler: sched})
	require.NoError(t, err)

	_, ok := s.ExportEvidence()
	assert.False(t, ok)
	assert.False(t, s.Exported())
	assert.Len(t, s.Evidence(), 1)
}

func TestEvidenceLogCapped(t *testing.T) {
	f := newActiveFixture(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, f.s.ToggleMute())
	}
	assert.Len(t, f.s.Evidence(), evidence.MaxEvents)
}

func TestEvidenceTimestamps(t *testing.T) {
	f := newFixture(t)
	f.sched.Advance(90 * time.Second)
	require.NoError(t, f.s.StartCall())
	assert.Equal(t, "09:31:30", f.s.Evidence()[0].Time)
}

func TestDecoyStable(t *testing.T) {
	f := newActiveFixture(t)
	first := f.s.Decoy()
	f.sched.Advance(time.Minute)
	require.NoError(t, f.s.EndCall())
	assert.Equal(t, first, f.s.Decoy())
	assert.Equal(t, first, f.s.Snapshot().Decoy)
}

func TestCloseCancelsTimers(t *testing.T) {
	f := newActiveFixture(t)
	require.NoError(t, f.s.ToggleSignal(signal.Urgent))
	_, err := f.s.StartChallenge()
	require.NoError(t, err)
	_, err = f.s.CopyScript("pause")
	require.NoError(t, err)

	f.s.Close()
	before := f.s.Snapshot()
	f.sched.Advance(time.Minute)

	assert.Zero(t, f.sched.Pending())
	assert.Equal(t, before.ElapsedSeconds, f.s.Elapsed())
	assert.Equal(t, before.SafetyPause, f.s.SafetyPause())
}

func TestNewDemo(t *testing.T) {
	sched := schedule.NewManual(epoch)
	s, err := NewDemo(Options{Scheduler: sched})
	require.NoError(t, err)

	assert.Equal(t, model.CallActive, s.CallState())
	assert.Equal(t, 48, s.Elapsed())
	assert.Len(t, s.Selected(), 5)
	assert.Equal(t, model.RiskRed, s.Assessment().Level)

	sched.Advance(2 * time.Second)
	assert.Equal(t, 50, s.Elapsed())
}

func eventMessages(events []evidence.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Message
	}
	return out
}
