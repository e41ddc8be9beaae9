// Package session implements the call guard session: the simulated call
// lifecycle, the assistant's signal selection, countdowns, challenges,
// response scripts and the evidence log.
//
// A Session is owned by a single event loop. All methods and all scheduled
// callbacks must run on that loop; the Scheduler is what guarantees the
// latter.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/sprite-ai/callguard/internal/clipboard"
	"github.com/sprite-ai/callguard/internal/decoy"
	"github.com/sprite-ai/callguard/internal/evidence"
	"github.com/sprite-ai/callguard/internal/logging"
	"github.com/sprite-ai/callguard/internal/model"
	"github.com/sprite-ai/callguard/internal/risk"
	"github.com/sprite-ai/callguard/internal/schedule"
	"github.com/sprite-ai/callguard/internal/signal"
)

// Countdown lengths.
const (
	SafetyPauseSeconds = 30
	ChallengeSeconds   = 30
	CopyAckDuration    = 1500 * time.Millisecond
	ExportAckDuration  = 1800 * time.Millisecond
)

var (
	// ErrInvalidTransition is returned for a call action that is not valid in
	// the current call state.
	ErrInvalidTransition = errors.New("invalid call transition")

	// ErrCallInactive is returned for in-call controls used outside a call.
	ErrCallInactive = errors.New("no active call")

	// ErrUnknownScript is returned by CopyScript for an id not in Scripts.
	ErrUnknownScript = errors.New("unknown script")
)

// Options configures a Session. Scheduler is required.
type Options struct {
	ID         string
	Catalog    *signal.Catalog
	Scheduler  schedule.Scheduler
	Clipboard  clipboard.Writer
	Rand       *rand.Rand
	Directory  []Contact
	CasePrefix string
	CanaryHost string
	Logger     *slog.Logger

	// OnTick is called after a timer changes session state.
	OnTick func()
}

// Session is the state of one mounted call guard.
type Session struct {
	id        string
	cat       *signal.Catalog
	sched     schedule.Scheduler
	clip      clipboard.Writer
	rng       *rand.Rand
	directory []Contact
	logger    *slog.Logger
	onTick    func()

	selected   []string
	text       string
	call       model.CallState
	clock      stopwatch
	muted      bool
	speaker    bool
	bubbleOpen bool

	pause     countdown
	challenge *challenge
	copied    ack
	exported  ack

	status string
	log    *evidence.Log
	decoy  decoy.Pack
}

type challenge struct {
	prompt string
	timer  countdown
}

// New creates an idle session.
func New(opts Options) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("session: scheduler is required")
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Catalog == nil {
		opts.Catalog = signal.Default()
	}
	if opts.Rand == nil {
		now := uint64(opts.Scheduler.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(now, now>>32))
	}
	if len(opts.Directory) == 0 {
		opts.Directory = DefaultDirectory
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	s := &Session{
		id:        opts.ID,
		cat:       opts.Catalog,
		sched:     opts.Scheduler,
		clip:      opts.Clipboard,
		rng:       opts.Rand,
		directory: opts.Directory,
		logger:    opts.Logger.With("session", opts.ID),
		onTick:    opts.OnTick,
		call:      model.CallIdle,
		status:    StatusAssessing,
		log:       evidence.NewLog(evidence.Event{ID: "init", Time: "--:--:--", Message: msgReady}),
		decoy:     decoy.ForSession(opts.ID, opts.CasePrefix, opts.CanaryHost),
	}
	s.clock = stopwatch{sched: s.sched, onTick: s.changed}
	s.pause = countdown{sched: s.sched, onTick: s.changed}
	s.copied = ack{sched: s.sched, onChange: s.changed}
	s.exported = ack{sched: s.sched, onChange: s.changed}
	return s, nil
}

// NewDemo creates a session already in the middle of a suspicious call:
// active for 48 seconds, every signal tagged and a summary typed in.
func NewDemo(opts Options) (*Session, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	s.selected = s.cat.IDs()
	s.text = demoText
	s.call = model.CallActive
	s.clock.start(demoElapsed)
	return s, nil
}

func (s *Session) changed() {
	if s.onTick != nil {
		s.onTick()
	}
}

func (s *Session) record(message string) {
	s.log.Append(s.sched.Now(), message)
}

// ID returns the session id that seeded the decoy pack.
func (s *Session) ID() string { return s.id }

// Catalog returns the signal catalog in use.
func (s *Session) Catalog() *signal.Catalog { return s.cat }

// Decoy returns the session's decoy pack. It never changes.
func (s *Session) Decoy() decoy.Pack { return s.decoy }

// Directory returns the trusted call-back contacts.
func (s *Session) Directory() []Contact { return s.directory }

// Assessment derives the current risk from the selection and summary text.
func (s *Session) Assessment() risk.Assessment {
	return risk.Assess(s.cat, s.selected, s.text)
}

// Close cancels every outstanding timer. No callback fires afterwards.
func (s *Session) Close() {
	s.clock.stop()
	s.pause.stop()
	if s.challenge != nil {
		s.challenge.timer.stop()
	}
	s.copied.clear()
	s.exported.clear()
}

// ChallengeView is the rendered form of a running challenge.
type ChallengeView struct {
	Prompt           string `json:"prompt"`
	SecondsRemaining int    `json:"seconds_remaining"`
}

// Snapshot is a read-only copy of everything needed to render a session.
type Snapshot struct {
	ID               string           `json:"id"`
	Call             model.CallState  `json:"call"`
	Badge            string           `json:"badge"`
	ElapsedSeconds   int              `json:"elapsed_seconds"`
	Duration         string           `json:"duration"`
	Muted            bool             `json:"muted"`
	Speaker          bool             `json:"speaker"`
	BubbleVisible    bool             `json:"bubble_visible"`
	AssistantVisible bool             `json:"assistant_visible"`
	Text             string           `json:"text"`
	Selected         []string         `json:"selected"`
	Risk             risk.Assessment  `json:"risk"`
	RiskLabel        string           `json:"risk_label"`
	Actions          []risk.Action    `json:"actions"`
	SafetyPause      int              `json:"safety_pause"`
	Challenge        *ChallengeView   `json:"challenge"`
	CopiedScript     string           `json:"copied_script,omitempty"`
	Exported         bool             `json:"exported"`
	Status           string           `json:"status"`
	Decoy            decoy.Pack       `json:"decoy"`
	Evidence         []evidence.Event `json:"evidence"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	a := s.Assessment()
	snap := Snapshot{
		ID:               s.id,
		Call:             s.call,
		Badge:            s.call.Badge(),
		ElapsedSeconds:   s.clock.elapsed,
		Duration:         FormatDuration(s.clock.elapsed),
		Muted:            s.muted,
		Speaker:          s.speaker,
		BubbleVisible:    s.BubbleVisible(),
		AssistantVisible: s.AssistantVisible(),
		Text:             s.text,
		Selected:         append([]string(nil), s.selected...),
		Risk:             a,
		RiskLabel:        a.Level.Label(),
		Actions:          a.Actions(),
		SafetyPause:      s.pause.remaining,
		CopiedScript:     s.copied.value,
		Exported:         s.exported.value != "",
		Status:           s.status,
		Decoy:            s.decoy,
		Evidence:         s.log.Events(),
	}
	if s.challenge != nil {
		snap.Challenge = &ChallengeView{
			Prompt:           s.challenge.prompt,
			SecondsRemaining: s.challenge.timer.remaining,
		}
	}
	return snap
}

// FormatDuration renders seconds as MM:SS.
func FormatDuration(totalSeconds int) string {
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
