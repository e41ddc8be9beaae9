// Package evidence keeps the rolling log of user actions taken during a call
// and formats it into an exportable evidence pack.
package evidence

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxEvents is the number of entries a Log retains.
const MaxEvents = 6

// TimeLayout renders timestamps as 24-hour HH:MM:SS.
const TimeLayout = "15:04:05"

// Event is one logged action. Only the message and wall-clock time are kept;
// nothing from the call audio is recorded.
type Event struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s • %s", e.Time, e.Message)
}

// Log is an append-only ring of the newest MaxEvents events, newest first.
type Log struct {
	events []Event
}

// NewLog returns a log seeded with the given events (newest first).
func NewLog(seed ...Event) *Log {
	l := &Log{}
	for i := len(seed) - 1; i >= 0; i-- {
		l.push(seed[i])
	}
	return l
}

// Append records message at now and returns the new event.
func (l *Log) Append(now time.Time, message string) Event {
	e := Event{
		ID:      uuid.NewString(),
		Time:    now.Format(TimeLayout),
		Message: message,
	}
	l.push(e)
	return e
}

func (l *Log) push(e Event) {
	next := make([]Event, 0, MaxEvents)
	next = append(next, e)
	next = append(next, l.events...)
	if len(next) > MaxEvents {
		next = next[:MaxEvents]
	}
	l.events = next
}

// Events returns a copy of the retained events, newest first.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	return len(l.events)
}

// Pack is the exported concatenation of case metadata and the log.
type Pack struct {
	CaseID    string  `json:"case_id"`
	RiskLabel string  `json:"risk"`
	Status    string  `json:"status"`
	Events    []Event `json:"events"`
}

func (p Pack) String() string {
	var b strings.Builder
	b.WriteString("Evidence Pack\n")
	fmt.Fprintf(&b, "Case: %s\n", p.CaseID)
	fmt.Fprintf(&b, "Risk: %s\n", p.RiskLabel)
	fmt.Fprintf(&b, "Status: %s\n", p.Status)
	b.WriteString("---\n")
	for i, e := range p.Events {
		b.WriteString(e.String())
		if i < len(p.Events)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
