// Package clipboard writes text to the user's clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable is returned when neither the native clipboard nor the
// terminal fallback accepted the text.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// Copy writes text and reports success. Failures are swallowed; callers only
// branch on the result.
func Copy(w Writer, text string) bool {
	if w == nil {
		return false
	}
	return w.WriteText(text) == nil
}

// System uses the platform clipboard and falls back to an OSC 52 escape
// sequence on Terminal, which most terminal emulators turn into a clipboard
// write even over SSH.
type System struct {
	Terminal io.Writer

	native func(string) error
}

// NewSystem returns a System writer that falls back to term.
func NewSystem(term io.Writer) *System {
	s := &System{Terminal: term}
	if !clipboard.Unsupported {
		s.native = clipboard.WriteAll
	}
	return s
}

// WriteText implements Writer.
func (s *System) WriteText(text string) error {
	var nativeErr error
	if s.native != nil {
		if nativeErr = s.native(text); nativeErr == nil {
			return nil
		}
	}
	if s.Terminal == nil {
		return unavailable(nativeErr)
	}

	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(s.Terminal); err != nil {
		return unavailable(err)
	}
	return nil
}

func unavailable(cause error) error {
	if cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, cause)
}

// Buffer is an in-memory clipboard. It is used for remote sessions, where
// the copied text is delivered to the client instead.
type Buffer struct {
	mu      sync.Mutex
	history []string
}

// WriteText implements Writer.
func (b *Buffer) WriteText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = append(b.history, text)
	return nil
}

// Last returns the most recent text, or "".
func (b *Buffer) Last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.history) == 0 {
		return ""
	}
	return b.history[len(b.history)-1]
}

// Len returns how many writes the buffer has seen.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.history)
}

// Failing rejects every write.
type Failing struct{}

// WriteText implements Writer.
func (Failing) WriteText(string) error {
	return ErrUnavailable
}

// Func adapts a function to Writer.
type Func func(text string) error

// WriteText implements Writer.
func (f Func) WriteText(text string) error {
	return f(text)
}
