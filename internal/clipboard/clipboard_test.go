package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestSystemNativeSuccess(t *testing.T) {
	var got string
	var term bytes.Buffer
	s := &System{Terminal: &term, native: func(text string) error {
		got = text
		return nil
	}}

	if err := s.WriteText("hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got != "hello" {
		t.Errorf("native got %q", got)
	}
	if term.Len() != 0 {
		t.Error("fallback should not be used when native succeeds")
	}
}

func TestSystemFallsBackToOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	var term bytes.Buffer
	s := &System{Terminal: &term, native: func(string) error {
		return errors.New("no display")
	}}

	if err := s.WriteText("สวัสดี"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	out := term.String()
	if !strings.HasPrefix(out, "\x1b]52;") {
		t.Errorf("expected OSC 52 sequence, got %q", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte("สวัสดี"))) {
		t.Errorf("expected base64 payload in %q", out)
	}
}

func TestSystemUnavailable(t *testing.T) {
	s := &System{native: func(string) error { return errors.New("no display") }}

	err := s.WriteText("x")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCopy(t *testing.T) {
	var b Buffer
	if !Copy(&b, "one") {
		t.Error("expected success")
	}
	if !Copy(&b, "two") {
		t.Error("expected success")
	}
	if b.Last() != "two" || b.Len() != 2 {
		t.Errorf("buffer = %q/%d", b.Last(), b.Len())
	}

	if Copy(Failing{}, "x") {
		t.Error("expected failure from Failing")
	}
	if Copy(nil, "x") {
		t.Error("expected failure from nil writer")
	}
}
