// Package decoy generates the session-stable fake identifiers used to engage
// a suspected attacker: a case id, a canary link and a decoy code.
package decoy

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Defaults for Generate.
const (
	DefaultPrefix = "DG"
	DefaultHost   = "guard.link"
)

// RNG is a small deterministic generator. Two RNGs built from the same seed
// produce the same sequence.
type RNG struct {
	state uint32
}

// NewRNG hashes seed into the initial state.
func NewRNG(seed string) *RNG {
	var state uint32
	for _, u := range utf16.Encode([]rune(seed)) {
		state = state*31 + uint32(u)
	}
	return &RNG{state: state}
}

// Float64 returns the next value in [0, 1).
func (r *RNG) Float64() float64 {
	r.state = r.state*1664525 + 1013904223
	return float64(r.state) / (1 << 32)
}

// IntN returns the next value in [0, n).
func (r *RNG) IntN(n int) int {
	return int(r.Float64() * float64(n))
}

func segment(r *RNG, length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteString(strconv.FormatInt(int64(r.IntN(36)), 36))
	}
	return strings.ToUpper(b.String())
}

// Pack is the decoy material for one session.
type Pack struct {
	CaseID     string `json:"case_id"`
	CanaryLink string `json:"canary_link"`
	DecoyCode  string `json:"decoy_code"`
}

// Generate draws a pack from r. Prefix and host fall back to the defaults
// when empty.
func Generate(r *RNG, prefix, host string) Pack {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if host == "" {
		host = DefaultHost
	}

	first := segment(r, 3)
	second := segment(r, 3)

	var code strings.Builder
	for i := 0; i < 6; i++ {
		code.WriteString(strconv.Itoa(r.IntN(10)))
	}
	digits := code.String()

	return Pack{
		CaseID:     fmt.Sprintf("%s-%s-%s", prefix, first, second),
		CanaryLink: fmt.Sprintf("%s/%s", host, strings.ToLower(segment(r, 3))),
		DecoyCode:  fmt.Sprintf("%s %s %s", digits[0:2], digits[2:4], digits[4:6]),
	}
}

// ForSession generates the pack for a session id. The same id always yields
// the same pack.
func ForSession(sessionID, prefix, host string) Pack {
	return Generate(NewRNG(sessionID), prefix, host)
}
