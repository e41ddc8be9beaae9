// Package signal holds the catalog of conversational risk signals and the
// keyword matcher that detects them in free text.
package signal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known signal ids the risk engine treats specially.
const (
	Urgent      = "urgent"
	Transfer    = "transfer"
	OTP         = "otp"
	NoCallback  = "no-callback"
	Impersonate = "impersonate"
)

// ErrUnknownSignal is returned when an id is not in the catalog.
var ErrUnknownSignal = errors.New("unknown signal")

// Signal is a named, weighted indicator of social-engineering risk.
type Signal struct {
	ID       string   `yaml:"id" json:"id"`
	Label    string   `yaml:"label" json:"label"`
	Weight   int      `yaml:"weight" json:"weight"`
	Reason   string   `yaml:"reason" json:"reason"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Matches reports whether any keyword is contained in already-lowercased text.
func (s Signal) Matches(normalized string) bool {
	for _, kw := range s.Keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// Catalog is an ordered, immutable set of signals.
type Catalog struct {
	signals []Signal
	index   map[string]int
}

// NewCatalog builds a catalog, keeping the given order.
func NewCatalog(signals []Signal) (*Catalog, error) {
	c := &Catalog{
		signals: make([]Signal, len(signals)),
		index:   make(map[string]int, len(signals)),
	}
	copy(c.signals, signals)
	for i, s := range c.signals {
		if err := validate(s); err != nil {
			return nil, err
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate signal id %q", s.ID)
		}
		c.index[s.ID] = i
	}
	return c, nil
}

func validate(s Signal) error {
	if s.ID == "" {
		return errors.New("signal id is required")
	}
	if s.Weight <= 0 {
		return fmt.Errorf("signal %q: weight must be positive, got %d", s.ID, s.Weight)
	}
	if len(s.Keywords) == 0 {
		return fmt.Errorf("signal %q: at least one keyword is required", s.ID)
	}
	for _, kw := range s.Keywords {
		if kw == "" || kw != strings.ToLower(kw) {
			return fmt.Errorf("signal %q: keyword %q must be non-empty lowercase", s.ID, kw)
		}
	}
	return nil
}

// Signals returns the signals in catalog order.
func (c *Catalog) Signals() []Signal {
	out := make([]Signal, len(c.signals))
	copy(out, c.signals)
	return out
}

// IDs returns the signal ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.signals))
	for i, s := range c.signals {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of signals.
func (c *Catalog) Len() int { return len(c.signals) }

// Get looks up a signal by id.
func (c *Catalog) Get(id string) (Signal, bool) {
	i, ok := c.index[id]
	if !ok {
		return Signal{}, false
	}
	return c.signals[i], true
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Position returns the catalog order of id, or -1.
func (c *Catalog) Position(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Detect returns, in catalog order, the ids of every signal with at least one
// keyword contained in text (case-insensitive). Blank text detects nothing.
func (c *Catalog) Detect(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	normalized := strings.ToLower(text)

	var ids []string
	for _, s := range c.signals {
		if s.Matches(normalized) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

type catalogFile struct {
	Signals []Signal `yaml:"signals"`
}

// Load reads a YAML catalog of the form `signals: [{id, label, ...}]`.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(f.Signals) == 0 {
		return nil, errors.New("catalog has no signals")
	}
	return NewCatalog(f.Signals)
}
