// Package report renders risk assessments and decoy packs for
// non-interactive output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sprite-ai/callguard/internal/decoy"
	"github.com/sprite-ai/callguard/internal/model"
	"github.com/sprite-ai/callguard/internal/risk"
	"github.com/sprite-ai/callguard/internal/signal"
)

// Format is an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or markdown)", s)
	}
}

// Options controls rendering.
type Options struct {
	Format Format
	// Color highlights JSON output for a terminal.
	Color bool
}

// ExitCode maps a level to a process exit code: 0 green, 1 yellow, 2 red.
func ExitCode(level model.RiskLevel) int {
	switch level {
	case model.RiskRed:
		return 2
	case model.RiskYellow:
		return 1
	default:
		return 0
	}
}

type jsonSignal struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
	Source string `json:"source"`
}

type jsonAssessment struct {
	Level   string        `json:"level"`
	Label   string        `json:"label"`
	Score   int           `json:"score"`
	Reasons []string      `json:"reasons"`
	Signals []jsonSignal  `json:"signals"`
	Actions []risk.Action `json:"actions"`
}

// WriteAssessment renders a in the requested format.
func WriteAssessment(w io.Writer, cat *signal.Catalog, a risk.Assessment, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, assessmentJSON(cat, a), opts.Color)
	case FormatMarkdown:
		return assessmentMarkdown(w, cat, a)
	default:
		return assessmentText(w, cat, a)
	}
}

func assessmentJSON(cat *signal.Catalog, a risk.Assessment) jsonAssessment {
	out := jsonAssessment{
		Level:   a.Level.String(),
		Label:   a.Level.Label(),
		Score:   a.Score,
		Reasons: a.Reasons,
		Signals: []jsonSignal{},
		Actions: a.Actions(),
	}
	for _, id := range a.Applied {
		s, _ := cat.Get(id)
		out.Signals = append(out.Signals, jsonSignal{
			ID:     id,
			Label:  s.Label,
			Weight: s.Weight,
			Source: source(a, id),
		})
	}
	return out
}

func source(a risk.Assessment, id string) string {
	sel, det := contains(a.Selected, id), contains(a.Detected, id)
	switch {
	case sel && det:
		return "both"
	case sel:
		return "selected"
	default:
		return "detected"
	}
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func levelIcon(l model.RiskLevel) string {
	switch l {
	case model.RiskRed:
		return "!!"
	case model.RiskYellow:
		return "! "
	default:
		return "  "
	}
}

func assessmentText(w io.Writer, cat *signal.Catalog, a risk.Assessment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Risk: %s (%s), score %d\n", levelIcon(a.Level), a.Level.Label(), a.Level, a.Score)
	fmt.Fprintf(&b, "Reasons: %s\n\n", strings.Join(a.Reasons, ", "))

	if len(a.Applied) == 0 {
		b.WriteString("No signals.\n")
	} else {
		b.WriteString("Signals:\n")
		for _, id := range a.Applied {
			s, _ := cat.Get(id)
			fmt.Fprintf(&b, "  +%d %-12s %s [%s]\n", s.Weight, id, s.Label, source(a, id))
		}
	}

	b.WriteString("\nNext:\n")
	for _, act := range a.Actions() {
		fmt.Fprintf(&b, "  - %s\n", act.Title())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func assessmentMarkdown(w io.Writer, cat *signal.Catalog, a risk.Assessment) error {
	var b strings.Builder
	b.WriteString("## Call Risk\n\n")
	fmt.Fprintf(&b, "**Risk:** %s (%s) | **Score:** %d\n\n", a.Level.Label(), a.Level, a.Score)
	fmt.Fprintf(&b, "**Reasons:** %s\n\n", strings.Join(a.Reasons, ", "))

	if len(a.Applied) > 0 {
		b.WriteString("| Signal | Label | Weight | Source |\n")
		b.WriteString("|--------|-------|--------|--------|\n")
		for _, id := range a.Applied {
			s, _ := cat.Get(id)
			fmt.Fprintf(&b, "| `%s` | %s | %d | %s |\n", id, s.Label, s.Weight, source(a, id))
		}
		b.WriteString("\n")
	}

	b.WriteString("### Next\n\n")
	for _, act := range a.Actions() {
		fmt.Fprintf(&b, "- %s\n", act.Title())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDecoy renders a decoy pack.
func WriteDecoy(w io.Writer, p decoy.Pack, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, p, opts.Color)
	case FormatMarkdown:
		_, err := fmt.Fprintf(w, "| Case | Canary link | Decoy code |\n|------|-------------|------------|\n| `%s` | `%s` | `%s` |\n",
			p.CaseID, p.CanaryLink, p.DecoyCode)
		return err
	default:
		_, err := fmt.Fprintf(w, "Case:       %s\nCanary:     %s\nDecoy code: %s\n", p.CaseID, p.CanaryLink, p.DecoyCode)
		return err
	}
}

// WriteCatalog lists the signals in catalog order.
func WriteCatalog(w io.Writer, cat *signal.Catalog, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, cat.Signals(), opts.Color)
	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("| Signal | Label | Weight | Keywords |\n")
		b.WriteString("|--------|-------|--------|----------|\n")
		for _, s := range cat.Signals() {
			fmt.Fprintf(&b, "| `%s` | %s | %d | %s |\n", s.ID, s.Label, s.Weight, strings.Join(s.Keywords, ", "))
		}
		_, err := io.WriteString(w, b.String())
		return err
	default:
		var b strings.Builder
		for _, s := range cat.Signals() {
			fmt.Fprintf(&b, "%-12s +%d  %s\n", s.ID, s.Weight, s.Label)
			fmt.Fprintf(&b, "%-12s     %s\n", "", strings.Join(s.Keywords, ", "))
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
}

func writeJSON(w io.Writer, v any, color bool) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out := string(data) + "\n"
	if color {
		out = Highlight("json", out)
	}
	_, err = io.WriteString(w, out)
	return err
}
