// Package risk derives a traffic-light risk level from the signals a user
// tagged and the signals detected in a free-text call summary.
package risk

import (
	"github.com/sprite-ai/callguard/internal/model"
	"github.com/sprite-ai/callguard/internal/signal"
)

// Score thresholds.
const (
	RedScore    = 6
	YellowScore = 3
	MaxReasons  = 3
)

// NoSignalReason is shown when nothing has been applied.
const NoSignalReason = "ยังไม่มีสัญญาณเสี่ยงชัด"

// Assessment is the full output of the engine for one input.
type Assessment struct {
	Selected []string        `json:"selected"`
	Detected []string        `json:"detected"`
	Applied  []string        `json:"applied"`
	Score    int             `json:"score"`
	Level    model.RiskLevel `json:"level"`
	Reasons  []string        `json:"reasons"`
}

// Assess is a pure function of its inputs: it never mutates selected and keeps
// no state, so it is safe to call on every keystroke. Unknown ids in selected
// contribute nothing.
func Assess(cat *signal.Catalog, selected []string, text string) Assessment {
	detected := cat.Detect(text)

	in := make(map[string]bool, len(selected)+len(detected))
	for _, id := range selected {
		in[id] = true
	}
	for _, id := range detected {
		in[id] = true
	}

	a := Assessment{
		Selected: append([]string(nil), selected...),
		Detected: detected,
	}

	noCallback := false
	for _, s := range cat.Signals() {
		if !in[s.ID] {
			continue
		}
		a.Applied = append(a.Applied, s.ID)
		a.Score += s.Weight
		if s.ID == signal.NoCallback {
			noCallback = true
		}
		if len(a.Reasons) < MaxReasons {
			a.Reasons = append(a.Reasons, s.Reason)
		}
	}

	a.Level = levelFor(a.Score, noCallback)
	if len(a.Applied) == 0 {
		a.Reasons = []string{NoSignalReason}
	}
	return a
}

func levelFor(score int, noCallback bool) model.RiskLevel {
	switch {
	case noCallback:
		return model.RiskRed
	case score >= RedScore:
		return model.RiskRed
	case score >= YellowScore:
		return model.RiskYellow
	default:
		return model.RiskGreen
	}
}

// Has reports whether id is among the applied signals.
func (a Assessment) Has(id string) bool {
	for _, applied := range a.Applied {
		if applied == id {
			return true
		}
	}
	return false
}

// Urgent reports whether the urgency signal is applied.
func (a Assessment) Urgent() bool {
	return a.Has(signal.Urgent)
}

// Action is a suggested next step for the user.
type Action string

const (
	ActionContinue       Action = "continue"
	ActionStartChallenge Action = "start_challenge"
	ActionCallBack       Action = "call_back"
	ActionStopReport     Action = "stop_report"
)

// Title is the button text for the action.
func (a Action) Title() string {
	switch a {
	case ActionStartChallenge:
		return "Start Challenge"
	case ActionCallBack:
		return "Call-back ทางการ"
	case ActionStopReport:
		return "Stop & Report"
	default:
		return "คุยต่อได้ แต่ระวังการขอข้อมูล"
	}
}

// Actions suggests next actions, most important first.
func (a Assessment) Actions() []Action {
	switch a.Level {
	case model.RiskRed:
		return []Action{ActionStopReport, ActionCallBack, ActionStartChallenge}
	case model.RiskYellow:
		return []Action{ActionStartChallenge, ActionCallBack}
	default:
		return []Action{ActionContinue}
	}
}
