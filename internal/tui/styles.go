package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/callguard/internal/model"
)

// Color palette.
var (
	colorRed     = lipgloss.Color("#ff5555")
	colorGreen   = lipgloss.Color("#50fa7b")
	colorYellow  = lipgloss.Color("#f1fa8c")
	colorBlue    = lipgloss.Color("#8be9fd")
	colorPurple  = lipgloss.Color("#bd93f9")
	colorDim     = lipgloss.Color("#6272a4")
	colorBgLight = lipgloss.Color("#343746")
	colorFg      = lipgloss.Color("#f8f8f2")
	colorOrange  = lipgloss.Color("#ffb86c")
	colorBorder  = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	// Call screen
	callViewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	callerStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true)

	subtextStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	badgeIdleStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)

	badgeIncomingStyle = lipgloss.NewStyle().
				Foreground(colorOrange).
				Bold(true)

	badgeActiveStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	controlStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	controlOnStyle = lipgloss.NewStyle().
			Foreground(colorBgLight).
			Background(colorBlue).
			Padding(0, 1)

	bubbleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	// Assistant panel
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	signalStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	signalSelectedStyle = lipgloss.NewStyle().
				Foreground(colorOrange).
				Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Background(colorBorder)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorBgLight).
			Background(colorYellow).
			Padding(0, 1)

	challengeStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorOrange).
			Padding(0, 1)

	copiedStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	eventTimeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	// Help bar
	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

func riskStyle(l model.RiskLevel) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(colorBgLight)
	switch l {
	case model.RiskRed:
		return s.Background(colorRed)
	case model.RiskYellow:
		return s.Background(colorYellow)
	default:
		return s.Background(colorGreen)
	}
}

func badgeStyle(c model.CallState) lipgloss.Style {
	switch c {
	case model.CallActive:
		return badgeActiveStyle
	case model.CallIncoming:
		return badgeIncomingStyle
	default:
		return badgeIdleStyle
	}
}
