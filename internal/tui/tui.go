// Package tui implements the Bubble Tea call screen and the floating call
// guard assistant.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/callguard/internal/risk"
	"github.com/sprite-ai/callguard/internal/schedule"
	"github.com/sprite-ai/callguard/internal/session"
)

const callScreenWidth = 48

// taskMsg carries a due timer callback onto the update loop.
type taskMsg struct {
	run func()
}

// Model is the top-level Bubble Tea model for callguard.
type Model struct {
	sess  *session.Session
	tasks <-chan func()

	summary textinput.Model
	editing bool
	cursor  int // signal under the cursor in the assistant panel

	// UI state
	width  int
	height int

	showHelp bool
	notice   string
}

// New creates a TUI model for sess. Timer callbacks are read from tasks and
// run inside Update; tasks may be nil when timers are driven elsewhere.
func New(sess *session.Session, tasks <-chan func()) Model {
	ti := textinput.New()
	ti.Placeholder = "พิมพ์สรุป 1–2 ประโยค..."
	ti.Prompt = "> "
	ti.CharLimit = 280
	ti.SetValue(sess.Text())

	return Model{
		sess:    sess,
		tasks:   tasks,
		summary: ti,
	}
}

func (m Model) waitForTask() tea.Cmd {
	if m.tasks == nil {
		return nil
	}
	tasks := m.tasks
	return func() tea.Msg {
		f, ok := <-tasks
		if !ok {
			return nil
		}
		return taskMsg{run: f}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForTask()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskMsg:
		msg.run()
		return m, m.waitForTask()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.summary.Width = m.panelWidth() - 8
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateSummary(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

		m.notice = ""
		if m.sess.AssistantVisible() {
			if cmd, handled := m.updateAssistant(msg); handled {
				return m, cmd
			}
		}
		m.updateCall(msg)
	}

	return m, nil
}

func (m *Model) updateCall(msg tea.KeyMsg) {
	s := m.sess
	switch {
	case key.Matches(msg, keys.StartCall):
		m.fail(s.StartCall())
	case key.Matches(msg, keys.Incoming):
		m.fail(s.Incoming())
	case key.Matches(msg, keys.Accept):
		m.fail(s.Accept())
	case key.Matches(msg, keys.Decline):
		m.fail(s.Decline())
	case key.Matches(msg, keys.EndCall):
		m.fail(s.EndCall())
	case key.Matches(msg, keys.Mute):
		m.fail(s.ToggleMute())
	case key.Matches(msg, keys.Speaker):
		m.fail(s.ToggleSpeaker())
	case key.Matches(msg, keys.Bubble):
		if s.BubbleVisible() {
			s.ToggleBubble()
		}
	default:
		// quick scripts on the collapsed bubble
		if s.BubbleVisible() {
			m.copyScript(msg, len(session.QuickScripts()))
		}
	}
}

// updateAssistant handles keys that only make sense with the panel open.
func (m *Model) updateAssistant(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := m.sess
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < s.Catalog().Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.ToggleSignal):
		m.fail(s.ToggleSignal(s.Catalog().IDs()[m.cursor]))
	case key.Matches(msg, keys.EditSummary):
		m.editing = true
		return m.summary.Focus(), true
	case key.Matches(msg, keys.VoiceDemo):
		s.VoiceDemo()
		m.summary.SetValue(s.Text())
	case key.Matches(msg, keys.StartChallenge):
		_, err := s.StartChallenge()
		m.fail(err)
	case key.Matches(msg, keys.StopChallenge):
		s.StopChallenge()
	case key.Matches(msg, keys.CallBack):
		if c, ok := s.CallBack(); ok {
			m.notice = "โทรกลับ " + c.Number
		}
	case key.Matches(msg, keys.StopReport):
		s.StopAndReport()
	case key.Matches(msg, keys.Export):
		s.ExportEvidence()
	default:
		return nil, m.copyScript(msg, len(session.Scripts))
	}
	return nil, true
}

// copyScript copies the script bound to msg among the first n scripts.
func (m *Model) copyScript(msg tea.KeyMsg, n int) bool {
	for i := 0; i < n && i < len(scriptKeys); i++ {
		if key.Matches(msg, scriptKeys[i]) {
			_, err := m.sess.CopyScript(session.Scripts[i].ID)
			m.fail(err)
			return true
		}
	}
	return false
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit), key.Matches(msg, keys.Cancel):
		m.editing = false
		m.summary.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.summary, cmd = m.summary.Update(msg)
	if v := m.summary.Value(); v != m.sess.Text() {
		m.sess.SetText(v)
	}
	return m, cmd
}

// fail shows err in the status bar. Call controls pressed in the wrong state
// are ignored.
func (m *Model) fail(err error) {
	if err == nil || errors.Is(err, session.ErrInvalidTransition) {
		return
	}
	m.notice = err.Error()
}

func (m Model) panelWidth() int {
	w := m.width - callScreenWidth - 1
	if w < 30 {
		w = 30
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	main := m.renderCallScreen(callScreenWidth, m.height-1)
	if m.sess.AssistantVisible() {
		panel := m.renderAssistant(m.panelWidth(), m.height-1)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, " ", panel)
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func actionKey(a risk.Action) string {
	switch a {
	case risk.ActionStartChallenge:
		return "[c]"
	case risk.ActionCallBack:
		return "[r]"
	case risk.ActionStopReport:
		return "[S]"
	default:
		return "   "
	}
}

type keyBindingHelp struct{ key, desc string }

func helpFor(bindings ...key.Binding) []keyBindingHelp {
	out := make([]keyBindingHelp, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, keyBindingHelp{key: h.Key, desc: h.Desc})
	}
	return out
}

// Run starts the TUI on sess. Timers scheduled on loop fire inside the
// program's update loop. The session is closed when the program exits.
func Run(sess *session.Session, loop *schedule.Loop, opts ...tea.ProgramOption) error {
	defer loop.Close()
	defer sess.Close()

	m := New(sess, loop.Tasks())
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	return err
}
