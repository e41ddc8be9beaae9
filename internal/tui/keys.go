package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	// call controls
	StartCall key.Binding
	Incoming  key.Binding
	Accept    key.Binding
	Decline   key.Binding
	EndCall   key.Binding
	Mute      key.Binding
	Speaker   key.Binding
	Bubble    key.Binding

	// assistant panel
	Up             key.Binding
	Down           key.Binding
	ToggleSignal   key.Binding
	EditSummary    key.Binding
	VoiceDemo      key.Binding
	StartChallenge key.Binding
	StopChallenge  key.Binding
	Script1        key.Binding
	Script2        key.Binding
	Script3        key.Binding
	CallBack       key.Binding
	StopReport     key.Binding
	Export         key.Binding

	// summary editor
	Submit key.Binding
	Cancel key.Binding

	Help key.Binding
	Quit key.Binding
}

var keys = keyMap{
	StartCall: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start demo call"),
	),
	Incoming: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "simulate incoming call"),
	),
	Accept: key.NewBinding(
		key.WithKeys("a", "enter"),
		key.WithHelp("a/enter", "accept"),
	),
	Decline: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "decline"),
	),
	EndCall: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "hang up"),
	),
	Mute: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mute"),
	),
	Speaker: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "speaker"),
	),
	Bubble: key.NewBinding(
		key.WithKeys("b", "tab"),
		key.WithHelp("b/tab", "open/close assistant"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev signal"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next signal"),
	),
	ToggleSignal: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "tag signal"),
	),
	EditSummary: key.NewBinding(
		key.WithKeys("/", "e"),
		key.WithHelp("/", "type summary"),
	),
	VoiceDemo: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "voice summary demo"),
	),
	StartChallenge: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "start challenge"),
	),
	StopChallenge: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "stop challenge"),
	),
	Script1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "copy pause script"),
	),
	Script2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "copy callback script"),
	),
	Script3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "copy OTP script"),
	),
	CallBack: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "call back official number"),
	),
	StopReport: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "stop & report"),
	),
	Export: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "export evidence pack"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "done"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop typing"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// scriptKeys maps number keys to script ids, in Scripts order.
var scriptKeys = []key.Binding{keys.Script1, keys.Script2, keys.Script3}
