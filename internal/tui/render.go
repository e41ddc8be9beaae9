package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/callguard/internal/model"
	"github.com/sprite-ai/callguard/internal/session"
)

const (
	callerName      = "หัวหน้า • วิดีโอคอล"
	panelEventCount = 3
)

func callSubtext(snap session.Snapshot) string {
	switch snap.Call {
	case model.CallActive:
		return fmt.Sprintf("AI Guard Active · %s · ไม่บันทึกเสียง", snap.Duration)
	case model.CallIncoming:
		return "สายเรียกเข้า · แตะรับสายเพื่อเริ่มการประเมิน"
	default:
		return "เริ่มเดโมคอลเพื่อเปิด Bubble"
	}
}

func control(k, label string, on bool) string {
	style := controlStyle
	if on {
		style = controlOnStyle
	}
	return style.Render(fmt.Sprintf("[%s] %s", k, label))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (m Model) renderCallScreen(width, height int) string {
	snap := m.sess.Snapshot()
	var b strings.Builder

	b.WriteString(badgeStyle(snap.Call).Render("● " + snap.Badge))
	b.WriteString("\n\n")
	b.WriteString(callerStyle.Render(callerName))
	b.WriteByte('\n')
	b.WriteString(subtextStyle.Render(callSubtext(snap)))
	b.WriteString("\n\n")

	switch snap.Call {
	case model.CallIdle:
		b.WriteString(control("s", "เริ่มเดโมคอล", false))
		b.WriteString(" ")
		b.WriteString(control("i", "สายเรียกเข้า", false))
	case model.CallIncoming:
		b.WriteString(control("a", "รับสาย", false))
		b.WriteString(" ")
		b.WriteString(control("d", "ปฏิเสธ", false))
	case model.CallActive:
		b.WriteString(control("m", "ไมค์ "+onOff(!snap.Muted), snap.Muted))
		b.WriteString(" ")
		b.WriteString(control("o", "ลำโพง "+onOff(snap.Speaker), snap.Speaker))
		b.WriteString(" ")
		b.WriteString(control("x", "วางสาย", false))
	}

	if snap.BubbleVisible {
		b.WriteString("\n\n")
		b.WriteString(m.renderBubble(snap))
	}

	return callViewStyle.Width(width).Height(height - 2).Render(b.String())
}

func (m Model) renderBubble(snap session.Snapshot) string {
	var b strings.Builder
	hint := "แตะเพื่อเปิด"
	if snap.AssistantVisible {
		hint = "แตะเพื่อย่อ"
	}
	b.WriteString(bubbleStyle.Render("◉ DeepGuard "))
	b.WriteString(riskStyle(snap.Risk.Level).Render(snap.RiskLabel))
	b.WriteString(subtextStyle.Render(" [b] " + hint))

	if !snap.AssistantVisible {
		b.WriteString("\n\n")
		b.WriteString(sectionStyle.Render("Quick Scripts"))
		for i, s := range session.QuickScripts() {
			b.WriteByte('\n')
			b.WriteString(m.renderScript(i, s, snap.CopiedScript))
		}
	}
	return b.String()
}

func (m Model) renderScript(i int, s session.Script, copied string) string {
	tag := subtextStyle.Render("Copy")
	if copied == s.ID {
		tag = copiedStyle.Render("Copied")
	}
	return fmt.Sprintf("%s %s %s", helpKeyStyle.Render(fmt.Sprintf("[%d]", i+1)), tag, s.Text)
}

func (m Model) renderAssistant(width, height int) string {
	snap := m.sess.Snapshot()
	var b strings.Builder

	// header
	b.WriteString(bubbleStyle.Render("DeepGuard"))
	b.WriteString(subtextStyle.Render("  Status: " + snap.Status + "  "))
	b.WriteString(riskStyle(snap.Risk.Level).Render("Risk: " + snap.RiskLabel))
	b.WriteString("\n\n")

	// input
	b.WriteString(sectionStyle.Render("Input (3 วิธี)"))
	b.WriteByte('\n')
	for i, s := range m.sess.Catalog().Signals() {
		mark := "[ ]"
		style := signalStyle
		if m.sess.IsSelected(s.ID) {
			mark = "[x]"
			style = signalSelectedStyle
		}
		line := style.Render(fmt.Sprintf("%s %s", mark, s.Label))
		if i == m.cursor {
			line = cursorStyle.Render("›") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(m.summary.View())
	b.WriteByte('\n')
	if labels := m.detectedLabels(snap); labels != "" {
		b.WriteString(subtextStyle.Render("AI detect: " + labels))
		b.WriteByte('\n')
	}
	b.WriteString(subtextStyle.Render("ไมค์ใช้เพื่อเล่าให้ AI ฟัง ไม่ได้แอบอัดเสียงในสาย [v]"))
	b.WriteString("\n\n")

	// risk meter
	b.WriteString(sectionStyle.Render("Risk Meter"))
	b.WriteString(" ")
	b.WriteString(riskStyle(snap.Risk.Level).Render(snap.RiskLabel))
	b.WriteString(subtextStyle.Render(fmt.Sprintf(" score %d", snap.Risk.Score)))
	b.WriteByte('\n')
	for _, r := range snap.Risk.Reasons {
		b.WriteString("• " + r + "\n")
	}
	if snap.SafetyPause > 0 {
		b.WriteString(chipStyle.Render(fmt.Sprintf("Safety Pause เหลือ %ds", snap.SafetyPause)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	// next actions
	b.WriteString(sectionStyle.Render("Next Action"))
	b.WriteString(subtextStyle.Render(" กดทำทันทีเพื่อลดแรงกดดัน"))
	b.WriteByte('\n')
	for _, a := range snap.Actions {
		b.WriteString(fmt.Sprintf("%s %s\n", helpKeyStyle.Render(actionKey(a)), a.Title()))
	}
	if c := snap.Challenge; c != nil {
		body := fmt.Sprintf("Challenge Active  %ds\n%s", c.SecondsRemaining, c.Prompt)
		b.WriteString(challengeStyle.Render(body))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	// scripts
	b.WriteString(sectionStyle.Render("Response Scripts"))
	b.WriteString(subtextStyle.Render(" Tap to copy"))
	b.WriteByte('\n')
	for i, s := range session.Scripts {
		b.WriteString(m.renderScript(i, s, snap.CopiedScript))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	// evidence
	b.WriteString(sectionStyle.Render("Evidence Log"))
	b.WriteString(subtextStyle.Render(fmt.Sprintf(" Case %s · %s", snap.Decoy.CaseID, snap.Status)))
	if snap.Exported {
		b.WriteString(" " + copiedStyle.Render("Exported"))
	}
	b.WriteByte('\n')
	events := snap.Evidence
	if len(events) > panelEventCount {
		events = events[:panelEventCount]
	}
	for _, e := range events {
		b.WriteString(fmt.Sprintf("%s %s\n", eventTimeStyle.Render(e.Time), e.Message))
	}

	return panelStyle.Width(width).Height(height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) detectedLabels(snap session.Snapshot) string {
	var labels []string
	for _, id := range snap.Risk.Detected {
		if s, ok := m.sess.Catalog().Get(id); ok {
			labels = append(labels, s.Label)
		}
	}
	return strings.Join(labels, " • ")
}

func (m Model) renderStatusBar() string {
	snap := m.sess.Snapshot()
	left := fmt.Sprintf(" %s  %s", snap.Badge, snap.Duration)
	if m.notice != "" {
		left += "  " + noticeStyle.Render(m.notice)
	}

	right := fmt.Sprintf("Case %s  ? help ", snap.Decoy.CaseID)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("callguard — Keyboard Shortcuts"))
	b.WriteString("\n\n")

	groups := []struct {
		title    string
		bindings []keyBindingHelp
	}{
		{"Call", helpFor(keys.StartCall, keys.Incoming, keys.Accept, keys.Decline, keys.EndCall, keys.Mute, keys.Speaker, keys.Bubble)},
		{"Assistant", helpFor(keys.Up, keys.Down, keys.ToggleSignal, keys.EditSummary, keys.VoiceDemo,
			keys.StartChallenge, keys.StopChallenge, keys.Script1, keys.Script2, keys.Script3,
			keys.CallBack, keys.StopReport, keys.Export)},
		{"General", helpFor(keys.Help, keys.Quit)},
	}

	for _, g := range groups {
		b.WriteString(sectionStyle.Render(g.title))
		b.WriteByte('\n')
		for _, item := range g.bindings {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				helpKeyStyle.Width(12).Render(item.key),
				item.desc,
			))
		}
		b.WriteByte('\n')
	}

	b.WriteString(helpBarStyle.Render("Press ? to close help"))

	return b.String()
}
