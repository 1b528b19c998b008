package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📬 Substack Monitor"))
	b.WriteString("\n")

	if !m.Connected {
		body := ErrorStyle.Render("❌ Not connected to monitor")
		if m.Err != nil {
			body += "\n" + InfoStyle.Render(m.Err.Error())
		}
		b.WriteString(BoxStyle.Render(body))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("r: retry • q: quit"))
		return b.String()
	}

	b.WriteString(BoxStyle.Render(m.statusBody()))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("s: start worker • x: stop worker • r: refresh • q: quit"))
	return b.String()
}

func (m Model) statusBody() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Worker:    %s\n", renderActive(m.WorkerActive)))
	b.WriteString(fmt.Sprintf("Self-ping: %s\n", renderActive(m.PingActive)))

	last := m.LastProcessed
	if last == "" {
		last = InfoStyle.Render("(none yet)")
	}
	b.WriteString(fmt.Sprintf("Last processed: %s\n", last))

	if m.LastAction != "" {
		b.WriteString("\n")
		b.WriteString(HighlightStyle.Render(m.LastAction))
	}
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err)))
	}

	return b.String()
}

func renderActive(active bool) string {
	if active {
		return StatusStyle.Render("● active")
	}
	return ErrorStyle.Render("○ stopped")
}
