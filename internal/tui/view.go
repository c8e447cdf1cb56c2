// internal/tui/view.go
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpText = "q quit  1-9 svc  c container  r reload  f follow  L level  / search  t tail  +/- tail  ↑/↓ scroll  g end  G top"

// View renders the full screen: header, log body, status/prompt line and
// key help footer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	if m.chooserOpen {
		return m.renderChooser()
	}

	header := m.renderHeader()
	body := m.renderBody()
	status := m.renderStatus()
	footer := footerStyle.Width(m.width).Render(truncate(helpText, m.width))

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, footer)
}

func (m Model) renderHeader() string {
	v := m.view
	follow := "OFF"
	if v.Follow {
		follow = "ON"
	}
	idx := m.serviceIndex(v.Service)

	header := fmt.Sprintf("[%d] %s | source=%s | tail=%d | follow=%s | level=%s | search=%q | %d/%d lines",
		idx, v.Service, v.Source, v.Tail, follow, v.Level, v.TextFilter, v.Matched, v.Total)
	return headerStyle.Width(m.width).Render(truncate(header, m.width))
}

func (m Model) renderBody() string {
	bodyH := m.bodyHeight()
	lines := m.visibleLines(bodyH)

	rows := make([]string, bodyH)
	for i := 0; i < bodyH; i++ {
		if i < len(lines) {
			rows[i] = truncate(lines[i], m.width)
		}
	}
	return strings.Join(rows, "\n")
}

// visibleLines slices the filtered lines according to the scroll target.
func (m Model) visibleLines(bodyH int) []string {
	data := m.view.Lines
	if len(data) == 0 {
		return nil
	}
	if m.scroll.top {
		if len(data) > bodyH {
			return data[:bodyH]
		}
		return data
	}

	end := len(data) - m.scroll.offset
	if end < 1 {
		end = 1
	}
	if end > len(data) {
		end = len(data)
	}
	start := maxInt(0, end-bodyH)
	return data[start:end]
}

func (m Model) renderStatus() string {
	if m.prompt != promptNone {
		return truncate(m.input.View(), m.width)
	}
	if m.busy {
		return statusStyle.Render(truncate("Loading...", m.width))
	}
	if m.status != "" {
		return statusStyle.Render(truncate(m.status, m.width))
	}
	if m.view.Follow {
		return followOnStyle.Render(truncate("Following...", m.width))
	}
	return ""
}

func (m Model) renderChooser() string {
	var b strings.Builder
	b.WriteString(chooserTitleStyle.Render("Select container (↑/↓, Enter, Esc)"))
	b.WriteString("\n\n")

	visible := maxInt(3, m.height-6)
	start := 0
	if m.chooserCursor >= visible {
		start = m.chooserCursor - visible + 1
	}

	for i := start; i < len(m.containers) && i < start+visible; i++ {
		c := m.containers[i]
		label := fmt.Sprintf("%-30s  %-25s  %s", truncate(c.Name, 30), truncate(c.Image, 25), c.Status)
		label = truncate(label, m.width-6)
		if i == m.chooserCursor {
			b.WriteString(chooserSelectedStyle.Render(label))
		} else {
			b.WriteString(label)
		}
		b.WriteString("\n")
	}

	box := chooserStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// bodyHeight is the screen height minus header, status and footer rows.
func (m Model) bodyHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

func (m Model) serviceIndex(name string) int {
	for i, n := range m.names {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// truncate shortens a line to the terminal width, rune-aware.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
