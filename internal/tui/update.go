// internal/tui/update.go
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"logdeck/internal/engine"
)

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		// Render is lock-copy only, never I/O, so polling it here is safe.
		m.view = m.registry.Active().Render()
		return m, tickCmd()

	case loadedMsg:
		m.busy = false
		m.view = msg.view
		m.scroll = scrollPos{}
		return m, nil

	case statusMsg:
		m.busy = false
		m.status = string(msg)
		return m, nil

	case containersMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Container list error: %v", msg.err)
			return m, nil
		}
		if len(msg.containers) == 0 {
			m.status = "No running containers found"
			return m, nil
		}
		m.containers = msg.containers
		m.chooserOpen = true
		m.chooserCursor = 0
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.chooserOpen {
			return m.updateChooser(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.registry.Active()

	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(m.names) {
			m.busy = true
			m.status = ""
			m.scroll = scrollPos{}
			return m, switchCmd(m.registry, m.names[idx])
		}
		m.status = fmt.Sprintf("No service configured for key %s", key)

	case "r":
		m.busy = true
		m.status = "Reloading..."
		return m, loadCmd(active)

	case "f":
		return m, toggleFollowCmd(active)

	case "c":
		return m, fetchContainersCmd(m.registry)

	case "L":
		return m.openPrompt(promptLevel, "Level (ANY/DEBUG/INFO/WARN/ERROR/CRITICAL): ")

	case "/":
		return m.openPrompt(promptSearch, "Search substring (empty to clear): ")

	case "t":
		return m.openPrompt(promptTail, "Tail lines: ")

	case "+":
		return m.bumpTail(active, 50)

	case "-":
		return m.bumpTail(active, -50)

	case "g":
		m.scroll = scrollPos{}

	case "G":
		m.scroll = scrollPos{top: true}

	case "up", "k":
		m.scrollBy(1)

	case "down", "j":
		m.scrollBy(-1)

	case "pgup":
		m.scrollBy(m.bodyHeight())

	case "pgdown":
		m.scrollBy(-m.bodyHeight())
	}

	return m, nil
}

func (m *Model) scrollBy(delta int) {
	if m.scroll.top {
		if delta < 0 {
			// Leaving the pinned top re-anchors relative to the tail.
			m.scroll = scrollPos{offset: maxInt(0, len(m.view.Lines)-m.bodyHeight()+delta)}
		}
		return
	}
	m.scroll.offset += delta
	limit := maxInt(0, len(m.view.Lines)-1)
	if m.scroll.offset >= limit {
		m.scroll = scrollPos{top: true}
		return
	}
	if m.scroll.offset < 0 {
		m.scroll.offset = 0
	}
}

func (m Model) bumpTail(active *engine.State, delta int) (tea.Model, tea.Cmd) {
	n := maxInt(0, active.Tail()+delta)
	active.SetTail(n)
	m.busy = true
	m.status = fmt.Sprintf("Tail set to %d", n)
	return m, loadCmd(active)
}

func (m Model) openPrompt(kind promptKind, label string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Prompt = label
	m.input.SetValue("")
	m.input.Focus()
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		kind := m.prompt
		m.prompt = promptNone
		m.input.Blur()
		return m.applyPrompt(kind, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) applyPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	active := m.registry.Active()

	switch kind {
	case promptLevel:
		if value == "" {
			return m, nil
		}
		if _, ok := engine.ParseLevel(value); !ok {
			m.status = fmt.Sprintf("Invalid level: %s", value)
			return m, nil
		}
		level := active.SetLevel(value)
		m.status = fmt.Sprintf("Level filter set to %s", level)
		m.view = active.Render()

	case promptSearch:
		active.SetTextFilter(value)
		if value != "" {
			m.status = fmt.Sprintf("Text filter set to %q", value)
		} else {
			m.status = "Text filter cleared"
		}
		m.view = active.Render()

	case promptTail:
		if value == "" {
			return m, nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			m.status = fmt.Sprintf("Invalid number: %s", value)
			return m, nil
		}
		active.SetTail(n)
		m.busy = true
		m.status = fmt.Sprintf("Tail set to %d", n)
		return m, loadCmd(active)
	}

	return m, nil
}

func (m Model) updateChooser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.chooserOpen = false

	case "up", "k":
		m.chooserCursor = (m.chooserCursor - 1 + len(m.containers)) % len(m.containers)

	case "down", "j":
		m.chooserCursor = (m.chooserCursor + 1) % len(m.containers)

	case "enter":
		chosen := m.containers[m.chooserCursor].Name
		m.chooserOpen = false
		m.busy = true
		m.status = fmt.Sprintf("Container set to %s", chosen)
		return m, overrideCmd(m.registry.Active(), chosen)
	}

	return m, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
