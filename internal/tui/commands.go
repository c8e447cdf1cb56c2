// internal/tui/commands.go
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"logdeck/internal/engine"
)

// tickCmd drives the periodic re-render while following.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd reloads a service's buffer off the UI loop. Load can block on
// docker for several seconds; the UI stays responsive meanwhile.
func loadCmd(svc *engine.State) tea.Cmd {
	return func() tea.Msg {
		svc.Reload(context.Background())
		return loadedMsg{view: svc.Render()}
	}
}

// switchCmd makes another service active and loads it.
func switchCmd(registry *engine.Registry, name string) tea.Cmd {
	return func() tea.Msg {
		svc, err := registry.SetActive(context.Background(), name)
		if err != nil {
			return statusMsg(err.Error())
		}
		return loadedMsg{view: svc.Render()}
	}
}

// toggleFollowCmd flips follow state; stopping may wait briefly for the
// session to wind down.
func toggleFollowCmd(svc *engine.State) tea.Cmd {
	return func() tea.Msg {
		svc.ToggleFollow()
		return loadedMsg{view: svc.Render()}
	}
}

// fetchContainersCmd lists running containers for the chooser overlay.
func fetchContainersCmd(registry *engine.Registry) tea.Cmd {
	return func() tea.Msg {
		containers, err := registry.ListContainers(context.Background())
		return containersMsg{containers: containers, err: err}
	}
}

// overrideCmd pins the active service to an explicit container and reloads.
func overrideCmd(svc *engine.State, container string) tea.Cmd {
	return func() tea.Msg {
		svc.StopFollow()
		svc.OverrideContainer(container)
		svc.Reload(context.Background())
		return loadedMsg{view: svc.Render()}
	}
}
