// internal/tui/model.go
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"logdeck/internal/engine"
	"logdeck/internal/model"
)

// refreshInterval matches the follow poll interval: new lines appear in the
// buffer at that rate, so rendering faster buys nothing.
const refreshInterval = 250 * time.Millisecond

type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptTail
	promptLevel
)

// scrollPos is an explicit scroll target: stick to the tail, pin to the
// top, or hold a line offset back from the tail. No magic sentinels.
type scrollPos struct {
	top    bool
	offset int // lines back from the tail; 0 means stick to tail
}

// Model is the bubbletea application state. It is a thin consumer of the
// engine registry: all log state lives in the engine, the model only holds
// the last rendered view and UI chrome.
type Model struct {
	registry *engine.Registry
	names    []string

	view engine.View
	busy bool

	scroll scrollPos
	status string

	prompt promptKind
	input  textinput.Model

	chooserOpen   bool
	chooserCursor int
	containers    []model.Container

	width  int
	height int
}

// Message types for the bubbletea update loop.
type tickMsg time.Time

type loadedMsg struct {
	view engine.View
}

type containersMsg struct {
	containers []model.Container
	err        error
}

type statusMsg string

// NewModel creates the TUI model over an engine registry.
func NewModel(registry *engine.Registry) Model {
	input := textinput.New()
	input.CharLimit = 128

	return Model{
		registry: registry,
		names:    registry.Names(),
		input:    input,
		busy:     true,
	}
}

// Init triggers the initial load of the active service.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.registry.Active()), tickCmd())
}
