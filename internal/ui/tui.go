// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the bridge status display
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Control holds channels for TUI communication.
type Control struct {
	Quit chan QuitMsg
}

// NewControl creates a new TUI control handler.
func NewControl() *Control {
	return &Control{
		Quit: make(chan QuitMsg, 1),
	}
}

// NewModel creates a new TUI model.
func NewModel(ctrl *Control) Model {
	return Model{
		phase: "running",
		quit:  ctrl.Quit,
	}
}

// Run starts the TUI.
func Run(ctrl *Control) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
	return p, nil
}
