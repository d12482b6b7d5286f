// ABOUTME: Bubbletea model for the bridge status display
// ABOUTME: Renders setup phase, stream sink, buffer fill and pipeline stats
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state.
type Model struct {
	// Setup
	phase    string
	sinkName string
	network  string

	// Pipeline
	bufferLen int
	bufferCap int
	bytesIn   int64
	bytesOut  int64

	// Ingress
	connections int64
	ingressPort int

	// Pull side
	pulls     int64
	underruns int64

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int

	quit chan QuitMsg
}

// QuitMsg signals that the operator asked the bridge to exit.
type QuitMsg struct{}

// StatusMsg updates TUI state.
type StatusMsg struct {
	Phase       string
	SinkName    string
	Network     string
	BufferLen   int
	BufferCap   int
	BytesIn     int64
	BytesOut    int64
	Connections int64
	IngressPort int
	Pulls       int64
	Underruns   int64
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderPipeline()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders phase, sink and network identity.
func (m Model) renderHeader() string {
	sink := m.sinkName
	if sink == "" {
		sink = "(none)"
	}
	network := m.network
	if network == "" {
		network = "(none)"
	}

	return fmt.Sprintf(`┌─ Bridgecast ─────────────────────────────────────────┐
│ Phase:   %-43s │
│ Sink:    %-43s │
│ Network: %-43s │
├──────────────────────────────────────────────────────┤
`, m.phase, truncate(sink, 43), truncate(network, 43))
}

// renderPipeline renders buffer fill and ingress status.
func (m Model) renderPipeline() string {
	fillBar := renderBar(m.bufferLen, maxInt(m.bufferCap, 1), 20)

	return fmt.Sprintf("│ Buffer: [%s] %d/%d bytes%-8s │\n"+
		"│ Ingress: port %d, %d connection(s)%-13s │\n",
		fillBar, m.bufferLen, m.bufferCap, "",
		m.ingressPort, m.connections, "")
}

// renderStats renders pipeline statistics.
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  RX: %dB  TX: %dB  Pulls: %d%-10s │
│ Underruns (silence fill): %d%-25s │
`, m.bytesIn, m.bytesOut, m.pulls, "", m.underruns, "")
}

// renderHelp renders keyboard shortcuts.
func (m Model) renderHelp() string {
	return `│ d:Debug  q:Quit                                      │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information.
func (m Model) renderDebug() string {
	backlog := m.bytesIn - m.bytesOut
	return fmt.Sprintf(`│ DEBUG:                                               │
│   In-flight bytes: %-33d │
`, backlog)
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.quit != nil {
			select {
			case m.quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from status message.
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Phase != "" {
		m.phase = msg.Phase
	}
	if msg.SinkName != "" {
		m.sinkName = msg.SinkName
	}
	if msg.Network != "" {
		m.network = msg.Network
	}
	if msg.BufferCap != 0 {
		m.bufferLen = msg.BufferLen
		m.bufferCap = msg.BufferCap
	}
	if msg.IngressPort != 0 {
		m.ingressPort = msg.IngressPort
	}
	m.bytesIn = msg.BytesIn
	m.bytesOut = msg.BytesOut
	m.connections = msg.Connections
	m.pulls = msg.Pulls
	m.underruns = msg.Underruns
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
