// ABOUTME: Tests for the status TUI model
// ABOUTME: Tests status application and render helpers
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestApplyStatus(t *testing.T) {
	m := Model{}
	m.applyStatus(StatusMsg{
		Phase:       "running",
		SinkName:    "Living Room Speaker",
		BufferLen:   512,
		BufferCap:   16384,
		BytesIn:     1000,
		BytesOut:    900,
		Pulls:       10,
		Underruns:   2,
		IngressPort: 8080,
	})

	if m.phase != "running" {
		t.Errorf("expected phase applied, got %q", m.phase)
	}
	if m.bufferCap != 16384 || m.bufferLen != 512 {
		t.Errorf("expected buffer stats applied, got %d/%d", m.bufferLen, m.bufferCap)
	}
	if m.underruns != 2 {
		t.Errorf("expected underruns applied, got %d", m.underruns)
	}
}

func TestViewRendersAfterResize(t *testing.T) {
	m := Model{}
	if m.View() != "Loading..." {
		t.Error("expected loading placeholder before first resize")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := updated.View()
	if !strings.Contains(view, "Bridgecast") {
		t.Errorf("expected rendered frame, got %q", view)
	}
}

func TestRenderBarClamps(t *testing.T) {
	bar := renderBar(200, 100, 10)
	if len([]rune(bar)) != 10 {
		t.Errorf("expected 10-cell bar, got %d", len([]rune(bar)))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
	if got := truncate("a very long sink name", 10); got != "a very ..." {
		t.Errorf("expected truncated, got %q", got)
	}
}
