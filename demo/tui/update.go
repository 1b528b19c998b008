package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case ActionResultMsg:
		return m.handleActionResult(msg)
	case TickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", "S":
		return m, triggerStart(m.Client)
	case "x", "X":
		return m, triggerStop(m.Client)
	case "r", "R":
		return m, pollStatus(m.Client)
	}
	return m, nil
}

// handleStatusUpdate syncs local state from the monitor
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.Err = nil
	m.WorkerActive = msg.Status.WorkerActive
	m.PingActive = msg.Status.PingActive
	m.LastProcessed = msg.Status.LastProcessed
	return m, nil
}

// handleActionResult records the outcome of a start/stop request
func (m Model) handleActionResult(msg ActionResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.LastAction = msg.Status
	return m, pollStatus(m.Client)
}
