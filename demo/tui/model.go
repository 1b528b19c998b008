package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kambleakash0/substack-monitor/demo/client"
)

// Model represents the TUI client state (thin client)
type Model struct {
	// Monitor client
	Client *client.Client

	// Local UI state (synced from the monitor)
	WorkerActive  bool
	PingActive    bool
	LastProcessed string
	LastAction    string
	Err           error

	// Connection status
	Connected bool
}

// NewModel creates a new TUI model
func NewModel(monitorURL string) Model {
	return Model{
		Client: client.NewClient(monitorURL),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Start polling immediately
	return tea.Batch(
		pollStatus(m.Client),
		tickCmd(),
	)
}
