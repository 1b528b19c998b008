package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kambleakash0/substack-monitor/demo/client"
)

// pollStatus creates a command to poll monitor status
func pollStatus(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		status, err := c.GetStatus(context.Background())
		return StatusUpdateMsg{
			Status: status,
			Err:    err,
		}
	}
}

// triggerStart creates a command to request a worker start
func triggerStart(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		status, err := c.StartWorker(context.Background())
		return ActionResultMsg{Status: status, Err: err}
	}
}

// triggerStop creates a command to request a worker stop
func triggerStop(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		status, err := c.StopWorker(context.Background())
		return ActionResultMsg{Status: status, Err: err}
	}
}

// tickCmd creates a command that ticks every 2s for polling
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
