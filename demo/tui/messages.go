package tui

import (
	"time"

	"github.com/kambleakash0/substack-monitor/demo/client"
)

// StatusUpdateMsg carries the result of a status poll
type StatusUpdateMsg struct {
	Status *client.StatusResponse
	Err    error
}

// ActionResultMsg carries the result of a start/stop request
type ActionResultMsg struct {
	Status string
	Err    error
}

// TickMsg drives the periodic status poll
type TickMsg struct {
	Time time.Time
}
