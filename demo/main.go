package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kambleakash0/substack-monitor/demo/client"
	"github.com/kambleakash0/substack-monitor/demo/tui"
)

func main() {
	monitorURL := client.GetEnvOrDefault("MONITOR_URL", "http://localhost:8080")

	p := tea.NewProgram(tui.NewModel(monitorURL))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running TUI: %v\n", err)
		os.Exit(1)
	}
}
