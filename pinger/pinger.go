package pinger

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"
)

// Pinger periodically requests the process's own health endpoint so
// constrained hosting does not idle the instance out. It shares nothing
// with the worker beyond process uptime.
type Pinger struct {
	url        string
	interval   time.Duration
	httpClient *http.Client

	mu     sync.Mutex
	active bool
	stopCh chan struct{}
}

// New creates a pinger targeting the health endpoint under publicURL.
func New(publicURL string, interval time.Duration) *Pinger {
	return &Pinger{
		url:        publicURL + "/health",
		interval:   interval,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Start launches the ping loop. No-op if already active.
func (p *Pinger) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return
	}
	p.active = true
	p.stopCh = make(chan struct{})

	go p.loop(p.stopCh)
	log.Printf("Self-ping started: %s every %s", p.url, p.interval)
}

// Stop terminates the ping loop at the next interval boundary.
func (p *Pinger) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.active = false
	close(p.stopCh)
}

// Active reports whether the ping loop is running.
func (p *Pinger) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Pinger) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			p.ping()
		}
	}
}

// ping issues one health request. Failures are logged and never stop the loop.
func (p *Pinger) ping() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		log.Printf("Self-ping failed to build request: %v", err)
		return
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("Self-ping failed: %v", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Self-ping returned status %d", resp.StatusCode)
	}
}
