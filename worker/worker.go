package worker

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/kambleakash0/substack-monitor/store"
)

// Worker owns the polling loop lifecycle. All state transitions happen under
// one mutex so repeated Start calls can never spawn a second loop and a Stop
// issued during a sleep is observed at the next boundary.
type Worker struct {
	pipeline *Pipeline
	store    store.Store
	interval time.Duration

	mu            sync.Mutex
	running       bool
	stopRequested bool
	stopCh        chan struct{}
	lastProcessed string
	cycles        int
}

// Snapshot is a point-in-time view of the worker state.
type Snapshot struct {
	Running       bool
	StopRequested bool
	LastProcessed string
	Cycles        int
}

// New constructs a stopped worker and restores the last-processed marker
// from the store (best effort; an unreadable store starts from scratch).
func New(pipeline *Pipeline, st store.Store, interval time.Duration) *Worker {
	w := &Worker{
		pipeline: pipeline,
		store:    st,
		interval: interval,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := st.LastProcessed(ctx)
	if err != nil {
		log.Printf("Warning: could not restore last-processed marker: %v", err)
		return w
	}
	w.lastProcessed = id
	if id != "" {
		log.Printf("Restored last-processed marker: %s", id)
	}
	return w
}

// Start transitions Stopped → Running and launches the polling loop.
// Returns false without side effects when a loop is already active,
// including while a stop is still pending.
func (w *Worker) Start() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return false
	}
	w.running = true
	w.stopRequested = false
	w.stopCh = make(chan struct{})

	go w.loop(w.stopCh)
	log.Printf("Worker started (interval %s)", w.interval)
	return true
}

// Stop requests a cooperative shutdown. The in-flight cycle is never
// interrupted; the loop exits at its next stop check. Returns false when
// the worker is not running.
func (w *Worker) Stop() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return false
	}
	if !w.stopRequested {
		w.stopRequested = true
		close(w.stopCh)
		log.Println("Worker stop requested - will finish current cycle")
	}
	return true
}

// Status returns a snapshot without blocking on in-flight cycle work.
func (w *Worker) Status() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Running:       w.running,
		StopRequested: w.stopRequested,
		LastProcessed: w.lastProcessed,
		Cycles:        w.cycles,
	}
}

// loop runs cycles until a stop is requested, checking the flag at the top
// of each iteration and on both sides of the sleep.
func (w *Worker) loop(stopCh chan struct{}) {
	for {
		if w.stopping() {
			break
		}

		w.runCycle(context.Background())

		select {
		case <-stopCh:
		case <-time.After(w.interval):
		}
		if w.stopping() {
			break
		}
	}

	w.mu.Lock()
	w.running = false
	w.stopRequested = false
	w.mu.Unlock()
	log.Println("Worker stopped")
}

func (w *Worker) stopping() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopRequested
}

// runCycle executes one pipeline run. Errors are logged and swallowed so a
// failing cycle retries with the same marker on the next interval.
func (w *Worker) runCycle(ctx context.Context) {
	w.mu.Lock()
	previous := w.lastProcessed
	w.cycles++
	cycle := w.cycles
	w.mu.Unlock()

	result, err := w.pipeline.Run(ctx, previous)
	if err != nil {
		log.Printf("Cycle %d failed (%s): %v", cycle, stageOf(err), err)
		return
	}
	if result.NewID == "" {
		log.Println("No new posts found.")
		return
	}

	// Delivery already succeeded, so the marker advances even if the store
	// write fails; losing the durable copy is better than re-notifying.
	if err := w.store.SetLastProcessed(ctx, result.NewID); err != nil {
		log.Printf("Warning: failed to persist last-processed marker: %v", err)
	}

	w.mu.Lock()
	w.lastProcessed = result.NewID
	w.mu.Unlock()
}

func stageOf(err error) string {
	var fe *FetchError
	var se *SummarizationError
	var de *DeliveryError
	switch {
	case errors.As(err, &fe):
		return "fetch"
	case errors.As(err, &se):
		return "summarize"
	case errors.As(err, &de):
		return "notify"
	default:
		return "pipeline"
	}
}
