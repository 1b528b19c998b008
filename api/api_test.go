package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kambleakash0/substack-monitor/pinger"
	"github.com/kambleakash0/substack-monitor/store"
	"github.com/kambleakash0/substack-monitor/types"
	"github.com/kambleakash0/substack-monitor/worker"
)

// stubSource fails every fetch so lifecycle tests never run a real pipeline.
type stubSource struct{}

func (stubSource) FetchLatest(ctx context.Context) (*types.Post, error) {
	return nil, errors.New("source unavailable")
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	return "summary", nil
}

type stubNotifier struct{}

func (stubNotifier) Send(ctx context.Context, subject, htmlBody string, recipients []string) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *worker.Worker, *pinger.Pinger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pipeline := worker.NewPipeline(stubSource{}, stubSummarizer{}, stubNotifier{}, []string{"a@example.com"})
	w := worker.New(pipeline, store.NewMemory(), time.Hour)
	p := pinger.New("http://localhost:0", time.Hour)
	return NewRouter(w, p), w, p
}

func doRequest(t *testing.T, r *gin.Engine, method, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestHealthEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)

	before := time.Now().Unix()
	code, body := doRequest(t, r, http.MethodGet, "/health")
	after := time.Now().Unix()

	if code != http.StatusOK {
		t.Fatalf("GET /health status = %d; want 200", code)
	}
	if body["status"] != "healthy" {
		t.Fatalf("health status = %v; want healthy", body["status"])
	}
	ts, ok := body["timestamp"].(float64)
	if !ok {
		t.Fatalf("health timestamp missing or not a number: %v", body["timestamp"])
	}
	if int64(ts) < before || int64(ts) > after {
		t.Fatalf("health timestamp %d outside [%d, %d]", int64(ts), before, after)
	}
}

func TestStatusEndpoint(t *testing.T) {
	r, _, p := newTestRouter(t)
	p.Start()
	defer p.Stop()

	code, body := doRequest(t, r, http.MethodGet, "/")
	if code != http.StatusOK {
		t.Fatalf("GET / status = %d; want 200", code)
	}
	if body["worker_active"] != false {
		t.Fatalf("worker_active = %v before start; want false", body["worker_active"])
	}
	if body["ping_active"] != true {
		t.Fatalf("ping_active = %v with pinger running; want true", body["ping_active"])
	}
	if body["last_processed"] != "" {
		t.Fatalf("last_processed = %v on a fresh worker; want empty", body["last_processed"])
	}
}

func TestWorkerLifecycleEndpoints(t *testing.T) {
	r, w, _ := newTestRouter(t)

	code, body := doRequest(t, r, http.MethodPost, "/start")
	if code != http.StatusOK || body["status"] != "worker started" {
		t.Fatalf("POST /start = %d %v; want 200 worker started", code, body)
	}

	// A second start is a no-op reported as a plain 200.
	code, body = doRequest(t, r, http.MethodPost, "/start")
	if code != http.StatusOK || body["status"] != "worker already running" {
		t.Fatalf("repeated POST /start = %d %v; want 200 worker already running", code, body)
	}

	_, statusBody := doRequest(t, r, http.MethodGet, "/")
	if statusBody["worker_active"] != true {
		t.Fatalf("worker_active = %v after start; want true", statusBody["worker_active"])
	}

	code, body = doRequest(t, r, http.MethodPost, "/stop")
	if code != http.StatusOK || body["status"] != "worker stopping - will finish current cycle" {
		t.Fatalf("POST /stop = %d %v; want 200 stopping", code, body)
	}

	deadline := time.Now().Add(5 * time.Second)
	for w.Status().Running && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if w.Status().Running {
		t.Fatalf("worker still running after stop request")
	}

	code, body = doRequest(t, r, http.MethodPost, "/stop")
	if code != http.StatusOK || body["status"] != "worker not running" {
		t.Fatalf("POST /stop on stopped worker = %d %v; want 200 not running", code, body)
	}
}
