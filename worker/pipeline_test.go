package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kambleakash0/substack-monitor/types"
)

// fakeSource returns a configurable post and records fetch calls.
type fakeSource struct {
	mu    sync.Mutex
	post  *types.Post
	err   error
	calls int
}

func (f *fakeSource) FetchLatest(ctx context.Context) (*types.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p := *f.post
	return &p, nil
}

func (f *fakeSource) fetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSummarizer struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	trace *callTrace
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.trace != nil {
		f.trace.record("summarize")
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeSummarizer) summarizeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	mu       sync.Mutex
	err      error
	calls    int
	subjects []string
	bodies   []string
	trace    *callTrace
}

func (f *fakeNotifier) Send(ctx context.Context, subject, htmlBody string, recipients []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.trace != nil {
		f.trace.record("notify")
	}
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, htmlBody)
	return nil
}

func (f *fakeNotifier) sendCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeArchiver struct {
	mu    sync.Mutex
	err   error
	calls int
	trace *callTrace
}

func (f *fakeArchiver) Archive(ctx context.Context, summary *types.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.trace != nil {
		f.trace.record("archive")
	}
	return f.err
}

type fakePublisher struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakePublisher) Publish(ctx context.Context, summary *types.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

// callTrace records the order of collaborator invocations.
type callTrace struct {
	mu    sync.Mutex
	order []string
}

func (c *callTrace) record(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = append(c.order, name)
}

func (c *callTrace) sequence() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

func testPost(id string) *types.Post {
	return &types.Post{
		ID:          id,
		Title:       "A Test Post",
		URL:         id,
		PublishedAt: time.Now(),
		Body:        "long post body",
	}
}

func TestPipelineNewPostIsSummarizedAndDelivered(t *testing.T) {
	source := &fakeSource{post: testPost("https://blog.example.com/p/p1")}
	summarizer := &fakeSummarizer{text: "<p>summary</p>"}
	notifier := &fakeNotifier{}
	p := NewPipeline(source, summarizer, notifier, []string{"a@example.com", "b@example.com"})

	result, err := p.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.NewID != "https://blog.example.com/p/p1" {
		t.Fatalf("NewID = %q; want the post identifier", result.NewID)
	}
	if !result.Notified {
		t.Fatalf("Notified = false; want true")
	}
	if summarizer.summarizeCalls() != 1 || notifier.sendCalls() != 1 {
		t.Fatalf("summarize=%d notify=%d; want 1 each", summarizer.summarizeCalls(), notifier.sendCalls())
	}
	if got := notifier.subjects[0]; !strings.Contains(got, "blog.example.com") {
		t.Fatalf("subject %q does not name the publication host", got)
	}
	if got := notifier.bodies[0]; !strings.Contains(got, "<p>summary</p>") {
		t.Fatalf("email body %q does not contain the summary", got)
	}
}

func TestPipelineUnchangedContentTakesNoAction(t *testing.T) {
	source := &fakeSource{post: testPost("p1")}
	summarizer := &fakeSummarizer{text: "irrelevant"}
	notifier := &fakeNotifier{}
	p := NewPipeline(source, summarizer, notifier, []string{"a@example.com"})

	for i := 0; i < 5; i++ {
		result, err := p.Run(context.Background(), "p1")
		if err != nil {
			t.Fatalf("Run %d returned error: %v", i, err)
		}
		if result.NewID != "" || result.Notified {
			t.Fatalf("Run %d = %+v; want empty result for unchanged content", i, result)
		}
	}
	if summarizer.summarizeCalls() != 0 {
		t.Fatalf("summarize called %d times for unchanged content; want 0", summarizer.summarizeCalls())
	}
	if notifier.sendCalls() != 0 {
		t.Fatalf("notify called %d times for unchanged content; want 0", notifier.sendCalls())
	}
}

func TestPipelineErrorTaxonomy(t *testing.T) {
	boom := errors.New("boom")

	t.Run("fetch failure", func(t *testing.T) {
		source := &fakeSource{err: boom}
		summarizer := &fakeSummarizer{}
		notifier := &fakeNotifier{}
		p := NewPipeline(source, summarizer, notifier, []string{"a@example.com"})

		_, err := p.Run(context.Background(), "")
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("error %v is not a FetchError", err)
		}
		if summarizer.summarizeCalls() != 0 || notifier.sendCalls() != 0 {
			t.Fatalf("downstream clients called after fetch failure")
		}
	})

	t.Run("summarizer failure", func(t *testing.T) {
		source := &fakeSource{post: testPost("p1")}
		summarizer := &fakeSummarizer{err: boom}
		notifier := &fakeNotifier{}
		p := NewPipeline(source, summarizer, notifier, []string{"a@example.com"})

		_, err := p.Run(context.Background(), "")
		var se *SummarizationError
		if !errors.As(err, &se) {
			t.Fatalf("error %v is not a SummarizationError", err)
		}
		if notifier.sendCalls() != 0 {
			t.Fatalf("notifier called after summarization failure")
		}
	})

	t.Run("delivery failure", func(t *testing.T) {
		source := &fakeSource{post: testPost("p1")}
		summarizer := &fakeSummarizer{text: "s"}
		notifier := &fakeNotifier{err: boom}
		p := NewPipeline(source, summarizer, notifier, []string{"a@example.com"})

		result, err := p.Run(context.Background(), "")
		var de *DeliveryError
		if !errors.As(err, &de) {
			t.Fatalf("error %v is not a DeliveryError", err)
		}
		if result.NewID != "" {
			t.Fatalf("NewID = %q after failed delivery; want empty", result.NewID)
		}
	})
}

func TestPipelineCallOrdering(t *testing.T) {
	trace := &callTrace{}
	source := &fakeSource{post: testPost("p1")}
	summarizer := &fakeSummarizer{text: "s", trace: trace}
	notifier := &fakeNotifier{trace: trace}
	archiver := &fakeArchiver{trace: trace}
	p := NewPipeline(source, summarizer, notifier, []string{"a@example.com"}).WithArchiver(archiver)

	if _, err := p.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []string{"summarize", "notify", "archive"}
	got := trace.sequence()
	if len(got) != len(want) {
		t.Fatalf("call sequence %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call sequence %v; want %v", got, want)
		}
	}
}

func TestPipelinePostDeliveryFailuresDoNotFailCycle(t *testing.T) {
	source := &fakeSource{post: testPost("p1")}
	summarizer := &fakeSummarizer{text: "s"}
	notifier := &fakeNotifier{}
	archiver := &fakeArchiver{err: errors.New("s3 down")}
	publisher := &fakePublisher{err: errors.New("kafka down")}
	p := NewPipeline(source, summarizer, notifier, []string{"a@example.com"}).
		WithArchiver(archiver).
		WithPublisher(publisher)

	result, err := p.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run returned error despite confirmed delivery: %v", err)
	}
	if result.NewID != "p1" || !result.Notified {
		t.Fatalf("result = %+v; want delivered p1", result)
	}
}

func TestPipelineArchiverSkippedWhenDeliveryFails(t *testing.T) {
	source := &fakeSource{post: testPost("p1")}
	summarizer := &fakeSummarizer{text: "s"}
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	archiver := &fakeArchiver{}
	publisher := &fakePublisher{}
	p := NewPipeline(source, summarizer, notifier, []string{"a@example.com"}).
		WithArchiver(archiver).
		WithPublisher(publisher)

	if _, err := p.Run(context.Background(), ""); err == nil {
		t.Fatalf("Run succeeded despite delivery failure")
	}
	if archiver.calls != 0 || publisher.calls != 0 {
		t.Fatalf("archive=%d publish=%d after failed delivery; want 0 each", archiver.calls, publisher.calls)
	}
}
