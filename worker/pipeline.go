package worker

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/kambleakash0/substack-monitor/types"
)

// Source describes the minimal content source behavior needed by the pipeline.
type Source interface {
	FetchLatest(ctx context.Context) (*types.Post, error)
}

// Summarizer turns a post body into a short HTML summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Notifier delivers a formatted summary to a set of recipients.
type Notifier interface {
	Send(ctx context.Context, subject, htmlBody string, recipients []string) error
}

// Archiver records a delivered summary in long-term storage.
type Archiver interface {
	Archive(ctx context.Context, summary *types.Summary) error
}

// Publisher emits a summary-dispatched event.
type Publisher interface {
	Publish(ctx context.Context, summary *types.Summary) error
}

// Pipeline sequences one fetch → detect-change → summarize → notify cycle.
// It holds no cross-cycle state; the caller owns the last-processed marker.
type Pipeline struct {
	source     Source
	summarizer Summarizer
	notifier   Notifier
	recipients []string

	// Optional post-delivery collaborators; nil means disabled.
	archiver  Archiver
	publisher Publisher
}

// NewPipeline wires the three leaf clients and the recipient set.
func NewPipeline(source Source, summarizer Summarizer, notifier Notifier, recipients []string) *Pipeline {
	return &Pipeline{
		source:     source,
		summarizer: summarizer,
		notifier:   notifier,
		recipients: recipients,
	}
}

// WithArchiver enables post-delivery S3 archiving.
func (p *Pipeline) WithArchiver(a Archiver) *Pipeline {
	p.archiver = a
	return p
}

// WithPublisher enables post-delivery event publishing.
func (p *Pipeline) WithPublisher(pub Publisher) *Pipeline {
	p.publisher = pub
	return p
}

// Run executes one cycle against the given previous identifier. The returned
// NewID is non-empty only after the summary was confirmed delivered; the
// caller must not persist anything on error.
func (p *Pipeline) Run(ctx context.Context, previousID string) (types.CycleResult, error) {
	post, err := p.source.FetchLatest(ctx)
	if err != nil {
		return types.CycleResult{}, &FetchError{Err: err}
	}

	if previousID != "" && post.ID == previousID {
		return types.CycleResult{}, nil
	}
	log.Printf("New post found: %s", post.URL)

	text, err := p.summarizer.Summarize(ctx, post.Body)
	if err != nil {
		return types.CycleResult{}, &SummarizationError{Err: err}
	}

	summary := &types.Summary{
		PostID:    post.ID,
		PostURL:   post.URL,
		Title:     post.Title,
		Text:      text,
		CreatedAt: time.Now(),
	}

	subject := subjectFor(post)
	if err := p.notifier.Send(ctx, subject, renderBody(summary), p.recipients); err != nil {
		return types.CycleResult{}, &DeliveryError{Err: err}
	}
	log.Printf("Summary of %s delivered to %d recipient(s)", post.URL, len(p.recipients))

	// Delivery is confirmed at this point; archive and event failures must
	// not undo the cycle result.
	if p.archiver != nil {
		if err := p.archiver.Archive(ctx, summary); err != nil {
			log.Printf("Warning: failed to archive summary for %s: %v", post.ID, err)
		}
	}
	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, summary); err != nil {
			log.Printf("Warning: failed to publish summary event for %s: %v", post.ID, err)
		}
	}

	return types.CycleResult{NewID: post.ID, Notified: true}, nil
}

func subjectFor(post *types.Post) string {
	host := "Substack"
	if u, err := url.Parse(post.URL); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("Summary of the latest %s post", host)
}

func renderBody(s *types.Summary) string {
	title := s.Title
	if title == "" {
		title = s.PostURL
	}
	return fmt.Sprintf("<p>Summary of <a href=%q>%s</a>:</p>%s", s.PostURL, title, s.Text)
}
