package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Post represents the latest publication entry with its extracted body text.
// ID is the canonical post URL when one is available, otherwise the feed GUID.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	FetchedAt   time.Time `json:"fetched_at"`
	Body        string    `json:"body"`
}

// Summary is the rendered summary of a single post.
type Summary struct {
	PostID    string    `json:"post_id"`
	PostURL   string    `json:"post_url"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// CycleResult is the outcome of one pipeline run.
// NewID is empty when no new content was found.
type CycleResult struct {
	NewID    string `json:"new_id,omitempty"`
	Notified bool   `json:"notified"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
