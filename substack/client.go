package substack

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kambleakash0/substack-monitor/types"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

const (
	fetchTimeout     = 30 * time.Second
	extractorTimeout = 30 * time.Second
)

// Client fetches the latest post from a single Substack publication.
// Discovery goes through the publication RSS feed first and falls back to
// scraping the homepage when the feed cannot be fetched or parsed.
type Client struct {
	publicationURL string
	httpClient     *http.Client
	parser         *gofeed.Parser
}

// NewClient creates a client for the given publication URL.
func NewClient(publicationURL string) *Client {
	return &Client{
		publicationURL: strings.TrimRight(publicationURL, "/"),
		httpClient:     &http.Client{Timeout: fetchTimeout},
		parser:         gofeed.NewParser(),
	}
}

// FetchLatest returns the newest post with its extracted body text.
func (c *Client) FetchLatest(ctx context.Context) (*types.Post, error) {
	post, err := c.latestFromFeed(ctx)
	if err != nil {
		scraped, scrapeErr := c.latestFromHomepage(ctx)
		if scrapeErr != nil {
			return nil, fmt.Errorf("feed fetch failed (%v); homepage scrape failed: %w", err, scrapeErr)
		}
		post = scraped
	}

	body, err := c.extractBody(post.URL)
	if err != nil {
		return nil, err
	}
	post.Body = body
	post.FetchedAt = time.Now()

	return post, nil
}

// latestFromFeed parses the publication feed and returns the first item.
func (c *Client) latestFromFeed(ctx context.Context) (*types.Post, error) {
	feedURL := c.publicationURL + "/feed"
	feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed %s has no items", feedURL)
	}

	item := feed.Items[0]
	if item.Link == "" {
		return nil, fmt.Errorf("feed %s: newest item has no link", feedURL)
	}

	// The canonical post URL is the identifier.
	id := item.Link

	var publishedAt time.Time
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		publishedAt = *item.UpdatedParsed
	}

	return &types.Post{
		ID:          id,
		Title:       item.Title,
		URL:         item.Link,
		PublishedAt: publishedAt,
	}, nil
}

// extractBody fetches the post page and extracts the readable article text.
func (c *Client) extractBody(postURL string) (string, error) {
	article, err := readability.FromURL(postURL, extractorTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed for %s: %w", postURL, err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return "", fmt.Errorf("no readable content at %s", postURL)
	}
	return article.TextContent, nil
}
