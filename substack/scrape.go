package substack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kambleakash0/substack-monitor/types"

	"github.com/PuerkitoBio/goquery"
)

// latestFromHomepage scrapes the publication homepage for the newest post
// link. Substack post pages live under /p/; some themes also tag the first
// post anchor with the sitemap-link class.
func (c *Client) latestFromHomepage(ctx context.Context) (*types.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.publicationURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch homepage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("homepage %s returned status %d", c.publicationURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse homepage: %w", err)
	}

	href, title := firstPostAnchor(doc)
	if href == "" {
		return nil, fmt.Errorf("no post link found on %s", c.publicationURL)
	}

	postURL, err := c.resolveURL(href)
	if err != nil {
		return nil, err
	}

	return &types.Post{
		ID:    postURL,
		Title: title,
		URL:   postURL,
	}, nil
}

func firstPostAnchor(doc *goquery.Document) (href, title string) {
	if a := doc.Find("a.sitemap-link").First(); a.Length() > 0 {
		href, _ = a.Attr("href")
		title = strings.TrimSpace(a.Text())
		return href, title
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		h, _ := a.Attr("href")
		if !strings.Contains(h, "/p/") {
			return true
		}
		href = h
		title = strings.TrimSpace(a.Text())
		return false
	})
	return href, title
}

// resolveURL makes scraped hrefs absolute against the publication URL.
func (c *Client) resolveURL(href string) (string, error) {
	base, err := url.Parse(c.publicationURL)
	if err != nil {
		return "", fmt.Errorf("invalid publication URL %q: %w", c.publicationURL, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid post link %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
