// Package googlenews fetches hazard headlines from the Google News RSS
// search feed.
package googlenews

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/linnemanlabs/skywarn/internal/evidence"
)

const (
	defaultBaseURL = "https://news.google.com"
	sourceName     = "Google News"
)

// Provider reads the Google News RSS search feed for a query.
type Provider struct {
	baseURL string
	parser  *gofeed.Parser
}

// New creates a Google News provider. An empty baseURL means the public
// feed; tests point it at a local server.
func New(baseURL string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	parser := gofeed.NewParser()
	parser.UserAgent = "skywarn"
	return &Provider{
		baseURL: baseURL,
		parser:  parser,
	}
}

// Name implements evidence.Provider.
func (p *Provider) Name() string { return "googlenews" }

// Fetch parses the RSS search feed for the query text and maps entries to
// raw evidence items.
func (p *Provider) Fetch(ctx context.Context, q evidence.Query) ([]evidence.Item, error) {
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en",
		p.baseURL, url.QueryEscape(q.Text()))

	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("googlenews: parse feed: %w", err)
	}

	items := make([]evidence.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		items = append(items, evidence.Item{
			Source:    sourceName,
			Title:     entry.Title,
			Published: entry.Published,
			Link:      entry.Link,
		})
	}
	return items, nil
}
