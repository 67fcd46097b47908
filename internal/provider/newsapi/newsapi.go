// Package newsapi fetches hazard articles from the NewsAPI "everything"
// endpoint. The API key comes from configuration and is sent as a request
// header, never embedded in the URL.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/linnemanlabs/skywarn/internal/evidence"
)

const (
	defaultBaseURL = "https://newsapi.org"
	pageSize       = 10
	httpTimeout    = 15 * time.Second
)

// Client queries NewsAPI for articles matching the query text.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a NewsAPI client. An empty baseURL means the public API.
func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// Name implements evidence.Provider.
func (c *Client) Name() string { return "newsapi" }

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
}

type everythingResponse struct {
	Status   string    `json:"status"`
	Articles []article `json:"articles"`
}

// Fetch queries /v2/everything sorted by publication time and maps articles
// to raw evidence items.
func (c *Client) Fetch(ctx context.Context, q evidence.Query) ([]evidence.Item, error) {
	params := url.Values{}
	params.Set("q", q.Text())
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))

	endpoint := c.baseURL + "/v2/everything?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("newsapi: status %d: %s", resp.StatusCode, string(body))
	}

	var out everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", err)
	}

	items := make([]evidence.Item, 0, len(out.Articles))
	for _, a := range out.Articles {
		source := a.Source.Name
		if source == "" {
			source = "NewsAPI"
		}
		items = append(items, evidence.Item{
			Source:    source,
			Title:     a.Title,
			Published: a.PublishedAt,
			Link:      a.URL,
		})
	}
	return items, nil
}
