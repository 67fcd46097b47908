package evidence

import "context"

// Item is one raw evidence item as returned by a provider, before
// normalization. Published and Link may be empty; the aggregator fills
// sentinels.
type Item struct {
	Source    string
	Title     string
	Published string
	Link      string
}

// Provider is any external source of raw evidence items: a feed, a search
// API, or a generative-discovery capability.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]Item, error)
}
