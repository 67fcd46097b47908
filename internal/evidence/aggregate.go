package evidence

import (
	"context"
	"strings"

	"github.com/linnemanlabs/go-core/log"
)

// Aggregator fans in raw items from the configured providers and normalizes
// them into Records. Providers run in registration order so the merged
// sequence is deterministic for downstream first-occurrence deduplication.
type Aggregator struct {
	providers []Provider
	limit     int
	logger    log.Logger
	metrics   *Metrics
}

// NewAggregator creates an aggregator over the given providers. limit caps
// the number of items taken from each provider per run; 0 means unlimited.
func NewAggregator(providers []Provider, limit int, logger log.Logger, metrics *Metrics) *Aggregator {
	if logger == nil {
		logger = log.Nop()
	}
	return &Aggregator{
		providers: providers,
		limit:     limit,
		logger:    logger,
		metrics:   metrics,
	}
}

// Aggregate invokes each provider and merges the results. A provider failure
// is logged and contributes zero records; the remaining providers still run.
// An empty return means no provider produced usable evidence.
func (a *Aggregator) Aggregate(ctx context.Context, q Query) []Record {
	var out []Record
	for _, p := range a.providers {
		items, err := p.Fetch(ctx, q)
		if err != nil {
			a.logger.Warn(ctx, "provider fetch failed", "provider", p.Name(), "error", err)
			a.metrics.ProviderFetches.WithLabelValues(p.Name(), "error").Inc()
			continue
		}
		if a.limit > 0 && len(items) > a.limit {
			items = items[:a.limit]
		}

		kept := 0
		for _, it := range items {
			r, ok := normalize(it, q)
			if !ok {
				continue
			}
			out = append(out, r)
			kept++
		}

		a.metrics.ProviderFetches.WithLabelValues(p.Name(), "ok").Inc()
		a.metrics.ProviderRecords.WithLabelValues(p.Name()).Add(float64(kept))
		a.logger.Info(ctx, "provider fetch complete", "provider", p.Name(), "records", kept)
	}
	return out
}

// normalize maps a raw item into the canonical Record shape, filling
// sentinels for missing optional fields. Items without a title carry no
// usable evidence and are dropped.
func normalize(it Item, q Query) (Record, bool) {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		return Record{}, false
	}
	r := Record{
		Source:    strings.TrimSpace(it.Source),
		Title:     title,
		Published: strings.TrimSpace(it.Published),
		Link:      strings.TrimSpace(it.Link),
		Query:     q.Text(),
		FetchedAt: q.IssuedAt,
	}
	if r.Source == "" {
		r.Source = "unknown"
	}
	if r.Published == "" {
		r.Published = UnknownPublished
	}
	if r.Link == "" {
		r.Link = NoLink
	}
	return r, true
}
