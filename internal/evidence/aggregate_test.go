package evidence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/prometheus/client_golang/prometheus"
)

func testQuery() Query {
	return Query{
		ID:           "01TEST",
		DisasterType: "flood",
		Location:     "Chennai",
		IssuedAt:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestAggregate_MergesInRegistrationOrder(t *testing.T) {
	t.Parallel()

	providers := []Provider{
		&mockProvider{name: "first", items: []Item{{Source: "A", Title: "one"}, {Source: "A", Title: "two"}}},
		&mockProvider{name: "second", items: []Item{{Source: "B", Title: "three"}}},
	}
	agg := NewAggregator(providers, 0, log.Nop(), NewMetrics(prometheus.NewRegistry()))

	got := agg.Aggregate(context.Background(), testQuery())

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got[i].Title != want {
			t.Errorf("record %d title = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestAggregate_ProviderFailureTolerated(t *testing.T) {
	t.Parallel()

	providers := []Provider{
		&mockProvider{name: "broken", err: errors.New("quota exceeded")},
		&mockProvider{name: "healthy", items: []Item{{Source: "B", Title: "survivor"}}},
	}
	agg := NewAggregator(providers, 0, log.Nop(), NewMetrics(prometheus.NewRegistry()))

	got := agg.Aggregate(context.Background(), testQuery())

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "survivor" {
		t.Errorf("title = %q, want %q", got[0].Title, "survivor")
	}
}

func TestAggregate_FillsSentinels(t *testing.T) {
	t.Parallel()

	providers := []Provider{
		&mockProvider{name: "partial", items: []Item{{Title: "Headline only"}}},
	}
	agg := NewAggregator(providers, 0, log.Nop(), NewMetrics(prometheus.NewRegistry()))

	q := testQuery()
	got := agg.Aggregate(context.Background(), q)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	r := got[0]
	if r.Published != UnknownPublished {
		t.Errorf("published = %q, want %q", r.Published, UnknownPublished)
	}
	if r.Link != NoLink {
		t.Errorf("link = %q, want %q", r.Link, NoLink)
	}
	if r.Source != "unknown" {
		t.Errorf("source = %q, want %q", r.Source, "unknown")
	}
	if r.Query != "flood Chennai" {
		t.Errorf("query = %q, want %q", r.Query, "flood Chennai")
	}
	if !r.FetchedAt.Equal(q.IssuedAt) {
		t.Errorf("fetched_at = %v, want %v", r.FetchedAt, q.IssuedAt)
	}
}

func TestAggregate_DropsUntitledItems(t *testing.T) {
	t.Parallel()

	providers := []Provider{
		&mockProvider{name: "noisy", items: []Item{
			{Source: "A", Title: "   "},
			{Source: "A", Title: "kept"},
			{Source: "A"},
		}},
	}
	agg := NewAggregator(providers, 0, log.Nop(), NewMetrics(prometheus.NewRegistry()))

	got := agg.Aggregate(context.Background(), testQuery())
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "kept" {
		t.Errorf("title = %q, want %q", got[0].Title, "kept")
	}
}

func TestAggregate_CapsPerProvider(t *testing.T) {
	t.Parallel()

	items := make([]Item, 20)
	for i := range items {
		items[i] = Item{Source: "A", Title: string(rune('a' + i))}
	}
	providers := []Provider{&mockProvider{name: "chatty", items: items}}
	agg := NewAggregator(providers, 10, log.Nop(), NewMetrics(prometheus.NewRegistry()))

	got := agg.Aggregate(context.Background(), testQuery())
	if len(got) != 10 {
		t.Errorf("len = %d, want 10 (per-provider cap)", len(got))
	}
}

func TestAggregate_AllProvidersFail(t *testing.T) {
	t.Parallel()

	providers := []Provider{
		&mockProvider{name: "a", err: errors.New("down")},
		&mockProvider{name: "b", err: errors.New("down")},
	}
	agg := NewAggregator(providers, 0, log.Nop(), NewMetrics(prometheus.NewRegistry()))

	got := agg.Aggregate(context.Background(), testQuery())
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
