package pgsink_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/linnemanlabs/skywarn/internal/evidence"
	"github.com/linnemanlabs/skywarn/internal/postgres"
	"github.com/linnemanlabs/skywarn/internal/sink/pgsink"
)

func openSink(t *testing.T) *pgsink.Sink {
	t.Helper()
	dsn := os.Getenv("SKYWARN_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SKYWARN_TEST_DATABASE_URL not set, skipping integration test")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("postgres.NewPool: %v", err)
	}
	t.Cleanup(pool.Close)

	s, err := pgsink.New(ctx, pool)
	if err != nil {
		t.Fatalf("pgsink.New: %v", err)
	}
	return s
}

func TestAppend(t *testing.T) {
	s := openSink(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond).UTC()
	records := []evidence.Record{
		{
			Source:    "Google News",
			Title:     "Heavy rainfall batters Chennai",
			Published: "Sat, 29 Aug 2026 10:00:00 GMT",
			Link:      "https://example.com/1",
			Query:     "flood Chennai",
			FetchedAt: now,
			Relevance: 0.82,
		},
		{
			Source:    "NewsAPI",
			Title:     "Flood relief camps open",
			Published: "Unknown date",
			Link:      "N/A",
			Query:     "flood Chennai",
			FetchedAt: now,
		},
	}

	if err := s.Append(ctx, records); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppend_EmptyBatch(t *testing.T) {
	s := openSink(t)

	if err := s.Append(context.Background(), nil); err != nil {
		t.Fatalf("Append(nil): %v", err)
	}
}
