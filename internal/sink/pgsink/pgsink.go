// Package pgsink provides a PostgreSQL implementation of evidence.Sink.
package pgsink

import (
	"context"
	_ "embed"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/skywarn/internal/evidence"
)

var tracer = otel.Tracer("github.com/linnemanlabs/skywarn/internal/sink/pgsink")

//go:embed schema.sql
var schema string

// Sink appends evidence records to the evidence_log table.
type Sink struct {
	pool *pgxpool.Pool
}

// New applies the schema and returns a ready Sink. The pool stays owned by
// the caller.
func New(ctx context.Context, pool *pgxpool.Pool) (*Sink, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Sink{pool: pool}, nil
}

const insertQuery = `INSERT INTO evidence_log (source, title, published, link, query, fetched_at, relevance)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Append inserts one row per record in a single batch.
func (s *Sink) Append(ctx context.Context, records []evidence.Record) error {
	if len(records) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "pgsink.Append", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "INSERT"),
		attribute.Int("evidence.count", len(records)),
	))
	defer span.End()

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertQuery,
			r.Source, r.Title, r.Published, r.Link, r.Query, r.FetchedAt, r.Relevance)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for i := range records {
		if _, err := results.Exec(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("insert evidence row %d: %w", i, err)
		}
	}
	return nil
}
