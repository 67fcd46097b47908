// Package memsink provides an in-memory implementation of evidence.Sink.
package memsink

import (
	"context"
	"sync"

	"github.com/linnemanlabs/skywarn/internal/evidence"
)

// Sink holds appended evidence in memory. Suitable for dev/testing.
type Sink struct {
	mu      sync.RWMutex
	records []evidence.Record
}

// New initializes a new in-memory Sink.
func New() *Sink {
	return &Sink{}
}

// Append stores copies of the records.
func (s *Sink) Append(_ context.Context, records []evidence.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// Records returns a copy of everything appended so far.
func (s *Sink) Records() []evidence.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]evidence.Record, len(s.records))
	copy(out, s.records)
	return out
}
