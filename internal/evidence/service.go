package evidence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/oklog/ulid/v2"
)

// ErrMissingField is returned when the request omits disaster_type or
// location.
var ErrMissingField = errors.New("disaster_type and location are required")

// Service is the business boundary for hazard assessments. It owns query
// construction and delegates the run to the pipeline.
type Service struct {
	pipeline *Pipeline
	logger   log.Logger
}

// NewService creates an assessment service.
func NewService(pipeline *Pipeline, logger log.Logger) *Service {
	if pipeline == nil {
		panic(xerrors.New("pipeline is required"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		pipeline: pipeline,
		logger:   logger,
	}
}

// NewQuery builds the immutable query for one run: hazard type lowercased,
// location title-cased, both trimmed.
func NewQuery(disasterType, location string, issuedAt time.Time) Query {
	return Query{
		ID:           ulid.Make().String(),
		DisasterType: normalizeDisasterType(disasterType),
		Location:     normalizeLocation(location),
		IssuedAt:     issuedAt,
	}
}

// Assess runs the evidence pipeline for one hazard query. The caller always
// receives a result unless the inputs are empty; collaborator failures
// degrade the result but never surface as errors.
func (s *Service) Assess(ctx context.Context, disasterType, location string) (*Result, error) {
	if strings.TrimSpace(disasterType) == "" || strings.TrimSpace(location) == "" {
		return nil, ErrMissingField
	}

	q := NewQuery(disasterType, location, time.Now())

	L := s.logger.With(
		"query_id", q.ID,
		"disaster_type", q.DisasterType,
		"location", q.Location,
	)
	L.Info(ctx, "assessment started")

	result := s.pipeline.Run(log.WithContext(ctx, L), q)

	L.Info(ctx, "assessment complete",
		"status", string(result.Status),
		"severity", string(result.Severity.Level),
		"evidence", len(result.Ranked),
		"dispatched", result.Dispatched,
	)
	return result, nil
}
