// Package alertapi exposes the assessment pipeline over HTTP.
package alertapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/linnemanlabs/skywarn/internal/evidence"
)

// AssessmentService defines the business operations alertapi needs.
type AssessmentService interface {
	Assess(ctx context.Context, disasterType, location string) (*evidence.Result, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    AssessmentService
}

// New creates a new API handler.
func New(logger log.Logger, svc AssessmentService) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("assessment service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/assessments", a.handleCreateAssessment)
	})
}

type assessmentRequest struct {
	DisasterType string `json:"disaster_type"`
	Location     string `json:"location"`
}

func (a *API) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(
		attribute.String("skywarn.disaster_type", req.DisasterType),
		attribute.String("skywarn.location", req.Location),
	)

	result, err := a.svc.Assess(r.Context(), req.DisasterType, req.Location)
	if err != nil {
		if errors.Is(err, evidence.ErrMissingField) {
			http.Error(w, `{"error":"disaster_type and location are required"}`, http.StatusBadRequest)
			return
		}
		a.logger.Error(r.Context(), err, "assessment failed",
			"disaster_type", req.DisasterType, "location", req.Location)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	span.SetAttributes(
		attribute.String("skywarn.run.id", result.Query.ID),
		attribute.String("skywarn.run.status", string(result.Status)),
	)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}
