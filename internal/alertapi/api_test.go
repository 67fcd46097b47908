package alertapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/skywarn/internal/evidence"
)

type mockService struct {
	result       *evidence.Result
	err          error
	disasterType string
	location     string
}

func (m *mockService) Assess(_ context.Context, disasterType, location string) (*evidence.Result, error) {
	m.disasterType = disasterType
	m.location = location
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newTestRouter(svc *mockService) http.Handler {
	r := chi.NewRouter()
	New(log.Nop(), svc).RegisterRoutes(r)
	return r
}

func TestNew_NilServicePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil service")
		}
	}()
	New(log.Nop(), nil)
}

func TestCreateAssessment_ReturnsResult(t *testing.T) {
	t.Parallel()

	svc := &mockService{result: &evidence.Result{
		Query: evidence.Query{
			ID:           "01RUN",
			DisasterType: "flood",
			Location:     "Chennai",
		},
		Status: evidence.StatusAssembled,
		Ranked: []evidence.Record{{Title: "Heavy rainfall batters Chennai"}},
		Severity: evidence.Assessment{
			Level: evidence.SeverityModerate,
			Score: 0.6,
		},
		Dispatched:  true,
		CompletedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments",
		strings.NewReader(`{"disaster_type": "flood", "location": "Chennai"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if svc.disasterType != "flood" || svc.location != "Chennai" {
		t.Errorf("service called with %q/%q", svc.disasterType, svc.location)
	}

	var got evidence.Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Query.ID != "01RUN" {
		t.Errorf("query id = %q", got.Query.ID)
	}
	if got.Severity.Level != evidence.SeverityModerate {
		t.Errorf("severity = %q", got.Severity.Level)
	}
	if len(got.Ranked) != 1 {
		t.Errorf("ranked = %d, want 1", len(got.Ranked))
	}
}

func TestCreateAssessment_InvalidJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments",
		strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	newTestRouter(&mockService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateAssessment_MissingFields(t *testing.T) {
	t.Parallel()

	svc := &mockService{err: evidence.ErrMissingField}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments",
		strings.NewReader(`{"disaster_type": "", "location": ""}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "required") {
		t.Errorf("body = %q, want validation message", rec.Body.String())
	}
}

func TestCreateAssessment_ServiceError(t *testing.T) {
	t.Parallel()

	svc := &mockService{err: errors.New("pipeline exploded")}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments",
		strings.NewReader(`{"disaster_type": "flood", "location": "Chennai"}`))
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
