package evidence

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SeverityLevel is one of the three alert tiers.
type SeverityLevel string

const (
	SeverityLow      SeverityLevel = "Low"
	SeverityModerate SeverityLevel = "Moderate"
	SeverityHigh     SeverityLevel = "High"
)

// RunStatus tracks how a pipeline run terminated.
type RunStatus string

const (
	// StatusAssembled means every stage ran and a full result was produced.
	StatusAssembled RunStatus = "assembled"

	// StatusEmpty means acquisition yielded no evidence and the run
	// short-circuited with the safe default severity.
	StatusEmpty RunStatus = "empty"
)

// Sentinel values for fields a provider may omit.
const (
	UnknownPublished = "Unknown date"
	NoLink           = "N/A"
)

// Query scopes one pipeline run. Immutable once created.
type Query struct {
	ID           string    `json:"id"`
	DisasterType string    `json:"disaster_type"`
	Location     string    `json:"location"`
	IssuedAt     time.Time `json:"issued_at"`
}

// Text returns the lexical form of the query used for provider search and
// relevance ranking.
func (q Query) Text() string {
	return q.DisasterType + " " + q.Location
}

// Record is one piece of retrieved evidence: a headline plus provenance.
// Relevance is zero until the ranker assigns it.
type Record struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	Published string    `json:"published"`
	Link      string    `json:"link"`
	Query     string    `json:"query"`
	FetchedAt time.Time `json:"fetched_at"`
	Relevance float64   `json:"relevance_score"`
}

// Assessment is the severity tier assigned to one run.
type Assessment struct {
	Level SeverityLevel `json:"level"`
	Score float64       `json:"score"`
}

// Alert is the message handed to the notification channel.
type Alert struct {
	Level SeverityLevel `json:"level"`
	Body  string        `json:"body"`
}

// Result is the terminal, read-only aggregate returned to the caller.
type Result struct {
	Query       Query      `json:"query"`
	Status      RunStatus  `json:"status"`
	Ranked      []Record   `json:"ranked_evidence"`
	Summary     string     `json:"summary"`
	Severity    Assessment `json:"severity"`
	Dispatched  bool       `json:"dispatched"`
	CompletedAt time.Time  `json:"completed_at"`
}

// normalizeDisasterType and normalizeLocation define the canonical lexical
// form of the two query fields: hazard types are lowercased, place names are
// title-cased.
func normalizeDisasterType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeLocation(s string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(s)))
}
