// Package discovery uses the generative model as an evidence provider: it
// asks for recent verified items as JSON and maps them into partial records.
// Providers of this kind return loosely shaped objects (Title/headline,
// Published/date aliasing), so all alias resolution lives here, at the
// aggregation boundary.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/linnemanlabs/skywarn/internal/evidence"
)

// Generator is the text-generation capability backing discovery.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider turns generative output into raw evidence items.
type Provider struct {
	generator Generator
}

// New creates a discovery provider over the given generator.
func New(generator Generator) *Provider {
	return &Provider{generator: generator}
}

// Name implements evidence.Provider.
func (p *Provider) Name() string { return "discovery" }

// discoveryItem tolerates the field aliases the model is known to emit.
type discoveryItem struct {
	Source    string `json:"Source"`
	Title     string `json:"Title"`
	Headline  string `json:"headline"`
	Published string `json:"Published"`
	Date      string `json:"date"`
	Link      string `json:"Link"`
}

// codeFenceRe strips markdown code fences the model wraps around JSON.
var codeFenceRe = regexp.MustCompile("```(?:json)?")

// Fetch prompts the model for recent items and parses the JSON list.
// Unparseable output is a provider error; the aggregator tolerates it.
func (p *Provider) Fetch(ctx context.Context, q evidence.Query) ([]evidence.Item, error) {
	prompt := fmt.Sprintf(
		"Summarize the latest verified information about '%s' in '%s'. "+
			"Return 3-5 items as a JSON list of objects with Source, Title, Published and Link fields.",
		q.DisasterType, q.Location)

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("discovery: generate: %w", err)
	}

	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))

	var parsed []discoveryItem
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("discovery: unparseable response: %w", err)
	}

	items := make([]evidence.Item, 0, len(parsed))
	for _, d := range parsed {
		title := d.Title
		if title == "" {
			title = d.Headline
		}
		published := d.Published
		if published == "" {
			published = d.Date
		}
		source := d.Source
		if source == "" {
			source = "Discovery"
		}
		items = append(items, evidence.Item{
			Source:    source,
			Title:     title,
			Published: published,
			Link:      d.Link,
		})
	}
	return items, nil
}
