// Package evidence implements Skywarn's hazard assessment pipeline: it
// aggregates evidence from the configured providers, deduplicates it by
// normalized headline, ranks it against the query by TF-IDF cosine
// similarity, classifies severity from a generated summary, and dispatches
// an alert. It defines the Service (query lifecycle), Pipeline (fixed stage
// sequence), the collaborator interfaces (Provider, Summarizer, Notifier,
// Sink), and the domain models.
package evidence
