package evidence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/go-core/log"
)

var tracer = otel.Tracer("github.com/linnemanlabs/skywarn/internal/evidence")

// Stage names one pipeline state. The transition order is fixed and
// synchronous; no stage runs out of order or is skipped except the empty
// short-circuit after acquisition.
type Stage string

const (
	StageAcquiring     Stage = "acquiring"
	StageDeduplicating Stage = "deduplicating"
	StageRanking       Stage = "ranking"
	StageSummarizing   Stage = "summarizing"
	StageClassifying   Stage = "classifying"
	StageDispatching   Stage = "dispatching"
)

// Summarizer is the text-generation capability used to condense the ranked
// headlines into a single free-text summary.
type Summarizer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Sink is the append-only persistence capability for evidence batches.
// Appends are fire-and-forget from the pipeline's perspective.
type Sink interface {
	Append(ctx context.Context, records []Record) error
}

// Pipeline runs the fixed evidence-processing sequence for one query. All
// collaborator failures degrade the result instead of aborting it; Run never
// returns an error.
type Pipeline struct {
	aggregator *Aggregator
	summarizer Summarizer
	dispatcher *Dispatcher
	sink       Sink
	logger     log.Logger
	metrics    *Metrics
	topK       int
}

// NewPipeline creates a pipeline. summarizer and sink may be nil, in which
// case summaries are empty and appends are skipped.
func NewPipeline(aggregator *Aggregator, summarizer Summarizer, dispatcher *Dispatcher, sink Sink, logger log.Logger, metrics *Metrics, topK int) *Pipeline {
	if logger == nil {
		logger = log.Nop()
	}
	if topK <= 0 {
		topK = TopK
	}
	return &Pipeline{
		aggregator: aggregator,
		summarizer: summarizer,
		dispatcher: dispatcher,
		sink:       sink,
		logger:     logger,
		metrics:    metrics,
		topK:       topK,
	}
}

// Run executes one full pipeline pass for the query and assembles the result.
func (p *Pipeline) Run(ctx context.Context, q Query) *Result {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "evidence.Pipeline.Run", trace.WithAttributes(
		attribute.String("skywarn.query.id", q.ID),
		attribute.String("skywarn.query.disaster_type", q.DisasterType),
		attribute.String("skywarn.query.location", q.Location),
	))
	defer span.End()

	records := p.runStage(ctx, StageAcquiring, func(ctx context.Context) []Record {
		return p.aggregator.Aggregate(ctx, q)
	})
	if len(records) == 0 {
		// No provider produced evidence. Classifying nothing would be
		// meaningless, so report the safe default severity instead.
		p.logger.Warn(ctx, "no evidence acquired, short-circuiting", "query_id", q.ID)
		span.SetAttributes(attribute.String("skywarn.run.status", string(StatusEmpty)))
		p.metrics.RunsTotal.WithLabelValues(string(StatusEmpty)).Inc()
		p.metrics.RunDuration.WithLabelValues(string(StatusEmpty)).Observe(time.Since(start).Seconds())
		return &Result{
			Query:       q,
			Status:      StatusEmpty,
			Ranked:      []Record{},
			Severity:    Assessment{Level: SeverityLow, Score: 0.3},
			CompletedAt: time.Now(),
		}
	}

	deduped := p.runStage(ctx, StageDeduplicating, func(context.Context) []Record {
		return Dedupe(records)
	})
	p.metrics.DuplicatesTotal.Add(float64(len(records) - len(deduped)))
	p.metrics.EvidenceKept.Observe(float64(len(deduped)))

	ranked := p.runStage(ctx, StageRanking, func(context.Context) []Record {
		return Rank(deduped, q.Text(), p.topK)
	})

	summary := p.summarize(ctx, q, ranked)

	_, classifySpan := tracer.Start(ctx, stageSpanName(StageClassifying))
	severity := Classify(summary)
	classifySpan.SetAttributes(attribute.String("skywarn.severity", string(severity.Level)))
	classifySpan.End()
	p.metrics.SeverityTotal.WithLabelValues(string(severity.Level)).Inc()

	dispatchCtx, dispatchSpan := tracer.Start(ctx, stageSpanName(StageDispatching))
	dispatched := p.dispatcher.Dispatch(dispatchCtx, severity, q)
	dispatchSpan.End()

	result := &Result{
		Query:       q,
		Status:      StatusAssembled,
		Ranked:      ranked,
		Summary:     summary,
		Severity:    severity,
		Dispatched:  dispatched,
		CompletedAt: time.Now(),
	}

	p.appendEvidence(ctx, deduped)

	span.SetAttributes(
		attribute.String("skywarn.run.status", string(StatusAssembled)),
		attribute.String("skywarn.severity", string(severity.Level)),
		attribute.Int("skywarn.evidence.ranked", len(ranked)),
	)
	p.metrics.RunsTotal.WithLabelValues(string(StatusAssembled)).Inc()
	p.metrics.RunDuration.WithLabelValues(string(StatusAssembled)).Observe(time.Since(start).Seconds())

	return result
}

// runStage wraps a pure stage in its own span.
func (p *Pipeline) runStage(ctx context.Context, s Stage, fn func(context.Context) []Record) []Record {
	ctx, span := tracer.Start(ctx, stageSpanName(s))
	defer span.End()
	out := fn(ctx)
	span.SetAttributes(attribute.Int("skywarn.evidence.count", len(out)))
	return out
}

func stageSpanName(s Stage) string {
	return "evidence.stage." + string(s)
}

// summarize calls the external summarization capability. Any failure is
// recovered locally: the summary defaults to empty and classification still
// runs, which yields the Low tier.
func (p *Pipeline) summarize(ctx context.Context, q Query, ranked []Record) string {
	ctx, span := tracer.Start(ctx, stageSpanName(StageSummarizing))
	defer span.End()

	if p.summarizer == nil {
		p.metrics.Summaries.WithLabelValues("skipped").Inc()
		return ""
	}

	summary, err := p.summarizer.Generate(ctx, summaryPrompt(q, ranked))
	if err != nil {
		p.logger.Error(ctx, err, "summarization failed, proceeding without summary", "query_id", q.ID)
		span.RecordError(err)
		p.metrics.Summaries.WithLabelValues("error").Inc()
		return ""
	}
	p.metrics.Summaries.WithLabelValues("ok").Inc()
	return summary
}

func summaryPrompt(q Query, ranked []Record) string {
	titles := make([]string, len(ranked))
	for i, r := range ranked {
		titles[i] = r.Title
	}
	return fmt.Sprintf("Summarize the following disaster news headlines about %s in %s:\n\n%s",
		q.DisasterType, q.Location, strings.Join(titles, "\n"))
}

// appendEvidence forwards the deduplicated batch to the persistence sink.
// Failure is logged and never surfaced to the caller.
func (p *Pipeline) appendEvidence(ctx context.Context, records []Record) {
	if p.sink == nil || len(records) == 0 {
		return
	}
	if err := p.sink.Append(ctx, records); err != nil {
		p.logger.Error(ctx, err, "evidence sink append failed", "records", len(records))
		p.metrics.SinkAppends.WithLabelValues("error").Inc()
		return
	}
	p.metrics.SinkAppends.WithLabelValues("ok").Inc()
}
