package evidence

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the assessment pipeline.
type Metrics struct {
	RunsTotal       *prometheus.CounterVec
	RunDuration     *prometheus.HistogramVec
	ProviderFetches *prometheus.CounterVec
	ProviderRecords *prometheus.CounterVec
	EvidenceKept    prometheus.Histogram
	DuplicatesTotal prometheus.Counter
	Summaries       *prometheus.CounterVec
	SeverityTotal   *prometheus.CounterVec
	Dispatches      *prometheus.CounterVec
	SinkAppends     *prometheus.CounterVec
}

// NewMetrics registers and returns pipeline metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skywarn_runs_total",
			Help: "Total pipeline runs by terminal status.",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skywarn_run_duration_seconds",
			Help:    "Duration of pipeline runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 0.25s .. ~128s
		}, []string{"status"}),
		ProviderFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skywarn_provider_fetches_total",
			Help: "Total provider fetch attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skywarn_provider_records_total",
			Help: "Total normalized records contributed by each provider.",
		}, []string{"provider"}),
		EvidenceKept: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skywarn_evidence_kept",
			Help:    "Records remaining after deduplication, per run.",
			Buckets: prometheus.LinearBuckets(0, 5, 10), // 0 .. 45
		}),
		DuplicatesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skywarn_duplicates_dropped_total",
			Help: "Total records dropped as duplicate headlines.",
		}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skywarn_summaries_total",
			Help: "Total summarization attempts by outcome.",
		}, []string{"outcome"}),
		SeverityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skywarn_severity_total",
			Help: "Total assessments by severity level.",
		}, []string{"level"}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skywarn_dispatches_total",
			Help: "Total alert dispatch attempts by outcome.",
		}, []string{"outcome"}),
		SinkAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skywarn_sink_appends_total",
			Help: "Total evidence sink append attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.ProviderFetches,
		m.ProviderRecords,
		m.EvidenceKept,
		m.DuplicatesTotal,
		m.Summaries,
		m.SeverityTotal,
		m.Dispatches,
		m.SinkAppends,
	)

	return m
}
