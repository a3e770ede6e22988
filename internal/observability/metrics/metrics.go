package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// QueryMetrics covers the question-answering path.
type QueryMetrics struct {
	registry *prometheus.Registry

	questionsTotal  *prometheus.CounterVec
	evidenceTalks   *prometheus.HistogramVec
	requestDuration *prometheus.HistogramVec
}

func NewQueryMetrics(service string) *QueryMetrics {
	registry := prometheus.NewRegistry()

	questionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tedrag",
			Subsystem: "query",
			Name:      "questions_total",
			Help:      "Total answered questions by category and status.",
		},
		[]string{"service", "category", "status"},
	)
	evidenceTalks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tedrag",
			Subsystem: "query",
			Name:      "evidence_talks",
			Help:      "Distinct talks returned as evidence per successful question.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 15},
		},
		[]string{"service"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tedrag",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "End-to-end question answering duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(questionsTotal, evidenceTalks, requestDuration)
	return &QueryMetrics{
		registry:        registry,
		questionsTotal:  questionsTotal,
		evidenceTalks:   evidenceTalks,
		requestDuration: requestDuration,
	}
}

func (m *QueryMetrics) ObserveQuestion(service string, category domain.Category, err error, evidenceCount int, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	label := string(category)
	if label == "" {
		label = "none"
	}
	m.questionsTotal.WithLabelValues(service, label, status).Inc()
	m.requestDuration.WithLabelValues(service, status).Observe(elapsed.Seconds())
	if err == nil {
		m.evidenceTalks.WithLabelValues(service).Observe(float64(evidenceCount))
	}
}

func (m *QueryMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IndexerMetrics covers the offline corpus indexing run.
type IndexerMetrics struct {
	registry *prometheus.Registry

	talksTotal   *prometheus.CounterVec
	chunksTotal  *prometheus.CounterVec
	embedBatches *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
}

func NewIndexerMetrics(service string) *IndexerMetrics {
	registry := prometheus.NewRegistry()

	talksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tedrag",
			Subsystem: "indexer",
			Name:      "talks_total",
			Help:      "Talks handled by the indexing run, by outcome.",
		},
		[]string{"service", "outcome"},
	)
	chunksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tedrag",
			Subsystem: "indexer",
			Name:      "chunks_total",
			Help:      "Chunks handled by the indexing run, by outcome.",
		},
		[]string{"service", "outcome"},
	)
	embedBatches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tedrag",
			Subsystem: "indexer",
			Name:      "embed_batches_total",
			Help:      "Embedding batch calls issued by the indexing run.",
		},
		[]string{"service"},
	)
	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tedrag",
			Subsystem: "indexer",
			Name:      "run_duration_seconds",
			Help:      "Full indexing run duration in seconds.",
			Buckets:   []float64{1, 10, 30, 60, 300, 600, 1800, 3600},
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(talksTotal, chunksTotal, embedBatches, runDuration)
	return &IndexerMetrics{
		registry:     registry,
		talksTotal:   talksTotal,
		chunksTotal:  chunksTotal,
		embedBatches: embedBatches,
		runDuration:  runDuration,
	}
}

func (m *IndexerMetrics) ObserveRun(service string, summary domain.IndexSummary, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.talksTotal.WithLabelValues(service, "indexed").Add(float64(summary.TalksIndexed))
	m.talksTotal.WithLabelValues(service, "skipped").Add(float64(summary.TalksSkipped))
	m.chunksTotal.WithLabelValues(service, "embedded").Add(float64(summary.ChunksEmbedded))
	m.chunksTotal.WithLabelValues(service, "skipped").Add(float64(summary.ChunksSkipped))
	m.embedBatches.WithLabelValues(service).Add(float64(summary.EmbedBatches))
	m.runDuration.WithLabelValues(service, status).Observe(elapsed.Seconds())
}

func (m *IndexerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
