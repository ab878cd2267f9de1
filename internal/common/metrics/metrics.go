// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	NormalizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "normalizations_total",
			Help: "Normalized profile fields by field type and matching step",
		},
		[]string{"field", "source"},
	)

	EnhancementFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhancement_failures_total",
			Help: "Enhancement calls that fell back to the base categories",
		},
		[]string{"provider", "reason"},
	)

	EnhancementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enhancement_duration_seconds",
			Help:    "Duration of enhancement provider calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
		[]string{"provider"},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "ranking_duration_seconds",
			Help: "Duration of ranking a candidate pool in seconds",
		},
	)

	RankedCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_pool_size",
			Help:    "Number of candidates ranked per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	BulkCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_candidates_total",
			Help: "Candidates handled by bulk reprocessing by outcome",
		},
		[]string{"outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_cache_lookups_total",
			Help: "Profile analysis cache lookups by result",
		},
		[]string{"result"},
	)
)
