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

	ExtractionEngineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "extraction_engine_duration_seconds",
			Help: "Duration of a single extraction engine call in seconds",
		},
		[]string{"engine"},
	)

	ExtractionEngineFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_engine_failures_total",
			Help: "Total number of extraction engine failures",
		},
		[]string{"engine"},
	)

	AnalysisRiskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "underwriting_risk_score",
			Help:    "Distribution of computed risk scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)
