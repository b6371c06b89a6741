package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Metrics names.
	MetricNameBuildInfo          = "stakeview_build_info"
	MetricNameFetches            = "stakeview_account_fetches_total"
	MetricNameFetchDuration      = "stakeview_account_fetch_duration_seconds"
	MetricNameCacheHits          = "stakeview_account_cache_hits_total"
	MetricNameSubmissions        = "stakeview_submissions_total"
	MetricNameSubmissionDuration = "stakeview_submission_duration_seconds"
	MetricNameRefreshes          = "stakeview_refreshes_total"

	// Labels.
	LabelVersion     = "version"
	LabelCommit      = "commit"
	LabelDate        = "date"
	LabelKind        = "kind"
	LabelResult      = "result"
	LabelInstruction = "instruction"

	// Account kinds.
	KindConfig  = "config"
	KindUser    = "user"
	KindStake   = "stake"
	KindStakes  = "stakes"
	KindRewards = "rewards"

	// Results.
	ResultFound   = "found"
	ResultAbsent  = "absent"
	ResultFailed  = "failed"
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameBuildInfo,
			Help: "Build information of stakeview",
		},
		[]string{LabelVersion, LabelCommit, LabelDate},
	)

	Fetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFetches,
			Help: "Number of account fetches by kind and result",
		},
		[]string{LabelKind, LabelResult},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameFetchDuration,
			Help:    "Duration of account fetches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelKind},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheHits,
			Help: "Number of account reads served from cache",
		},
		[]string{LabelKind},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubmissions,
			Help: "Number of instruction submissions by instruction and result",
		},
		[]string{LabelInstruction, LabelResult},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSubmissionDuration,
			Help:    "Duration of instruction submissions until the configured commitment",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{LabelInstruction},
	)

	Refreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRefreshes,
			Help: "Number of refresh signals raised after successful submissions",
		},
	)
)
