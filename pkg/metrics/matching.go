package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Duplicate checks by entity (supplier, customer)
	DuplicateChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "duplicate_checks_total",
		Help: "Total number of duplicate checks",
	}, []string{"entity"})

	// Matches returned by duplicate checks
	DuplicateMatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "duplicate_matches_total",
		Help: "Total number of possible duplicates reported",
	}, []string{"entity"})

	// Time spent ranking a search
	RankLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_rank_latency_seconds",
		Help:    "Latency of ranking a quick-pick search",
		Buckets: prometheus.DefBuckets,
	}, []string{"target"})

	SearchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Total number of quick-pick searches",
	}, []string{"target"})

	UsageRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "usage_records_total",
		Help: "Total number of recorded picks",
	}, []string{"scope"})

	UsageLockContention = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "usage_lock_contention_total",
		Help: "How many usage updates gave up waiting for the store lock",
	})
)

func Init() {
	prometheus.MustRegister(
		DuplicateChecks,
		DuplicateMatches,
		RankLatency,
		SearchRequests,
		UsageRecorded,
		UsageLockContention,
	)
}
