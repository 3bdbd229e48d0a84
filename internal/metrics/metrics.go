package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trustrace"

//nolint:gochecknoglobals
var (
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Votes accepted, by voter tier.",
	}, []string{"tier"})

	EthosRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ethos_requests_total",
		Help:      "Requests made to the Ethos API, by endpoint and outcome.",
	}, []string{"endpoint", "status"})

	EthosCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ethos_cache_hits_total",
		Help:      "Credibility score lookups served from cache.",
	})

	SubmissionTrustConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submission_trust_confidence",
		Help:      "Trust confidence of recalculated submissions.",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
)
