// Package metrics registers the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mangocropconnect",
		Subsystem: "listing_cache",
		Name:      "requests_total",
		Help:      "Listing cache lookups by kind (detail, list) and result (hit, miss).",
	}, []string{"kind", "result"})

	cacheLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mangocropconnect",
		Subsystem: "listing_cache",
		Name:      "lookup_seconds",
		Help:      "Listing cache lookup latency by result.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
	}, []string{"result"})

	moderationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mangocropconnect",
		Name:      "listing_moderation_total",
		Help:      "Listing moderation actions that changed state, by action.",
	}, []string{"action"})

	brokerRatings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mangocropconnect",
		Name:      "broker_ratings_total",
		Help:      "Broker ratings submitted, including overwrites.",
	})
)

func IncDetailHit()  { cacheRequests.WithLabelValues("detail", "hit").Inc() }
func IncDetailMiss() { cacheRequests.WithLabelValues("detail", "miss").Inc() }
func IncListHit()    { cacheRequests.WithLabelValues("list", "hit").Inc() }
func IncListMiss()   { cacheRequests.WithLabelValues("list", "miss").Inc() }

// AddHitDuration records the latency of a cache hit in seconds.
func AddHitDuration(seconds float64) { cacheLatency.WithLabelValues("hit").Observe(seconds) }

// AddMissDuration records the latency of a cache miss in seconds.
func AddMissDuration(seconds float64) { cacheLatency.WithLabelValues("miss").Observe(seconds) }

// IncModeration counts approve, reject and feature actions.
func IncModeration(action string) { moderationActions.WithLabelValues(action).Inc() }

func IncBrokerRating() { brokerRatings.Inc() }
