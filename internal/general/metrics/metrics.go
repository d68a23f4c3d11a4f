package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LocationPublishesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trip_track", Name: "location_publishes_total",
		Help: "Total driver location samples published.",
	})
	StaleReadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trip_track", Name: "stale_location_reads_total",
		Help: "Location reads that returned stale or absent samples.",
	})
	ETARequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "trip_track", Name: "eta_requests_total",
			Help: "Routing oracle calls by outcome.",
		},
		[]string{"outcome"}, // ok | error
	)
	PollTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trip_track", Name: "poll_ticks_total",
		Help: "Tracking poll ticks executed.",
	})
	ActiveTrackingSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trip_track", Name: "active_tracking_sessions",
		Help: "Tracking sessions currently polling.",
	})
	OpsEventsPublishErrs = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trip_track", Name: "ops_event_publish_errors_total",
		Help: "Best-effort operator event publishes that failed.",
	})
)
