package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rawabit_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ReactionsTotal counts reaction writes by target kind and outcome
	// (added, changed, removed).
	ReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_reactions_total",
		Help: "Reaction toggles by target kind and outcome",
	}, []string{"target_kind", "outcome"})

	// ReactionCacheResults counts reaction summary cache lookups.
	ReactionCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_reaction_cache_results_total",
		Help: "Reaction summary cache lookups by result",
	}, []string{"result"})

	// FriendTransitionsTotal counts friend state machine transitions.
	FriendTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_friend_transitions_total",
		Help: "Friend request transitions by action",
	}, []string{"action"})

	// MessagesSentTotal counts persisted messages by conversation kind.
	MessagesSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_messages_sent_total",
		Help: "Messages sent by conversation kind",
	}, []string{"conversation_kind"})

	// NotificationsCreatedTotal counts notifications written by type.
	NotificationsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_notifications_created_total",
		Help: "Notifications created by type",
	}, []string{"type"})

	// RealtimeDrops counts realtime frames dropped because a client was slow.
	RealtimeDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rawabit_realtime_drops_total",
		Help: "Realtime frames dropped due to backpressure",
	}, []string{"reason"})
)

// TrackQuery returns a func that records the query latency when called.
//
//	defer observability.TrackQuery("select", "contents")()
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
