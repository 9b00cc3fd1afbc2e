// Package metrics provides Prometheus metrics for the messaging-api service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"jan-server/services/messaging-api/internal/domain/thread"
	"jan-server/services/messaging-api/internal/domain/user"
)

var (
	// UsersCreated tracks registrations.
	UsersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messaging_users_created_total",
			Help: "Total number of users registered",
		},
	)

	// ThreadsCreated tracks new threads by type.
	ThreadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messaging_threads_created_total",
			Help: "Total number of threads created",
		},
		[]string{"type"},
	)

	// DirectThreadsReused tracks direct thread requests answered by an existing thread.
	DirectThreadsReused = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messaging_direct_thread_reused_total",
			Help: "Total number of direct thread requests that returned an existing thread",
		},
	)

	// DirectThreadConflicts tracks inserts that lost the race on the direct key.
	DirectThreadConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messaging_direct_thread_conflicts_total",
			Help: "Total number of direct thread inserts rejected by the unique direct key",
		},
	)

	// MessagesPosted tracks posted messages.
	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messaging_messages_posted_total",
			Help: "Total number of messages posted",
		},
	)

	// HTTPRequests tracks served requests.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messaging_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "messaging_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Recorder forwards domain events to the Prometheus collectors.
type Recorder struct{}

var (
	_ user.Recorder   = Recorder{}
	_ thread.Recorder = Recorder{}
)

func (Recorder) UserCreated() { UsersCreated.Inc() }

func (Recorder) ThreadCreated(threadType thread.Type) {
	ThreadsCreated.WithLabelValues(string(threadType)).Inc()
}

func (Recorder) DirectThreadReused()   { DirectThreadsReused.Inc() }
func (Recorder) DirectThreadConflict() { DirectThreadConflicts.Inc() }
func (Recorder) MessagePosted()        { MessagesPosted.Inc() }

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
