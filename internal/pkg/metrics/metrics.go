// Package metrics exposes prometheus instrumentation for the hunt ledger.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission result labels.
const (
	ResultCorrect          = "correct"
	ResultWrong            = "wrong"
	ResultAlreadyCompleted = "already_completed"
	ResultRejected         = "rejected"
)

// Metrics holds the ledger's prometheus collectors.
type Metrics struct {
	submissionsTotal *prometheus.CounterVec
	huntsCreated     prometheus.Counter
	requestDuration  *prometheus.HistogramVec
}

// New registers the collectors on reg and returns the Metrics handle.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		submissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "treasurehunt_submissions_total",
			Help: "Answer submissions by result.",
		}, []string{"result"}),
		huntsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "treasurehunt_hunts_created_total",
			Help: "Hunts registered since process start.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "treasurehunt_request_duration_seconds",
			Help:    "HTTP request latency by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncSubmission counts one answer submission outcome.
func (m *Metrics) IncSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

// IncHuntCreated counts one registered hunt.
func (m *Metrics) IncHuntCreated() {
	if m == nil {
		return
	}
	m.huntsCreated.Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route, statusBucket(status)).Observe(duration.Seconds())
}

func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
