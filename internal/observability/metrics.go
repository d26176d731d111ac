package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	requestsTotal      *prometheus.CounterVec
	latencySeconds     *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	documentsSubmitted *prometheus.CounterVec
	documentsApproved  *prometheus.CounterVec
	documentsRejected  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ursa_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ursa_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ursa_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		documentsSubmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ursa_documents_submitted_total",
			Help: "Achievement documents created, by category.",
		}, []string{"category"})

		documentsApproved = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ursa_documents_approved_total",
			Help: "Achievement documents approved and credited, by category.",
		}, []string{"category"})

		documentsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ursa_documents_rejected_total",
			Help: "Achievement documents rejected, by category.",
		}, []string{"category"})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			documentsSubmitted,
			documentsApproved,
			documentsRejected,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// DocumentsSubmitted exposes the counter for created documents.
func DocumentsSubmitted() *prometheus.CounterVec {
	RegisterMetrics()
	return documentsSubmitted
}

// DocumentsApproved exposes the counter for credited approvals.
func DocumentsApproved() *prometheus.CounterVec {
	RegisterMetrics()
	return documentsApproved
}

// DocumentsRejected exposes the counter for rejections.
func DocumentsRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return documentsRejected
}
