package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Embedded checkout lifecycle metrics
	embedAttachTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "embedded_checkout_attach_total",
		Help: "Total number of embedded checkout attach attempts",
	}, []string{
		"outcome", // attached, retry, navigating_away, failed
	})

	embedFrameLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "embedded_checkout_frame_load_duration_seconds",
		Help: "Time from frame creation to the frame-loaded signal",
		// Buckets: 100ms to 60s (frame load timeout ceiling)
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{
		"outcome", // loaded, timeout, error
	})

	embedConsentRedirectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "embedded_checkout_consent_redirects_total",
		Help: "Total number of full-page cookie-consent redirects",
	})

	// Payment strategy metrics
	paymentSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_submissions_total",
		Help: "Total number of order payment submissions",
	}, []string{
		"method",  // payment method id
		"path",    // tokenized, vaulted
		"outcome", // submitted, failed
	})

	paymentExecuteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "payment_execute_duration_seconds",
		Help: "Time to execute a payment (vendor calls plus submission)",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"method",
	})
)

// RecordAttach records the outcome of one attach attempt
func RecordAttach(outcome string) {
	embedAttachTotal.WithLabelValues(outcome).Inc()
}

// RecordFrameLoad records how long the checkout frame took to signal loaded
func RecordFrameLoad(outcome string, d time.Duration) {
	embedFrameLoadDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordConsentRedirect records a full-page allow-cookie navigation
func RecordConsentRedirect() {
	embedConsentRedirectsTotal.Inc()
}

// RecordPaymentSubmission records the outcome of one payment submission
func RecordPaymentSubmission(method, path, outcome string) {
	paymentSubmissionsTotal.WithLabelValues(method, path, outcome).Inc()
}

// RecordPaymentExecute records end-to-end execute duration for a method
func RecordPaymentExecute(method string, d time.Duration) {
	paymentExecuteDuration.WithLabelValues(method).Observe(d.Seconds())
}
