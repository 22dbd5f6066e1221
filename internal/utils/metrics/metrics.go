// File: internal/utils/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal counts signup attempts by outcome ("success", "conflict", "error").
	SignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coincash_signups_total",
		Help: "Total number of signup attempts",
	}, []string{"result"})

	// EmailVerificationsTotal counts verification attempts by outcome
	// ("success", "invalid", "expired").
	EmailVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coincash_email_verifications_total",
		Help: "Total number of email verification attempts",
	}, []string{"result"})

	// PasswordResetRequestsTotal counts reset requests by outcome
	// ("sent", "rate_limited", "not_found", "error").
	PasswordResetRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coincash_password_reset_requests_total",
		Help: "Total number of password reset requests",
	}, []string{"result"})

	// PasswordResetsTotal counts completed resets by outcome
	// ("success", "invalid_token", "error").
	PasswordResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coincash_password_resets_total",
		Help: "Total number of password reset completions",
	}, []string{"result"})

	// RequestsTotal counts handled HTTP requests.
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coincash_http_requests_total",
		Help: "Total number of HTTP requests",
	})

	// ResponsesTotal counts HTTP responses by status code.
	ResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coincash_http_responses_total",
		Help: "Total number of HTTP responses",
	}, []string{"status"})

	// RequestDuration observes request handling time by method and route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coincash_http_request_duration_seconds",
		Help:    "HTTP request handling duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)
