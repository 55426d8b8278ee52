package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lights"

// Captcha rejection reasons.
const (
	ReasonInvalidToken  = "invalid_token"
	ReasonWrongAnswer   = "wrong_answer"
	ReasonMissingFields = "missing_fields"
)

// Metrics owns a private registry so that several App instances (tests)
// never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	CaptchaIssued      prometheus.Counter
	CaptchaRejected    *prometheus.CounterVec
	ReviewsCreated     prometheus.Counter
	SubmissionsCreated prometheus.Counter
	AdminLogins        *prometheus.CounterVec
}

// New builds and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		CaptchaIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captcha_issued_total",
			Help:      "Captcha challenges issued.",
		}),
		CaptchaRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "captcha_rejected_total",
			Help:      "Submissions rejected by the captcha gate.",
		}, []string{"reason"}),
		ReviewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Reviews persisted.",
		}),
		SubmissionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_created_total",
			Help:      "Location submissions persisted.",
		}),
		AdminLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.CaptchaIssued,
		m.CaptchaRejected,
		m.ReviewsCreated,
		m.SubmissionsCreated,
		m.AdminLogins,
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
