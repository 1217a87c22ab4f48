package server

import (
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "care_portal"

// Metrics holds the server's Prometheus collectors. Each server owns its
// registry so several servers can live in one process.
type Metrics struct {
	registry          *prometheus.Registry
	gateRedirects     *prometheus.CounterVec
	localeResolutions *prometheus.CounterVec
	localeRedirects   prometheus.Counter
	logins            *prometheus.CounterVec
	notFound          *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		gateRedirects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "gate_redirects_total",
			Help:      "Requests redirected by the session gate",
		}, []string{"app", "reason"}),
		localeResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "locale_resolutions_total",
			Help:      "Requests passed to page handlers by resolved locale",
		}, []string{"locale", "matched"}),
		localeRedirects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "locale_redirects_total",
			Help:      "Requests redirected to their canonical localized path",
		}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "logins_total",
			Help:      "Login attempts by application and result",
		}, []string{"app", "result"}),
		notFound: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "page_session_rejections_total",
			Help:      "Protected pages rendered as not found by the page level session check",
		}, []string{"app"}),
	}
}

// ObservePipeline records a pipeline result.
func (m *Metrics) ObservePipeline(res Result) {
	switch {
	case res.Kind == Redirect && res.Decision.Redirect:
		m.gateRedirects.WithLabelValues(res.Decision.App.String(), string(res.Decision.Reason)).Inc()
	case res.Kind == Redirect:
		m.localeRedirects.Inc()
	default:
		m.localeResolutions.WithLabelValues(res.Resolution.Locale.String(), strconv.FormatBool(res.Resolution.Matched)).Inc()
	}
}

func (m *Metrics) ObserveLogin(app apps.App, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.logins.WithLabelValues(app.String(), result).Inc()
}

func (m *Metrics) ObservePageRejection(app apps.App) {
	m.notFound.WithLabelValues(app.String()).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
