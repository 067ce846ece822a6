// Package metrics collects and exposes Prometheus metrics for the
// login flow and token validation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records auth events. A nil *Collector is a valid no-op,
// so tests can wire components without a registry.
type Collector struct {
	loginSuccess     prometheus.Counter
	loginFailure     *prometheus.CounterVec
	tokenValidations *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_login_success_total",
			Help: "Total successful logins",
		}),
		loginFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_login_failure_total",
			Help: "Total failed logins by classified error code",
		}, []string{"code"}),
		tokenValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Total session token validations by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFailure,
		c.tokenValidations,
	)

	return c
}

func (c *Collector) RecordLoginSuccess() {
	if c == nil {
		return
	}
	c.loginSuccess.Inc()
}

func (c *Collector) RecordLoginFailure(code string) {
	if c == nil {
		return
	}
	c.loginFailure.WithLabelValues(code).Inc()
}

func (c *Collector) RecordTokenValidation(ok bool) {
	if c == nil {
		return
	}
	result := "valid"
	if !ok {
		result = "invalid"
	}
	c.tokenValidations.WithLabelValues(result).Inc()
}

// Handler exposes the registry for the /metrics route.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
