// Package metrics holds the Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus counters for the application.
type Metrics struct {
	UsersRegistered   prometheus.Counter
	Logins            prometheus.Counter
	LoginFailures     prometheus.Counter
	AccidentsReported prometheus.Counter
	InsurancesCreated prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crashlog_users_registered_total",
			Help: "Total number of user accounts created.",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crashlog_logins_total",
			Help: "Total number of successful logins.",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crashlog_login_failures_total",
			Help: "Total number of failed login attempts.",
		}),
		AccidentsReported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crashlog_accidents_reported_total",
			Help: "Total number of accident reports filed.",
		}),
		InsurancesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crashlog_insurances_created_total",
			Help: "Total number of insurance records created.",
		}),
	}
}

// Nop returns metrics backed by an isolated registry, for tests.
func Nop() *Metrics {
	reg := prometheus.NewRegistry()
	counter := func(name string) prometheus.Counter {
		return promauto.With(reg).NewCounter(prometheus.CounterOpts{Name: name})
	}
	return &Metrics{
		UsersRegistered:   counter("test_users_registered_total"),
		Logins:            counter("test_logins_total"),
		LoginFailures:     counter("test_login_failures_total"),
		AccidentsReported: counter("test_accidents_reported_total"),
		InsurancesCreated: counter("test_insurances_created_total"),
	}
}
