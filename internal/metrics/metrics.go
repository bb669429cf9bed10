// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignupTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_total",
			Help: "Cumulative number of email sign-ups stored.",
		})

	SignupDuplicateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_duplicate_total",
			Help: "Cumulative number of sign-ups resolved to an existing record.",
		})

	SignupRaceTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_race_total",
			Help: "Cumulative number of unique-constraint races recovered by re-read.",
		})

	ContentQueryTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_query_total",
			Help: "Cumulative number of image-section queries served.",
		})

	ContentNotFoundTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "content_not_found_total",
			Help: "Cumulative number of section queries answered not-found.",
		})

	AdminAuthFailTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_auth_fail_total",
			Help: "Cumulative number of rejected admin credentials.",
		})
)

func init() {
	prometheus.MustRegister(
		SignupTotal,
		SignupDuplicateTotal,
		SignupRaceTotal,
		ContentQueryTotal,
		ContentNotFoundTotal,
		AdminAuthFailTotal,
	)
}
