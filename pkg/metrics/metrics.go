package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "menu"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	DishesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "dishes_created_total", Help: "Dishes persisted, by create mode (single|bulk)."},
		[]string{"mode"},
	)
	BulkCandidatesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "bulk_candidates_dropped_total", Help: "Bulk create entries dropped for missing name or price."},
	)
	DishLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "dish_lookups_total", Help: "Dish lookups by identifier kind and outcome."},
		[]string{"kind", "result"},
	)
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "admin_logins_total", Help: "Admin login attempts by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(DishesCreated)
	reg.MustRegister(BulkCandidatesDropped)
	reg.MustRegister(DishLookups)
	reg.MustRegister(AdminLogins)
}
