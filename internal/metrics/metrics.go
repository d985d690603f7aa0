package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesTotal counts dispatched updates by kind
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storebot",
		Name:      "updates_total",
		Help:      "Inbound updates dispatched, by kind.",
	}, []string{"kind"})

	// WizardCommitsTotal counts finished wizard runs by action and result
	WizardCommitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storebot",
		Name:      "wizard_commits_total",
		Help:      "Admin wizard runs that reached the photo step.",
	}, []string{"action", "result"})

	OrdersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storebot",
		Name:      "orders_total",
		Help:      "Orders recorded.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storebot",
		Name:      "notification_failures_total",
		Help:      "Admin order notifications that could not be delivered.",
	})
)

// Result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)
