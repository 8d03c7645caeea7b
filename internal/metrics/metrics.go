package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smokerider_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	OrdersAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smokerider_orders_accepted_total",
		Help: "Total number of orders successfully claimed by a rider.",
	})

	ClaimRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smokerider_claim_rejected_total",
		Help: "Accept attempts that failed the claim guard, by reason.",
	},
		[]string{"reason"},
	)

	EtaEnrichmentFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smokerider_eta_enrichment_failures_total",
		Help: "Best-effort ETA enrichment failures, by stage.",
	},
		[]string{"stage"},
	)

	OrdersSweptTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smokerider_orders_swept_total",
		Help: "Terminal orders removed by the maintenance sweep.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smokerider_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	OrderCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "smokerider_order_cache_items",
		Help: "Current number of items in the open-order cache.",
	})

	PushNotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smokerider_push_notifications_total",
		Help: "Push notifications attempted, by outcome.",
	},
		[]string{"outcome"},
	)
)
