package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderItemsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tailorshop_order_items_created_total",
		Help: "Total number of rental order items created at checkout.",
	})

	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailorshop_status_transitions_total",
		Help: "Total number of committed order item status transitions.",
	},
		[]string{"to_status"},
	)

	RefusalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailorshop_transition_refusals_total",
		Help: "Total number of refused transitions, by refusal code.",
	},
		[]string{"code"},
	)

	PaymentsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tailorshop_payments_recorded_total",
		Help: "Total number of ledger payments recorded.",
	})

	FanoutFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tailorshop_bundle_fanout_failures_total",
		Help: "Total number of per-garment inventory updates that failed during a return.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tailorshop_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	OverdueItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tailorshop_overdue_items",
		Help: "Number of rented items currently past their due date.",
	})

	OrderCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tailorshop_order_cache_items",
		Help: "Current number of items in the order cache.",
	})
)
