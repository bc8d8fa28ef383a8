package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for checkout and inventory
// observability. A nil *Metrics is valid and records nothing, which keeps
// unit tests free of registry setup.
type Metrics struct {
	OrdersCreated     prometheus.Counter
	OrderValue        prometheus.Histogram
	OrderItemCount    prometheus.Histogram
	CheckoutRejected  *prometheus.CounterVec
	StockConflicts    prometheus.Counter
	CouponsApplied    prometheus.Counter
	CouponsRejected   prometheus.Counter
	UnitsSold         prometheus.Counter
	RevenueCollected  prometheus.Counter
	StockReplenished  prometheus.Counter
}

// NewMetrics creates and registers all checkout metrics on the default
// registry. Call once at startup.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "vanir"
	}

	subsystem := "checkout"

	return &Metrics{
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_created_total",
			Help:      "Total orders materialized",
		}),
		OrderValue: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value_cents",
			Help:      "Order total distribution in cents",
			Buckets:   []float64{1000, 2500, 5000, 7500, 10000, 15000, 25000, 50000, 100000},
		}),
		OrderItemCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_item_count",
			Help:      "Number of lines per order",
			Buckets:   []float64{1, 2, 3, 5, 10, 15, 20},
		}),
		CheckoutRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkout_rejected_total",
			Help:      "Total checkouts rejected by availability validation",
		}, []string{"reason"}), // reason: validation, stock_conflict
		StockConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stock_conflicts_total",
			Help:      "Total guarded decrements rejected at commit time",
		}),
		CouponsApplied: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "coupons_applied_total",
			Help:      "Total orders placed with a discount applied",
		}),
		CouponsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "coupons_rejected_total",
			Help:      "Total coupon codes that failed resolution and were dropped",
		}),
		UnitsSold: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "units_sold_total",
			Help:      "Total units decremented from stock by orders",
		}),
		RevenueCollected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "revenue_cents_total",
			Help:      "Total revenue in cents recorded by the inventory ledger",
		}),
		StockReplenished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "units_replenished_total",
			Help:      "Total units returned to stock (cancellations, returns)",
		}),
	}
}

// RecordOrder records a successful materialization.
func (m *Metrics) RecordOrder(totalCents int64, itemCount int) {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
	m.OrderValue.Observe(float64(totalCents))
	m.OrderItemCount.Observe(float64(itemCount))
}

// RecordRejection records a checkout rejected before any side effects.
func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.CheckoutRejected.WithLabelValues(reason).Inc()
}

// RecordStockConflict records a guarded decrement losing a race.
func (m *Metrics) RecordStockConflict() {
	if m == nil {
		return
	}
	m.StockConflicts.Inc()
	m.CheckoutRejected.WithLabelValues("stock_conflict").Inc()
}

// RecordCoupon records coupon resolution outcome for an order.
func (m *Metrics) RecordCoupon(applied bool) {
	if m == nil {
		return
	}
	if applied {
		m.CouponsApplied.Inc()
	} else {
		m.CouponsRejected.Inc()
	}
}

// RecordSale records units and revenue moved by the ledger.
func (m *Metrics) RecordSale(units, revenueCents int64) {
	if m == nil {
		return
	}
	m.UnitsSold.Add(float64(units))
	m.RevenueCollected.Add(float64(revenueCents))
}

// RecordReplenishment records stock returned by the ledger.
func (m *Metrics) RecordReplenishment(units int64) {
	if m == nil {
		return
	}
	m.StockReplenished.Add(float64(units))
}
