package inventory

import (
	"github.com/prometheus/client_golang/prometheus"

	"MiniShop/internal/apperr"
)

const (
	opAdd      = "add"
	opRemove   = "remove"
	opCheckout = "checkout"

	outcomeOK = "ok"
)

type metrics struct {
	ops      *prometheus.CounterVec
	reserved prometheus.Gauge
	sold     prometheus.Counter
}

// newMetrics registers with reg when it is non-nil. Unregistered
// collectors still count, they are just never scraped.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "minishop",
				Name:      "cart_operations_total",
				Help:      "Cart operations by kind and outcome",
			},
			[]string{"op", "outcome"},
		),
		reserved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "minishop",
			Name:      "reserved_units",
			Help:      "Units currently held in the cart",
		}),
		sold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "minishop",
			Name:      "checkout_total_amount",
			Help:      "Sum of completed checkout totals",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.ops, m.reserved, m.sold)
	}
	return m
}

func (m *metrics) observe(op string, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = apperr.KindOf(err).String()
	}
	m.ops.WithLabelValues(op, outcome).Inc()
}
