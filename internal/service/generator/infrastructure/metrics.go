// internal/service/generator/infrastructure/metrics.go
package infrastructure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

const namespace = "ordergen"

// PrometheusMetrics 实现 port.Metrics
type PrometheusMetrics struct {
	ordersBuilt   prometheus.Counter
	ordersEmitted *prometheus.CounterVec
	sinkFailures  *prometheus.CounterVec
	buildSeconds  prometheus.Histogram
	netTotal      prometheus.Histogram
	itemsPerOrder prometheus.Histogram
}

// NewPrometheusMetrics 在 reg 上注册全部指标。测试中传入独立的 Registry。
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		ordersBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_built_total",
			Help:      "Number of synthetic orders built.",
		}),
		ordersEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_emitted_total",
			Help:      "Number of orders delivered, by sink.",
		}, []string{"sink"}),
		sinkFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Number of failed deliveries, by sink.",
		}, []string{"sink"}),
		buildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_build_seconds",
			Help:      "Time spent building one order.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		netTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_net_total",
			Help:      "Distribution of net order totals.",
			Buckets:   []float64{0, 50, 100, 250, 500, 750, 1000},
		}),
		itemsPerOrder: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_items",
			Help:      "Number of line items per order.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.ordersBuilt, m.ordersEmitted, m.sinkFailures, m.buildSeconds, m.netTotal, m.itemsPerOrder} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) OrderBuilt(order *domain.Order, elapsed time.Duration) {
	m.ordersBuilt.Inc()
	m.buildSeconds.Observe(elapsed.Seconds())
	m.netTotal.Observe(order.NetTotalOrderPrice)
	m.itemsPerOrder.Observe(float64(order.NumOrderedItems))
}

func (m *PrometheusMetrics) OrderEmitted(sink string) {
	m.ordersEmitted.WithLabelValues(sink).Inc()
}

func (m *PrometheusMetrics) SinkFailed(sink string) {
	m.sinkFailures.WithLabelValues(sink).Inc()
}
