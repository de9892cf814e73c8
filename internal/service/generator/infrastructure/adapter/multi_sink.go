package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/port"
)

// MultiSink 按顺序把订单交给每个 sink，任何一个失败即返回。
// 每个 sink 的成功/失败次数分别计入指标。
type MultiSink struct {
	sinks   []port.OrderSink
	metrics port.Metrics
}

func NewMultiSink(metrics port.Metrics, sinks ...port.OrderSink) *MultiSink {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &MultiSink{sinks: sinks, metrics: metrics}
}

func (m *MultiSink) Name() string {
	names := make([]string, len(m.sinks))
	for i, s := range m.sinks {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

func (m *MultiSink) Emit(ctx context.Context, order *domain.Order) error {
	for _, s := range m.sinks {
		if err := s.Emit(ctx, order); err != nil {
			m.metrics.SinkFailed(s.Name())
			return errors.WithMessagef(err, "sink %s", s.Name())
		}
		m.metrics.OrderEmitted(s.Name())
	}
	return nil
}

// Close 关闭全部 sink，返回第一个错误
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = errors.WithMessagef(err, "close sink %s", s.Name())
		}
	}
	return first
}

type nopMetrics struct{}

func (nopMetrics) OrderBuilt(*domain.Order, time.Duration) {}
func (nopMetrics) OrderEmitted(string)                     {}
func (nopMetrics) SinkFailed(string)                       {}
