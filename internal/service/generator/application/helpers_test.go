package application

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

var fixedNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

func twoTypeCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog([]domain.CatalogEntry{
		{Type: "Electronics", Descriptions: []string{"Phone"}},
		{Type: "Books", Descriptions: []string{"Novel"}},
	})
	require.NoError(t, err)
	return c
}

func newTestSynthesizer(t *testing.T, maxItems int) *OrderSynthesizer {
	t.Helper()
	s, err := NewOrderSynthesizer(twoTypeCatalog(t), SynthesizerConfig{
		PromoRule:        domain.DefaultPromoRule,
		MaxItemsPerOrder: maxItems,
		Weights:          DefaultWeights(),
		Clock:            func() time.Time { return fixedNow },
	}, noop.NewTracerProvider().Tracer("test"), nil)
	require.NoError(t, err)
	return s
}

// recordingBuilder 记录被请求的 (用户, 序号) 组合
type recordingBuilder struct {
	pairs []Pair
	err   error
}

func (b *recordingBuilder) Build(_ context.Context, _ *rand.Rand, userID, orderNum int) (*domain.Order, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.pairs = append(b.pairs, Pair{UserID: userID, OrderNum: orderNum})
	return &domain.Order{OrderID: "test", UserID: userID}, nil
}

type recordingPacer struct {
	delays []time.Duration
}

func (p *recordingPacer) Pause(ctx context.Context, d time.Duration) error {
	p.delays = append(p.delays, d)
	return ctx.Err()
}

type memorySink struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (s *memorySink) Name() string { return "memory" }

func (s *memorySink) Emit(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *memorySink) Close() error { return nil }

type countingMetrics struct {
	built, emitted, failed int
}

func (m *countingMetrics) OrderBuilt(*domain.Order, time.Duration) { m.built++ }
func (m *countingMetrics) OrderEmitted(string)                     { m.emitted++ }
func (m *countingMetrics) SinkFailed(string)                       { m.failed++ }
