// internal/service/generator/application/synthesizer.go
package application

import (
	"context"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/application/steps"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/port"
)

// Weights 是各个离散分布的权重，顺序与 domain 中候选项的固定顺序对齐。
type Weights struct {
	SubscriberUser  []float64 // [true, false]
	CouponApplied   []float64 // [true, false]
	PaymentMethods  []float64 // domain.PaymentMethods
	ShippingMethods []float64 // domain.ShippingMethods
}

// DefaultWeights 返回默认分布
func DefaultWeights() Weights {
	return Weights{
		SubscriberUser:  []float64{0.5, 0.5},
		CouponApplied:   []float64{0.3, 0.7},
		PaymentMethods:  []float64{0.75, 0.05, 0.05, 0.05, 0.05, 0.05},
		ShippingMethods: []float64{0.7, 0.2, 0.1},
	}
}

type SynthesizerConfig struct {
	PromoRule        domain.PromoRule
	MaxItemsPerOrder int
	Weights          Weights
	// Clock 决定促销日期的“今天”，为空时使用 time.Now
	Clock func() time.Time
}

// OrderBuilder 为 OrderStream 构造单条订单
type OrderBuilder interface {
	Build(ctx context.Context, rng *rand.Rand, userID, orderNum int) (*domain.Order, error)
}

// OrderSynthesizer 按固定的步骤链构造订单。促销日期在构造时计算一次。
type OrderSynthesizer struct {
	engines   *steps.Engines
	promoDate time.Time
	chain     steps.Handler
	tracer    trace.Tracer
	metrics   port.Metrics
}

func NewOrderSynthesizer(catalog *domain.Catalog, cfg SynthesizerConfig, tracer trace.Tracer, metrics port.Metrics) (*OrderSynthesizer, error) {
	if catalog.Len() == 0 {
		return nil, domain.NewConfigurationError(nil, "product catalog is empty")
	}
	if cfg.MaxItemsPerOrder < 1 {
		return nil, domain.NewConfigurationError(nil, "max items per order must be at least 1, got %d", cfg.MaxItemsPerOrder)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	promoDate, err := domain.NextPromotionalDate(clock(), cfg.PromoRule)
	if err != nil {
		return nil, err
	}

	subscriber, err := domain.NewWeightedTable([]bool{true, false}, cfg.Weights.SubscriberUser)
	if err != nil {
		return nil, err
	}
	payment, err := domain.NewWeightedTable(domain.PaymentMethods, cfg.Weights.PaymentMethods)
	if err != nil {
		return nil, err
	}
	discount, err := domain.NewDiscountEngine(cfg.Weights.CouponApplied)
	if err != nil {
		return nil, err
	}
	shipping, err := domain.NewShippingEngine(cfg.Weights.ShippingMethods)
	if err != nil {
		return nil, err
	}

	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &OrderSynthesizer{
		engines: &steps.Engines{
			Catalog:          catalog,
			MaxItemsPerOrder: cfg.MaxItemsPerOrder,
			Subscriber:       subscriber,
			Payment:          payment,
			Discount:         discount,
			Shipping:         shipping,
		},
		promoDate: promoDate,
		chain:     steps.Chain(),
		tracer:    tracer,
		metrics:   metrics,
	}, nil
}

// PromoDate 返回本次运行使用的促销日期
func (s *OrderSynthesizer) PromoDate() time.Time {
	return s.promoDate
}

// Build 构造 (userID, orderNum) 对应的订单。
// 身份字段 (订单号、礼品包装、平台) 来自以 userID+orderNum 播种的独立随机流，
// 其余字段从共享 rng 抽取，商品生成前 rng 会被 orderNum 重新播种。
func (s *OrderSynthesizer) Build(ctx context.Context, rng *rand.Rand, userID, orderNum int) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "generator.BuildOrder", trace.WithAttributes(
		attribute.Int("user.id", userID),
		attribute.Int("order.num", orderNum),
	))
	defer span.End()

	start := time.Now()
	b := &steps.BuildContext{
		Ctx:       ctx,
		Tracer:    s.tracer,
		Order:     &domain.Order{UserID: userID},
		OrderNum:  orderNum,
		PromoDate: s.promoDate,
		Rng:       rng,
		Faker:     gofakeit.New(int64(userID + orderNum)),
		Engines:   s.engines,
	}
	if err := s.chain.Handle(b); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order build failed")
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", b.Order.OrderID))
	s.metrics.OrderBuilt(b.Order, time.Since(start))
	return b.Order, nil
}

// NopMetrics 不记录任何指标
type NopMetrics struct{}

func (NopMetrics) OrderBuilt(*domain.Order, time.Duration) {}
func (NopMetrics) OrderEmitted(string)                     {}
func (NopMetrics) SinkFailed(string)                       {}
