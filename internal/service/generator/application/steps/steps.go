// internal/service/generator/application/steps/steps.go
package steps

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

const (
	maxOrderNumber = 9999999999 // 10 位随机数
	giftWrapChance = 20         // 百分比
	minSalesTax    = 0.01
	maxSalesTax    = 0.1
)

// IdentityHandler 生成订单号和订单日期，只使用身份随机流。
type IdentityHandler struct {
	NextHandler
}

func (h *IdentityHandler) Handle(b *BuildContext) error {
	b.Order.OrderID = fmt.Sprintf("%d-%d-%d", b.PromoDate.Year(), int(b.PromoDate.Month()), b.Faker.Number(0, maxOrderNumber))
	b.Order.OrderDate = b.PromoDate.Format(domain.DateLayout)
	return h.executeNext(b)
}

// SubscriberHandler 在商品生成之前从共享随机源抽取订阅标记
type SubscriberHandler struct {
	NextHandler
}

func (h *SubscriberHandler) Handle(b *BuildContext) error {
	b.Order.SubscriberUser = b.Engines.Subscriber.Pick(b.Rng)
	return h.executeNext(b)
}

// ItemsHandler 用订单序号重播种共享随机源并生成商品，随后计算件数和总价。
type ItemsHandler struct {
	NextHandler
}

func (h *ItemsHandler) Handle(b *BuildContext) error {
	_, span := b.Tracer.Start(b.Ctx, "steps.SynthesizeItems")
	defer span.End()

	items, err := domain.SynthesizeItems(b.Rng, int64(b.OrderNum), b.Engines.Catalog, b.Engines.MaxItemsPerOrder)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "item synthesis failed")
		return err
	}
	b.Order.OrderedItems = items
	b.Order.NumOrderedItems = len(items)
	b.Order.TotalOrderPrice = domain.SumRound2(items.Prices()...)
	span.SetAttributes(attribute.Int("order.num_items", len(items)))

	return h.executeNext(b)
}

type PaymentHandler struct {
	NextHandler
}

func (h *PaymentHandler) Handle(b *BuildContext) error {
	b.Order.PaymentMethod = b.Engines.Payment.Pick(b.Rng)
	return h.executeNext(b)
}

type DiscountHandler struct {
	NextHandler
}

func (h *DiscountHandler) Handle(b *BuildContext) error {
	b.discount = b.Engines.Discount.Apply(b.Rng)
	b.Order.DiscountCouponApplied = b.discount.Applied
	b.Order.DiscountCouponDescription = b.discount.Code
	b.Order.DiscountCouponValue = b.discount.Fraction
	return h.executeNext(b)
}

// SalesTaxHandler 税率本身也保留两位小数，再乘以总价
type SalesTaxHandler struct {
	NextHandler
}

func (h *SalesTaxHandler) Handle(b *BuildContext) error {
	rate := domain.Round2(domain.Uniform(b.Rng, minSalesTax, maxSalesTax))
	b.Order.SalesTaxValue = domain.Round2(b.Order.TotalOrderPrice * rate)
	return h.executeNext(b)
}

type GiftWrapHandler struct {
	NextHandler
}

func (h *GiftWrapHandler) Handle(b *BuildContext) error {
	b.Order.GiftWrap = b.Faker.Number(1, 100) <= giftWrapChance
	return h.executeNext(b)
}

type ShippingHandler struct {
	NextHandler
}

func (h *ShippingHandler) Handle(b *BuildContext) error {
	s := b.Engines.Shipping.Compute(b.Rng, b.Order.SubscriberUser, b.Order.TotalOrderPrice, b.PromoDate)
	b.Order.ShippingMethod = s.Method
	b.Order.ShippingCost = s.Cost
	b.Order.EstimatedDelivery = s.EstimatedDelivery
	return h.executeNext(b)
}

type PlatformHandler struct {
	NextHandler
}

func (h *PlatformHandler) Handle(b *BuildContext) error {
	b.Order.Platform = b.Faker.UserAgent()
	return h.executeNext(b)
}

// NetTotalHandler 是链的末端。净额不做下限截断，可能为负。
type NetTotalHandler struct {
	NextHandler
}

func (h *NetTotalHandler) Handle(b *BuildContext) error {
	o := b.Order
	o.NetTotalOrderPrice = domain.NetTotal(o.TotalOrderPrice, o.ShippingCost, o.DiscountCouponValue, o.SalesTaxValue)
	return h.executeNext(b)
}

// Chain 按固定顺序组装步骤链。顺序决定共享随机源的抽取顺序，调整会改变输出。
func Chain() Handler {
	chain := new(IdentityHandler)
	chain.SetNext(new(SubscriberHandler)).
		SetNext(new(ItemsHandler)).
		SetNext(new(PaymentHandler)).
		SetNext(new(DiscountHandler)).
		SetNext(new(SalesTaxHandler)).
		SetNext(new(GiftWrapHandler)).
		SetNext(new(ShippingHandler)).
		SetNext(new(PlatformHandler)).
		SetNext(new(NetTotalHandler))
	return chain
}
