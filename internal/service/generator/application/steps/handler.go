package steps

import (
	"context"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.opentelemetry.io/otel/trace"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// Engines 是构造订单所需的只读组件，一次构造、所有订单共享。
type Engines struct {
	Catalog          *domain.Catalog
	MaxItemsPerOrder int
	Subscriber       *domain.WeightedTable[bool]
	Payment          *domain.WeightedTable[domain.PaymentMethod]
	Discount         *domain.DiscountEngine
	Shipping         *domain.ShippingEngine
}

// BuildContext 在步骤链中传递一次订单构造的全部状态。
// Rng 是整个运行共享的随机源；Faker 是按 userID+orderNum 播种的身份随机流。
type BuildContext struct {
	Ctx       context.Context
	Tracer    trace.Tracer
	Order     *domain.Order
	OrderNum  int
	PromoDate time.Time
	Rng       *rand.Rand
	Faker     *gofakeit.Faker
	Engines   *Engines

	discount domain.Discount
}

// Handler 定义了步骤链中每个节点的接口
type Handler interface {
	// SetNext 设置链中的下一个处理器
	SetNext(handler Handler) Handler
	// Handle 执行当前节点的逻辑
	Handle(b *BuildContext) error
}

// NextHandler 嵌入到具体的处理器中，减少重复代码
type NextHandler struct {
	next Handler
}

func (h *NextHandler) SetNext(handler Handler) Handler {
	h.next = handler
	return handler
}

func (h *NextHandler) executeNext(b *BuildContext) error {
	if h.next != nil {
		return h.next.Handle(b)
	}
	return nil
}
