package port

import (
	"context"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// OrderSink 是订单记录的出站端口 (stdout、Kafka、Redis、WebSocket ...)。
type OrderSink interface {
	// Name 用于日志和指标标签
	Name() string
	// Emit 投递一条已生成的订单。返回错误时整次运行中止。
	Emit(ctx context.Context, order *domain.Order) error
	Close() error
}
