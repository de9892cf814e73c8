package adapter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/redis"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// RedisSinkAdapter 通过 PUBLISH 把订单推到一个频道
type RedisSinkAdapter struct {
	client  redis.Publisher
	channel string
	closer  func() error
}

// NewRedisSinkAdapter closer 可以为空，由调用方自行关闭客户端
func NewRedisSinkAdapter(client redis.Publisher, channel string, closer func() error) *RedisSinkAdapter {
	return &RedisSinkAdapter{client: client, channel: channel, closer: closer}
}

func (a *RedisSinkAdapter) Name() string { return "redis" }

func (a *RedisSinkAdapter) Emit(ctx context.Context, order *domain.Order) error {
	payload, err := order.Encode()
	if err != nil {
		return errors.Wrap(err, "encode order")
	}
	if err := a.client.Publish(ctx, a.channel, payload).Err(); err != nil {
		return errors.Wrapf(err, "publish order %s to %s", order.OrderID, a.channel)
	}
	return nil
}

func (a *RedisSinkAdapter) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
