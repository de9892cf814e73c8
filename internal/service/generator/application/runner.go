package application

import (
	"context"
	"errors"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/logger"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/port"
)

// Runner 从订单流中拉取订单并交给 sink
type Runner struct {
	sink port.OrderSink
}

func NewRunner(sink port.OrderSink) *Runner {
	return &Runner{sink: sink}
}

// Run 直到订单流结束或 ctx 被取消。取消被视为正常停止，返回 nil；
// 已经构造好的那条订单仍会投递。sink 出错则中止。
func (r *Runner) Run(ctx context.Context, stream *OrderStream) error {
	log := logger.Ctx(ctx)
	// 取消信号只打断等待，不打断正在投递的记录
	emitCtx := context.WithoutCancel(ctx)

	for {
		order, err := stream.Next(ctx)
		switch {
		case errors.Is(err, ErrStreamDone):
			log.Info().Int("emitted", stream.Emitted()).Msg("✅ Order stream finished")
			return nil
		case errors.Is(err, domain.ErrInterrupted):
			log.Warn().Int("emitted", stream.Emitted()).Msg("🛑 Order stream interrupted, stopping")
			return nil
		case err != nil:
			return err
		}

		if err := r.sink.Emit(emitCtx, order); err != nil {
			log.Error().Err(err).Str("sink", r.sink.Name()).Str("order_id", order.OrderID).Msg("❌ Failed to emit order")
			return err
		}
		log.Debug().Str("order_id", order.OrderID).Int("user_id", order.UserID).Msg("order emitted")
	}
}
