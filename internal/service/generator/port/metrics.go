package port

import (
	"time"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// Metrics 记录生成器的运行指标
type Metrics interface {
	OrderBuilt(order *domain.Order, elapsed time.Duration)
	OrderEmitted(sink string)
	SinkFailed(sink string)
}
