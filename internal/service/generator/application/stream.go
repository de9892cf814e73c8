// internal/service/generator/application/stream.go
package application

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/port"
)

// ErrStreamDone 表示已达到总量上限或 (用户, 订单) 组合已用尽
var ErrStreamDone = errors.New("order stream exhausted")

type StreamConfig struct {
	NumUsers         int
	MaxOrdersPerUser int
	TotalCap         int
	MinDelay         time.Duration
	MaxDelay         time.Duration
}

func (c StreamConfig) validate() error {
	switch {
	case c.NumUsers < 1:
		return domain.NewConfigurationError(nil, "number of users must be at least 1, got %d", c.NumUsers)
	case c.MaxOrdersPerUser < 1:
		return domain.NewConfigurationError(nil, "max orders per user must be at least 1, got %d", c.MaxOrdersPerUser)
	case c.TotalCap < 1:
		return domain.NewConfigurationError(nil, "total orders must be at least 1, got %d", c.TotalCap)
	case c.MinDelay < 0 || c.MaxDelay < c.MinDelay:
		return domain.NewConfigurationError(nil, "invalid delay range [%s, %s]", c.MinDelay, c.MaxDelay)
	}
	return nil
}

// Pair 是一个 (用户, 订单序号) 组合，序号从 1 开始
type Pair struct {
	UserID   int
	OrderNum int
}

// OrderStream 是拉取式的订单流。每个组合最多出现一次，顺序在创建时由共享 rng 打乱。
type OrderStream struct {
	builder OrderBuilder
	rng     *rand.Rand
	pacer   port.Pacer
	cfg     StreamConfig
	pairs   []Pair
	pos     int
	emitted atomic.Int64
}

func NewOrderStream(builder OrderBuilder, rng *rand.Rand, pacer port.Pacer, cfg StreamConfig) (*OrderStream, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if pacer == nil {
		pacer = TimerPacer{}
	}

	pairs := make([]Pair, 0, cfg.NumUsers*cfg.MaxOrdersPerUser)
	for u := 1; u <= cfg.NumUsers; u++ {
		for o := 1; o <= cfg.MaxOrdersPerUser; o++ {
			pairs = append(pairs, Pair{UserID: u, OrderNum: o})
		}
	}
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	return &OrderStream{
		builder: builder,
		rng:     rng,
		pacer:   pacer,
		cfg:     cfg,
		pairs:   pairs,
	}, nil
}

// Emitted 返回已经产出的订单数，可在其他 goroutine 中读取
func (s *OrderStream) Emitted() int {
	return int(s.emitted.Load())
}

// Next 等待一段随机延迟后产出下一条订单。
// 流结束返回 ErrStreamDone；等待期间 ctx 被取消返回 ErrInterrupted (同时匹配 ctx.Err())。
func (s *OrderStream) Next(ctx context.Context) (*domain.Order, error) {
	if s.pos >= s.cfg.TotalCap || s.pos >= len(s.pairs) {
		return nil, ErrStreamDone
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewInterruptedError(err)
	}

	delay := s.cfg.MinDelay + time.Duration(s.rng.Float64()*float64(s.cfg.MaxDelay-s.cfg.MinDelay))
	if err := s.pacer.Pause(ctx, delay); err != nil {
		return nil, domain.NewInterruptedError(err)
	}

	p := s.pairs[s.pos]
	order, err := s.builder.Build(ctx, s.rng, p.UserID, p.OrderNum)
	if err != nil {
		return nil, err
	}
	s.pos++
	s.emitted.Add(1)
	return order, nil
}
