package application

import (
	"context"
	"time"
)

// TimerPacer 真实地等待，ctx 取消时立即返回
type TimerPacer struct{}

func (TimerPacer) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoPause 不等待。延迟依旧会从 rng 中抽取，所以输出与 TimerPacer 一致。
type NoPause struct{}

func (NoPause) Pause(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
