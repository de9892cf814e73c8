package port

import (
	"context"
	"time"
)

// Pacer 控制两条记录之间的停顿。测试里注入不等待的实现即可。
type Pacer interface {
	// Pause 阻塞 d，ctx 取消时提前返回 ctx.Err()
	Pause(ctx context.Context, d time.Duration) error
}
