// internal/pkg/redis/client.go
package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Publisher 是 redis.UniversalClient 的发布子集
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// NewClient 创建客户端并 PING 一次。单地址为单机，多地址为集群。
func NewClient(ctx context.Context, addrs []string, password string) (redis.UniversalClient, error) {
	if len(addrs) == 0 {
		return nil, errors.New("redis: no address configured")
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        addrs,
		Password:     password,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis: ping %v", addrs)
	}
	return client, nil
}
