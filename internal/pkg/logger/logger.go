// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init 配置全局 zerolog。日志默认写 stderr，stdout 留给订单记录。
func Init(serviceName, level string, w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(lvl)
	zlog.Logger = zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
	// ctx 中没有 logger 时退回到全局 logger
	zerolog.DefaultContextLogger = &zlog.Logger
	return nil
}

// Ctx 返回 ctx 上挂载的 logger
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithRunID 在 ctx 上挂载带 run_id 字段的 logger
func WithRunID(ctx context.Context, runID string) context.Context {
	l := Ctx(ctx).With().Str("run_id", runID).Logger()
	return l.WithContext(ctx)
}
