// internal/service/generator/domain/errors.go
package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrConfiguration 目录文件缺失/损坏、权重表与候选项不匹配等致命配置错误
	ErrConfiguration = errors.New("configuration error")
	// ErrCalculation 促销日期计算失败
	ErrCalculation = errors.New("calculation error")
	// ErrInterrupted 用户中断 (SIGINT/SIGTERM)，只在顶层被视为正常退出
	ErrInterrupted = errors.New("interrupted by user")
)

// NewConfigurationError 构造一个可以用 errors.Is(err, ErrConfiguration) 识别的错误，并保留原始 cause。
func NewConfigurationError(cause error, format string, args ...interface{}) error {
	return wrapKind(ErrConfiguration, cause, format, args...)
}

// NewCalculationError 同上，用于日期计算。
func NewCalculationError(cause error, format string, args ...interface{}) error {
	return wrapKind(ErrCalculation, cause, format, args...)
}

// NewInterruptedError 把 ctx.Err() 包装成 ErrInterrupted，两者都能被 errors.Is 识别。
func NewInterruptedError(cause error) error {
	return wrapKind(ErrInterrupted, cause, "stream stopped")
}

func wrapKind(kind, cause error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return errors.Wrap(kind, msg)
	}
	return errors.WithStack(fmt.Errorf("%w: %s: %w", kind, msg, cause))
}
