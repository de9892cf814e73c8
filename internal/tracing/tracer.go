// internal/tracing/tracer.go
package tracing

import (
	"context"

	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ShutdownFunc 刷出缓冲的 span 并关闭 provider
type ShutdownFunc func(ctx context.Context) error

// InitTracerProvider 创建并注册全局 TracerProvider。
// jaegerEndpoint 为空时返回 noop provider，不发送任何数据。
func InitTracerProvider(serviceName, jaegerEndpoint string) (trace.TracerProvider, ShutdownFunc, error) {
	// 设置全局的 TextMapPropagator，Kafka 消息头和 HTTP 请求都依赖它
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if jaegerEndpoint == "" {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, func(context.Context) error { return nil }, nil
	}

	// 创建 Jaeger Exporter，用于将 Span 数据发送到 Jaeger
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(jaegerEndpoint)))
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		// 生成器的订单量不大，全部采样
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)
	otel.SetTracerProvider(tp)

	zlog.Info().Str("service", serviceName).Str("endpoint", jaegerEndpoint).Msg("Tracing initialized")
	return tp, tp.Shutdown, nil
}
