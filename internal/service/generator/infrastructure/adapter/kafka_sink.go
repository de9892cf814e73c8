// internal/service/generator/infrastructure/adapter/kafka_sink.go
package adapter

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/mq"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// KafkaSinkAdapter 把订单发布到 Kafka，key 为 user id，同一用户的订单落在同一分区
type KafkaSinkAdapter struct {
	writer mq.MessageWriter
	tracer trace.Tracer
	runID  string
}

func NewKafkaSinkAdapter(writer mq.MessageWriter, tracer trace.Tracer, runID string) *KafkaSinkAdapter {
	return &KafkaSinkAdapter{writer: writer, tracer: tracer, runID: runID}
}

func (a *KafkaSinkAdapter) Name() string { return "kafka" }

func (a *KafkaSinkAdapter) Emit(ctx context.Context, order *domain.Order) error {
	ctx, span := a.tracer.Start(ctx, "sink.kafka.Emit", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(attribute.String("order.id", order.OrderID))

	payload, err := order.Encode()
	if err != nil {
		return errors.Wrap(err, "encode order")
	}

	// 调用通用的 mq.ProduceMessage，它会自动处理追踪上下文注入
	err = mq.ProduceMessage(ctx, a.writer, []byte(strconv.Itoa(order.UserID)), payload,
		kafka.Header{Key: mq.HeaderRunID, Value: []byte(a.runID)})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "kafka write failed")
		return errors.Wrapf(err, "publish order %s", order.OrderID)
	}
	return nil
}

// Close 关闭底层的Kafka writer。
func (a *KafkaSinkAdapter) Close() error {
	return a.writer.Close()
}
