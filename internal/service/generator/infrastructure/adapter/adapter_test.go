package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	goredis "github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/mq"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/port"
)

func sampleOrder(userID int) *domain.Order {
	return &domain.Order{
		OrderID:   "2024-11-42",
		OrderDate: "11/29/2024",
		UserID:    userID,
		OrderedItems: domain.OrderedItems{
			{Type: "Books", Description: "Novel", Price: 12.5},
		},
		NumOrderedItems:    1,
		TotalOrderPrice:    12.5,
		PaymentMethod:      domain.PaymentMethods[0],
		ShippingMethod:     domain.ShippingMethods[0],
		EstimatedDelivery:  "12/05/2024",
		Platform:           "Mozilla/5.0",
		NetTotalOrderPrice: 12.5,
	}
}

func TestWriterSinkWritesOneLinePerOrder(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	require.NoError(t, sink.Emit(context.Background(), sampleOrder(1)))
	require.NoError(t, sink.Emit(context.Background(), sampleOrder(2)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var env domain.Envelope
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &env))
	assert.Equal(t, 2, env.Order.UserID)
	assert.True(t, strings.HasPrefix(lines[0], `{"order":{"order_id":"2024-11-42"`))
}

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeKafkaWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaSinkKeysByUser(t *testing.T) {
	w := &fakeKafkaWriter{}
	sink := NewKafkaSinkAdapter(w, noop.NewTracerProvider().Tracer("test"), "run-9")

	require.NoError(t, sink.Emit(context.Background(), sampleOrder(17)))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "17", string(msg.Key))
	assert.Equal(t, "run-9", mq.KafkaHeaderCarrier(msg.Headers).Get(mq.HeaderRunID))

	expected, err := sampleOrder(17).Encode()
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), string(msg.Value))

	require.NoError(t, sink.Close())
	assert.True(t, w.closed)
}

func TestKafkaSinkWrapsWriteErrors(t *testing.T) {
	boom := errors.New("leader not available")
	sink := NewKafkaSinkAdapter(&fakeKafkaWriter{err: boom}, noop.NewTracerProvider().Tracer("test"), "run")
	assert.ErrorIs(t, sink.Emit(context.Background(), sampleOrder(1)), boom)
}

type fakePublisher struct {
	channel  string
	messages [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *goredis.IntCmd {
	if p.err != nil {
		return goredis.NewIntResult(0, p.err)
	}
	p.channel = channel
	p.messages = append(p.messages, message.([]byte))
	return goredis.NewIntResult(1, nil)
}

func TestRedisSinkPublishes(t *testing.T) {
	pub := &fakePublisher{}
	closed := false
	sink := NewRedisSinkAdapter(pub, "orders", func() error { closed = true; return nil })

	require.NoError(t, sink.Emit(context.Background(), sampleOrder(3)))
	assert.Equal(t, "orders", pub.channel)
	require.Len(t, pub.messages, 1)
	assert.Contains(t, string(pub.messages[0]), `"user_id":3`)

	require.NoError(t, sink.Close())
	assert.True(t, closed)

	failing := NewRedisSinkAdapter(&fakePublisher{err: goredis.ErrClosed}, "orders", nil)
	assert.ErrorIs(t, failing.Emit(context.Background(), sampleOrder(3)), goredis.ErrClosed)
	assert.NoError(t, failing.Close())
}

type stubSink struct {
	name    string
	err     error
	emitted int
	closed  bool
}

func (s *stubSink) Name() string { return s.name }
func (s *stubSink) Emit(context.Context, *domain.Order) error {
	if s.err != nil {
		return s.err
	}
	s.emitted++
	return nil
}
func (s *stubSink) Close() error {
	s.closed = true
	return s.err
}

type sinkMetrics struct {
	emitted, failed map[string]int
}

func newSinkMetrics() *sinkMetrics {
	return &sinkMetrics{emitted: map[string]int{}, failed: map[string]int{}}
}

func (m *sinkMetrics) OrderBuilt(*domain.Order, time.Duration) {}
func (m *sinkMetrics) OrderEmitted(sink string)                { m.emitted[sink]++ }
func (m *sinkMetrics) SinkFailed(sink string)                  { m.failed[sink]++ }

func TestMultiSinkFansOut(t *testing.T) {
	a, b := &stubSink{name: "a"}, &stubSink{name: "b"}
	m := newSinkMetrics()
	var sink port.OrderSink = NewMultiSink(m, a, b)

	assert.Equal(t, "a+b", sink.Name())
	require.NoError(t, sink.Emit(context.Background(), sampleOrder(1)))
	assert.Equal(t, 1, a.emitted)
	assert.Equal(t, 1, b.emitted)
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, m.emitted)

	require.NoError(t, sink.Close())
	assert.True(t, a.closed && b.closed)
}

func TestMultiSinkStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	a, b, c := &stubSink{name: "a"}, &stubSink{name: "b", err: boom}, &stubSink{name: "c"}
	m := newSinkMetrics()
	sink := NewMultiSink(m, a, b, c)

	err := sink.Emit(context.Background(), sampleOrder(1))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sink b")
	assert.Zero(t, c.emitted)
	assert.Equal(t, 1, m.failed["b"])

	assert.ErrorIs(t, sink.Close(), boom)
	assert.True(t, c.closed)
}

func TestHubBroadcastsToClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.Run(ctx) }()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Emit(context.Background(), sampleOrder(5)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var env domain.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, 5, env.Order.UserID)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubEmitWithoutClients(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, "websocket", hub.Name())
	assert.NoError(t, hub.Emit(context.Background(), sampleOrder(1)))
	assert.NoError(t, hub.Close())
}
