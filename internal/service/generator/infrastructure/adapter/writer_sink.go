package adapter

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// WriterSink 每条订单写一行 JSON，默认接 stdout
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Name() string { return "stdout" }

func (s *WriterSink) Emit(_ context.Context, order *domain.Order) error {
	line, err := order.Encode()
	if err != nil {
		return errors.Wrap(err, "encode order")
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(line); err != nil {
		return errors.Wrap(err, "write order")
	}
	return nil
}

func (s *WriterSink) Close() error { return nil }
