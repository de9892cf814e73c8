package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

func TestRunnerEmitsEveryOrder(t *testing.T) {
	sink := &memorySink{}
	stream, err := NewOrderStream(newTestSynthesizer(t, 3), domain.NewSource(11), NoPause{}, StreamConfig{
		NumUsers: 3, MaxOrdersPerUser: 3, TotalCap: 5,
	})
	require.NoError(t, err)

	require.NoError(t, NewRunner(sink).Run(context.Background(), stream))
	assert.Len(t, sink.orders, 5)
}

func TestRunnerStopsCleanlyOnCancel(t *testing.T) {
	sink := &memorySink{}
	stream, err := NewOrderStream(&recordingBuilder{}, domain.NewSource(11), NoPause{}, StreamConfig{
		NumUsers: 3, MaxOrdersPerUser: 3, TotalCap: 9,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, NewRunner(sink).Run(ctx, stream))
	assert.Empty(t, sink.orders)
}

func TestRunnerAbortsOnSinkError(t *testing.T) {
	boom := errors.New("broker down")
	sink := &memorySink{err: boom}
	stream, err := NewOrderStream(&recordingBuilder{}, domain.NewSource(11), NoPause{}, StreamConfig{
		NumUsers: 3, MaxOrdersPerUser: 3, TotalCap: 9,
	})
	require.NoError(t, err)

	err = NewRunner(sink).Run(context.Background(), stream)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sink.orders)
}

func TestRunnerReportsBuildErrors(t *testing.T) {
	stream, err := NewOrderStream(&recordingBuilder{err: domain.ErrCalculation}, domain.NewSource(11), NoPause{}, StreamConfig{
		NumUsers: 1, MaxOrdersPerUser: 1, TotalCap: 1,
	})
	require.NoError(t, err)

	err = NewRunner(&memorySink{}).Run(context.Background(), stream)
	assert.ErrorIs(t, err, domain.ErrCalculation)
}
