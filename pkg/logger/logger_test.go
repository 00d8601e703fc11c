package logger_test

import (
	"context"
	"testing"

	"navhub/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_DefaultWhenContextEmpty(t *testing.T) {
	got := logger.Get(context.Background())
	require.NotNil(t, got)
}

func TestWithLogger_RoundTrip(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := logger.WithLogger(context.Background(), l)
	logger.Info(ctx, "hello")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "hello", logs.All()[0].Message)
}

func TestWithFields_AppendsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("requestID", "abc"))
	logger.Warn(ctx, "slow request")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "slow request", entry.Message)
	require.Equal(t, "abc", entry.ContextMap()["requestID"])
}
