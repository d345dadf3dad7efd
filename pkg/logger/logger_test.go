package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"simplylife/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development with explicit level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("production with default level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "loud")
		require.Error(t, err)
		assert.Nil(t, log)
		assert.ErrorIs(t, err, logger.ErrInvalidLevel)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("logger present", func(t *testing.T) {
		testLogger := logger.NewNop()
		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("logger missing", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLogPrefersContextLogger(t *testing.T) {
	ctxLogger := logger.NewNop()
	ctx := logger.NewContext(context.Background(), ctxLogger)

	assert.Same(t, ctxLogger, logger.Log(ctx))
}

func TestLogFallsBackToGlobal(t *testing.T) {
	global := logger.NewNop()
	logger.SetGlobalLogger(global)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	assert.Same(t, global, logger.Log(context.Background()))
}

func TestRequestID(t *testing.T) {
	t.Run("generated when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("kept when provided", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("logging with request id does not panic", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-43")
		log := logger.NewNop().WithRequestID(ctx)

		assert.NotPanics(t, func() {
			log.Info(ctx, "message", zap.String("key", "value"))
		})
	})
}
