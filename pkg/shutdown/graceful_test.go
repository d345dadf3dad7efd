package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"simplylife/pkg/shutdown"
)

var errHookFailed = errors.New("hook failed")

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32

	hook := func(_ context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(_ context.Context) error {
		calls.Add(1)
		return errHookFailed
	}

	shutdown.Run(context.Background(), time.Second, hook, failing, hook)

	assert.Equal(t, int32(3), calls.Load())
}

func TestRunRespectsTimeout(t *testing.T) {
	slow := func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	shutdown.Run(context.Background(), 100*time.Millisecond, slow)

	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitReturnsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	called := make(chan struct{})

	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second, func(_ context.Context) error {
			close(called)
			return nil
		})
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}

	select {
	case <-called:
	default:
		t.Error("hook was not called")
	}
}
