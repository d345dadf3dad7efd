package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplylife/pkg/db/redis"
)

type settings struct {
	host string
	port int
}

func (s settings) GetHost() string { return s.host }
func (s settings) GetPort() int { return s.port }
func (s settings) GetPassword() string { return "" }
func (s settings) GetDB() int { return 0 }
func (s settings) GetPoolSize() int { return 0 }
func (s settings) GetTimeout() time.Duration { return 0 }

func TestNewConfigAppliesDefaults(t *testing.T) {
	cfg := redis.NewConfig(settings{host: "cache", port: 6380})

	assert.Equal(t, "cache:6380", cfg.Address())
	assert.Equal(t, redis.DefaultPoolSize, cfg.PoolSize)
	assert.Equal(t, redis.DefaultTimeout, cfg.Timeout)
}

func TestNewClient(t *testing.T) {
	t.Run("connects to running server", func(t *testing.T) {
		srv := miniredis.RunT(t)
		host, portStr, _ := strings.Cut(srv.Addr(), ":")
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)

		client, err := redis.NewClient(context.Background(), redis.NewConfig(settings{host: host, port: port}))
		require.NoError(t, err)
		assert.NoError(t, client.Close())
	})

	t.Run("fails on unreachable server", func(t *testing.T) {
		cfg := redis.DefaultConfig()
		cfg.Host = "127.0.0.1"
		cfg.Port = 1
		cfg.Timeout = 100 * time.Millisecond

		client, err := redis.NewClient(context.Background(), cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})
}
