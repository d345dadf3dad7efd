package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	svc "simplylife/internal/cms/ports/services"
)

const (
	loginPrefix             = "login_attempts"
	errorFailedToIncrement  = "failed to register login failure"
	defaultMaxLoginAttempts = 5
)

// LoginLimiter считает неудачные попытки входа в Redis.
// После maxAttempts неудач учетная запись блокируется на lockTime с момента последней неудачи.
type LoginLimiter struct {
	store       store
	maxAttempts int
	lockTime    time.Duration
}

// NewLoginLimiter создает ограничитель попыток входа.
func NewLoginLimiter(client redis.Cmdable, maxAttempts int, lockTime time.Duration) svc.LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxLoginAttempts
	}
	return &LoginLimiter{
		store:       newStore(client, loginPrefix),
		maxAttempts: maxAttempts,
		lockTime:    lockTime,
	}
}

func (l *LoginLimiter) attemptsKey(collection, email string) string {
	return l.store.key(collection, strings.ToLower(strings.TrimSpace(email)))
}

// Locked сообщает, исчерпан ли лимит попыток.
func (l *LoginLimiter) Locked(ctx context.Context, collection, email string) (bool, error) {
	value, ok, err := l.store.get(ctx, l.attemptsKey(collection, email))
	if err != nil || !ok {
		return false, err
	}
	attempts, err := strconv.Atoi(value)
	if err != nil {
		return false, fmt.Errorf("invalid attempts counter %q: %w", value, err)
	}
	return attempts >= l.maxAttempts, nil
}

// RegisterFailure увеличивает счетчик и продлевает срок блокировки.
func (l *LoginLimiter) RegisterFailure(ctx context.Context, collection, email string) (int, error) {
	key := l.attemptsKey(collection, email)

	var incr *redis.IntCmd
	_, err := l.store.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.lockTime)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errorFailedToIncrement, err)
	}
	return int(incr.Val()), nil
}

// Reset сбрасывает счетчик после успешного входа.
func (l *LoginLimiter) Reset(ctx context.Context, collection, email string) error {
	return l.store.delete(ctx, l.attemptsKey(collection, email))
}
