package resilience

import (
	"context"

	"go.uber.org/zap"

	"simplylife/pkg/logger"
)

// ServiceResilience объединяет Circuit Breaker и повторные попытки для внешнего сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку с настройками по умолчанию.
func NewServiceResilience(serviceName string) *ServiceResilience {
	return NewServiceResilienceWithConfig(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig())
}

// NewServiceResilienceWithConfig создает обертку с заданными настройками.
func NewServiceResilienceWithConfig(serviceName string, cb CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cb),
		retry:          NewRetry(serviceName, retry),
	}
}

// ExecuteWithResilience выполняет операцию с отказоустойчивостью.
func (r *ServiceResilience) ExecuteWithResilience(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	).Debug(ctx, "executing operation with resilience")

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// State возвращает состояние Circuit Breaker сервиса.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.State()
}

// Execute выполняет операцию с результатом.
func Execute[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.ExecuteWithResilience(ctx, operationName, func() error {
		var err error
		result, err = operation()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
