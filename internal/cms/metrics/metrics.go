// Package metrics содержит метрики Prometheus CMS-сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics хранит счетчики и гистограммы сервиса.
type Metrics struct {
	registrationsFinished prometheus.Counter
	registrationsRejected *prometheus.CounterVec
	emailsSent            *prometheus.CounterVec
	emailsFailed          *prometheus.CounterVec
	loginFailures         *prometheus.CounterVec
	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
}

// New регистрирует метрики в reg. Если reg равен nil, используется реестр по умолчанию.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		registrationsFinished: factory.NewCounter(prometheus.CounterOpts{
			Name: "simplylife_registrations_finished_total",
			Help: "Total number of completed app user registrations",
		}),
		registrationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "simplylife_registrations_rejected_total",
			Help: "Total number of rejected registration submissions",
		}, []string{"reason"}),
		emailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "simplylife_emails_sent_total",
			Help: "Total number of emails accepted by the provider",
		}, []string{"kind"}),
		emailsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "simplylife_emails_failed_total",
			Help: "Total number of emails the provider refused or never received",
		}, []string{"kind"}),
		loginFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "simplylife_login_failures_total",
			Help: "Total number of failed login attempts",
		}, []string{"collection"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "simplylife_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "simplylife_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RegistrationFinished учитывает завершенную регистрацию.
func (m *Metrics) RegistrationFinished() {
	m.registrationsFinished.Inc()
}

// RegistrationRejected учитывает отклоненную отправку формы.
func (m *Metrics) RegistrationRejected(reason string) {
	m.registrationsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) EmailSent(kind string) {
	m.emailsSent.WithLabelValues(kind).Inc()
}

func (m *Metrics) EmailFailed(kind string) {
	m.emailsFailed.WithLabelValues(kind).Inc()
}

func (m *Metrics) LoginFailed(collection string) {
	m.loginFailures.WithLabelValues(collection).Inc()
}

// ObserveHTTP учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
