// Package metrics Prometheus-метрики сервиса
// Все методы безопасно вызывать на nil *Metrics: это позволяет отключать метрики конфигом
package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	slotsCreated         *prometheus.CounterVec
	slotTransitions      *prometheus.CounterVec
	bookingConflicts     *prometheus.CounterVec
	provisioningFailures *prometheus.CounterVec
	notifications        *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		registry:    prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database operation latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database operations",
		}, []string{"service", "operation"}),

		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		slotsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_slots_created_total",
			Help: "Total number of created interview slots",
		}, []string{"service"}),

		slotTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_slot_transitions_total",
			Help: "Slot state transitions by kind",
		}, []string{"service", "transition"}),

		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_booking_conflicts_total",
			Help: "Rejected operations due to conflicts",
		}, []string{"service", "kind"}),

		provisioningFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_meeting_provisioning_failures_total",
			Help: "Meeting provider calls that failed",
		}, []string{"service"}),

		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_notifications_total",
			Help: "Emitted notifications by backend and result",
		}, []string{"service", "backend", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbConnections,
		m.dbWaitCount,
		m.slotsCreated,
		m.slotTransitions,
		m.bookingConflicts,
		m.provisioningFailures,
		m.notifications,
	)

	return m
}

// Handler HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр (нужен тестам)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordHTTPRequest учитывает обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordDBOperation учитывает операцию с БД
func (m *Metrics) RecordDBOperation(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(stats.WaitCount))
}

// AddSlotsCreated учитывает созданные слоты
func (m *Metrics) AddSlotsCreated(n int) {
	if m == nil {
		return
	}
	m.slotsCreated.WithLabelValues(m.serviceName).Add(float64(n))
}

// IncSlotTransition учитывает переход состояния слота (book, release, cancel, complete, delete)
func (m *Metrics) IncSlotTransition(transition string) {
	if m == nil {
		return
	}
	m.slotTransitions.WithLabelValues(m.serviceName, transition).Inc()
}

// IncConflict учитывает отказ из-за конфликта (overlap, already_booked, duplicate_application)
func (m *Metrics) IncConflict(kind string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(m.serviceName, kind).Inc()
}

// IncProvisioningFailure учитывает неудачный вызов провайдера видеовстреч
func (m *Metrics) IncProvisioningFailure() {
	if m == nil {
		return
	}
	m.provisioningFailures.WithLabelValues(m.serviceName).Inc()
}

// IncNotification учитывает отправку уведомления
func (m *Metrics) IncNotification(backend, result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(m.serviceName, backend, result).Inc()
}
