package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	resultSent   = "sent"
	resultFailed = "failed"
)

// Publisher backend доставки уведомлений
type Publisher interface {
	Name() string
	Publish(ctx context.Context, n Notification) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsRecorder учёт отправленных уведомлений
type MetricsRecorder interface {
	IncNotification(backend, result string)
}

// Emitter рассылает уведомления во все настроенные backends
// Ошибки доставки логируются и никогда не возвращаются вызывающему коду
type Emitter struct {
	publishers []Publisher
	timeout    time.Duration
	logger     Logger
	metrics    MetricsRecorder
	now        func() time.Time

	inflight sync.WaitGroup
}

// NewEmitter создает новый экземпляр Emitter
// metrics может быть nil
func NewEmitter(timeout time.Duration, logger Logger, metrics MetricsRecorder, publishers ...Publisher) *Emitter {
	return &Emitter{
		publishers: publishers,
		timeout:    timeout,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Notify ставит уведомления в отправку и сразу возвращает управление
// Рассылка идёт в фоне, каждая отправка ограничена timeout
// Отмена ctx вызывающего не прерывает отправку: переход состояния к этому моменту уже зафиксирован
func (e *Emitter) Notify(ctx context.Context, notifications ...Notification) {
	if len(e.publishers) == 0 || len(notifications) == 0 {
		return
	}

	batch := make([]Notification, len(notifications))
	for i, n := range notifications {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = e.now()
		}
		batch[i] = n
	}

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		e.send(context.WithoutCancel(ctx), batch)
	}()
}

// Wait ждёт завершения всех начатых рассылок
func (e *Emitter) Wait() {
	e.inflight.Wait()
}

// Close дожидается начатых рассылок и закрывает все backends
func (e *Emitter) Close() error {
	e.inflight.Wait()

	var errs []error
	for _, p := range e.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Emitter) send(ctx context.Context, batch []Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var g errgroup.Group
	for _, n := range batch {
		for _, p := range e.publishers {
			n, p := n, p
			g.Go(func() error {
				if err := p.Publish(sendCtx, n); err != nil {
					e.logger.Warn("Notify: backend=%s failed to deliver kind=%s to user=%d: %v",
						p.Name(), n.Kind, n.UserID, err)
					e.record(p.Name(), resultFailed)
					return err
				}
				e.record(p.Name(), resultSent)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		e.logger.Error("Notify: some notifications were not delivered: %v", err)
	}
}

func (e *Emitter) record(backend, result string) {
	if e.metrics == nil {
		return
	}
	e.metrics.IncNotification(backend, result)
}
