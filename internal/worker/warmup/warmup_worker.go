// Package warmup содержит воркер, заранее строящий фигуры карты и графиков в
// кеш по событиям из стрима stream:dashboard:warmup.
package warmup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
	"github.com/covid-dashboard/internal/worker"
)

const (
	maxBatchSize    = 10
	emptyQueueSleep = 200 * time.Millisecond
	errorSleep      = time.Second
	retryBackoff    = 100 * time.Millisecond
)

// MapWarmer строит карту за дату и пишет ее в кеш
type MapWarmer interface {
	Warm(ctx context.Context, day time.Time) error
}

// ChartWarmer строит график показателя локации и пишет его в кеш
type ChartWarmer interface {
	Warm(ctx context.Context, metric domain.Metric, location string) error
}

// Options - значения по умолчанию для пустых полей события
type Options struct {
	ConsumerGroup    string
	MaxRetries       int
	NationalLocation string
	Metrics          []domain.Metric
	// PollInterval - пауза при пустом стриме
	PollInterval time.Duration
}

// FigureWarmupWorker обрабатывает события прогрева кеша фигур
type FigureWarmupWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	dataset    repository.DatasetRepository
	maps       MapWarmer
	charts     ChartWarmer
	opts       Options
	sleep      time.Duration
}

// NewFigureWarmupWorker создает новый FigureWarmupWorker
func NewFigureWarmupWorker(
	streamRepo repository.StreamRepository,
	dataset repository.DatasetRepository,
	maps MapWarmer,
	charts ChartWarmer,
	opts Options,
	logger *zap.Logger,
) *FigureWarmupWorker {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if len(opts.Metrics) == 0 {
		opts.Metrics = domain.Metrics
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = emptyQueueSleep
	}

	return &FigureWarmupWorker{
		BaseWorker: worker.NewBaseWorker("figure-warmup", opts.ConsumerGroup, logger),
		streamRepo: streamRepo,
		dataset:    dataset,
		maps:       maps,
		charts:     charts,
		opts:       opts,
		sleep:      opts.PollInterval,
	}
}

// Start запускает цикл чтения стрима
func (w *FigureWarmupWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting FigureWarmupWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamFigureWarmup, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.pause(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.pause(ctx, w.sleep)
			}
		}
	}
}

// pause ждет d, прерываясь на остановке воркера или отмене ctx
func (w *FigureWarmupWorker) pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-w.StopChan():
	case <-ctx.Done():
	}
}

// processBatch читает и обрабатывает пачку событий.
// Возвращает количество прочитанных сообщений.
func (w *FigureWarmupWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamFigureWarmup,
		w.ConsumerGroup(),
		w.ConsumerName(),
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamFigureWarmup, w.ConsumerGroup(), msg.ID)
			continue
		}

		done := w.handle(ctx, event)

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamFigureWarmupDone, done); err != nil {
			logger.Error("Failed to publish done event",
				zap.String("request_id", event.RequestID.String()),
				zap.Error(err))
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamFigureWarmup, w.ConsumerGroup(), msg.ID); err != nil {
			// Не критично: событие будет обработано повторно, прогрев идемпотентен
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

// handle прогревает фигуры события. Ошибка кеша повторяется до MaxRetries
// раз, после чего попадает в поле Error ответа.
func (w *FigureWarmupWorker) handle(ctx context.Context, event *domain.WarmupEvent) *domain.WarmupDoneEvent {
	logger := w.Logger().With(zap.String("request_id", event.RequestID.String()))
	start := time.Now()

	done := &domain.WarmupDoneEvent{RequestID: event.RequestID}

	days, err := w.resolveDates(event.Dates)
	if err != nil {
		done.Error = err.Error()
		return done
	}
	metrics, err := w.resolveMetrics(event.Metrics)
	if err != nil {
		done.Error = err.Error()
		return done
	}
	locations := event.Locations
	if len(locations) == 0 {
		locations = []string{w.opts.NationalLocation}
	}

	for _, day := range days {
		if err := w.retry(ctx, func() error { return w.maps.Warm(ctx, day) }); err != nil {
			done.Error = err.Error()
			return done
		}
		done.MapsCached++
	}

	for _, location := range locations {
		for _, metric := range metrics {
			if err := w.retry(ctx, func() error { return w.charts.Warm(ctx, metric, location) }); err != nil {
				done.Error = err.Error()
				return done
			}
			done.ChartsCached++
		}
	}

	logger.Info("Figures warmed up",
		zap.Int("maps", done.MapsCached),
		zap.Int("charts", done.ChartsCached),
		zap.Duration("took", time.Since(start)))

	return done
}

func (w *FigureWarmupWorker) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= w.opts.MaxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		w.Logger().Warn("Warmup attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", w.opts.MaxRetries),
			zap.Error(err))
		if attempt < w.opts.MaxRetries {
			w.pause(ctx, retryBackoff*time.Duration(attempt))
		}
	}
	return err
}

// resolveDates - пустой список означает все даты допустимого диапазона
func (w *FigureWarmupWorker) resolveDates(dates []string) ([]time.Time, error) {
	if len(dates) == 0 {
		return w.dataset.Dates(), nil
	}

	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day, err := time.Parse(domain.DateLayout, d)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", d)
		}
		days = append(days, day)
	}
	return days, nil
}

func (w *FigureWarmupWorker) resolveMetrics(metrics []string) ([]domain.Metric, error) {
	if len(metrics) == 0 {
		return w.opts.Metrics, nil
	}

	result := make([]domain.Metric, 0, len(metrics))
	for _, m := range metrics {
		metric, err := domain.ParseMetric(m)
		if err != nil {
			return nil, err
		}
		result = append(result, metric)
	}
	return result, nil
}

func parseMessage(msg domain.StreamMessage) (*domain.WarmupEvent, error) {
	var event domain.WarmupEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
