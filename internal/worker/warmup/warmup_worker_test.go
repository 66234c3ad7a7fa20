package warmup

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int64) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

type MockMapWarmer struct {
	mock.Mock
}

func (m *MockMapWarmer) Warm(ctx context.Context, day time.Time) error {
	return m.Called(ctx, day).Error(0)
}

type MockChartWarmer struct {
	mock.Mock
}

func (m *MockChartWarmer) Warm(ctx context.Context, metric domain.Metric, location string) error {
	return m.Called(ctx, metric, location).Error(0)
}

// fakeDataset отдает только даты диапазона
type fakeDataset struct {
	dates []time.Time
}

func (f *fakeDataset) Row(string, time.Time) *domain.TimeSeriesRow { return nil }
func (f *fakeDataset) Series(string) []*domain.TimeSeriesRow       { return nil }
func (f *fakeDataset) OnDate(time.Time) []*domain.TimeSeriesRow    { return nil }
func (f *fakeDataset) WorldRow(time.Time) *domain.TimeSeriesRow    { return nil }
func (f *fakeDataset) Boundaries() domain.BoundaryCollection       { return nil }
func (f *fakeDataset) BoundariesGeoJSON() []byte                   { return nil }
func (f *fakeDataset) DateRange() domain.DateRange                 { return domain.DateRange{} }
func (f *fakeDataset) Dates() []time.Time                          { return f.dates }

func day(s string) time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}

func message(t *testing.T, id string, event *domain.WarmupEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func newTestWorker(stream *MockStreamRepository, maps *MockMapWarmer, charts *MockChartWarmer) *FigureWarmupWorker {
	return NewFigureWarmupWorker(
		stream,
		&fakeDataset{dates: []time.Time{day("2020-12-31"), day("2021-01-01")}},
		maps,
		charts,
		Options{
			ConsumerGroup:    "test-group",
			MaxRetries:       2,
			NationalLocation: "BRA",
			Metrics:          []domain.Metric{domain.MetricNewCases, domain.MetricTotalCases},
		},
		zap.NewNop(),
	)
}

func TestFigureWarmupWorker_Name(t *testing.T) {
	w := newTestWorker(&MockStreamRepository{}, &MockMapWarmer{}, &MockChartWarmer{})
	assert.Equal(t, "figure-warmup", w.Name())
	assert.Equal(t, "test-group", w.ConsumerGroup())
	assert.NotEmpty(t, w.ConsumerName())
}

func TestFigureWarmupWorker_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("empty event warms every date and configured metric for national series", func(t *testing.T) {
		maps := &MockMapWarmer{}
		maps.On("Warm", ctx, mock.Anything).Return(nil)
		charts := &MockChartWarmer{}
		charts.On("Warm", ctx, mock.Anything, "BRA").Return(nil)

		w := newTestWorker(&MockStreamRepository{}, maps, charts)
		done := w.handle(ctx, &domain.WarmupEvent{RequestID: uuid.New()})

		assert.Empty(t, done.Error)
		assert.Equal(t, 2, done.MapsCached)
		assert.Equal(t, 2, done.ChartsCached)
		maps.AssertNumberOfCalls(t, "Warm", 2)
	})

	t.Run("explicit dates, locations and metrics", func(t *testing.T) {
		maps := &MockMapWarmer{}
		maps.On("Warm", ctx, day("2021-01-01")).Return(nil)
		charts := &MockChartWarmer{}
		charts.On("Warm", ctx, domain.MetricTotalDeaths, "USA").Return(nil)
		charts.On("Warm", ctx, domain.MetricTotalDeaths, "ARG").Return(nil)

		w := newTestWorker(&MockStreamRepository{}, maps, charts)
		done := w.handle(ctx, &domain.WarmupEvent{
			RequestID: uuid.New(),
			Dates:     []string{"2021-01-01"},
			Locations: []string{"USA", "ARG"},
			Metrics:   []string{"total_deaths"},
		})

		assert.Empty(t, done.Error)
		assert.Equal(t, 1, done.MapsCached)
		assert.Equal(t, 2, done.ChartsCached)
		maps.AssertExpectations(t)
		charts.AssertExpectations(t)
	})

	t.Run("invalid date is reported", func(t *testing.T) {
		w := newTestWorker(&MockStreamRepository{}, &MockMapWarmer{}, &MockChartWarmer{})
		done := w.handle(ctx, &domain.WarmupEvent{Dates: []string{"yesterday"}})

		assert.Contains(t, done.Error, "invalid date")
		assert.Zero(t, done.MapsCached)
	})

	t.Run("invalid metric is reported", func(t *testing.T) {
		w := newTestWorker(&MockStreamRepository{}, &MockMapWarmer{}, &MockChartWarmer{})
		done := w.handle(ctx, &domain.WarmupEvent{Dates: []string{"2021-01-01"}, Metrics: []string{"population"}})

		assert.Contains(t, done.Error, "unknown metric")
	})

	t.Run("cache failure is retried then reported", func(t *testing.T) {
		maps := &MockMapWarmer{}
		maps.On("Warm", ctx, day("2021-01-01")).Return(stderrors.New("redis down"))

		w := newTestWorker(&MockStreamRepository{}, maps, &MockChartWarmer{})
		done := w.handle(ctx, &domain.WarmupEvent{Dates: []string{"2021-01-01"}})

		assert.Equal(t, "redis down", done.Error)
		maps.AssertNumberOfCalls(t, "Warm", 2)
	})

	t.Run("transient failure succeeds on retry", func(t *testing.T) {
		maps := &MockMapWarmer{}
		maps.On("Warm", ctx, day("2021-01-01")).Return(stderrors.New("timeout")).Once()
		maps.On("Warm", ctx, day("2021-01-01")).Return(nil).Once()
		charts := &MockChartWarmer{}
		charts.On("Warm", ctx, mock.Anything, mock.Anything).Return(nil)

		w := newTestWorker(&MockStreamRepository{}, maps, charts)
		done := w.handle(ctx, &domain.WarmupEvent{Dates: []string{"2021-01-01"}})

		assert.Empty(t, done.Error)
		assert.Equal(t, 1, done.MapsCached)
	})
}

func TestFigureWarmupWorker_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()

	stream := &MockStreamRepository{}
	stream.On("ConsumeBatch", ctx, domain.StreamFigureWarmup, "test-group", mock.Anything, int64(maxBatchSize)).
		Return([]domain.StreamMessage{
			{ID: "1-0", Data: "{broken"},
			message(t, "2-0", &domain.WarmupEvent{RequestID: requestID, Dates: []string{"2021-01-01"}, Metrics: []string{"new_cases"}}),
		}, nil)
	stream.On("AckMessage", ctx, domain.StreamFigureWarmup, "test-group", "1-0").Return(nil)
	stream.On("AckMessage", ctx, domain.StreamFigureWarmup, "test-group", "2-0").Return(nil)
	stream.On("PublishToStream", ctx, domain.StreamFigureWarmupDone, &domain.WarmupDoneEvent{
		RequestID:    requestID,
		MapsCached:   1,
		ChartsCached: 1,
	}).Return(nil)

	maps := &MockMapWarmer{}
	maps.On("Warm", ctx, day("2021-01-01")).Return(nil)
	charts := &MockChartWarmer{}
	charts.On("Warm", ctx, domain.MetricNewCases, "BRA").Return(nil)

	w := newTestWorker(stream, maps, charts)
	processed, err := w.processBatch(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	stream.AssertExpectations(t)
}

func TestFigureWarmupWorker_ProcessBatch_ConsumeError(t *testing.T) {
	ctx := context.Background()
	stream := &MockStreamRepository{}
	stream.On("ConsumeBatch", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, stderrors.New("connection reset"))

	w := newTestWorker(stream, &MockMapWarmer{}, &MockChartWarmer{})
	processed, err := w.processBatch(ctx)

	assert.Error(t, err)
	assert.Zero(t, processed)
}

func TestFigureWarmupWorker_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	consumed := make(chan struct{}, 1)
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamFigureWarmup, "test-group").Return(nil)
	stream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case consumed <- struct{}{}:
			default:
			}
		}).
		Return([]domain.StreamMessage{}, nil)

	w := newTestWorker(stream, &MockMapWarmer{}, &MockChartWarmer{})
	w.sleep = 10 * time.Millisecond

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(context.Background())
	}()

	select {
	case <-consumed:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not poll the stream")
	}

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop(), "second stop is a no-op")

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestFigureWarmupWorker_ContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	stream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{}, nil)

	w := newTestWorker(stream, &MockMapWarmer{}, &MockChartWarmer{})
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}

func TestFigureWarmupWorker_ConsumerGroupError(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("NOAUTH"))

	w := newTestWorker(stream, &MockMapWarmer{}, &MockChartWarmer{})
	err := w.Start(context.Background())

	assert.Error(t, err)
}
