package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/repository/dataset"
)

const testdataDir = "../repository/dataset/testdata/"

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetFigure(ctx context.Context, key string) (*domain.Figure, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Figure), args.Error(1)
}

func (m *MockCacheRepository) SetFigure(ctx context.Context, key string, figure *domain.Figure, ttl time.Duration) error {
	args := m.Called(ctx, key, figure, ttl)
	return args.Error(0)
}

// missCache - кеш, в котором ничего нет и запись всегда успешна
func missCache() *MockCacheRepository {
	m := &MockCacheRepository{}
	m.On("GetFigure", mock.Anything, mock.Anything).Return(nil, nil)
	m.On("SetFigure", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return m
}

func loadTestStore(t *testing.T) *dataset.Store {
	t.Helper()
	store, err := dataset.Load(
		context.Background(),
		dataset.NewCSVSource(testdataDir+"df.csv"),
		testdataDir+"df_world.csv",
		testdataDir+"countries_geo.json",
		"",
		dataset.Options{
			NationalLocation: "BRA",
			NationalName:     "Brazil",
			WorldName:        "World",
			DateRangePolicy:  dataset.PolicyFull,
		},
		zap.NewNop(),
	)
	require.NoError(t, err)
	return store
}

func day(s string) time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}
