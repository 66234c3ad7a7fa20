package cache

import (
	"context"
	"time"

	"github.com/covid-dashboard/internal/domain"
	"github.com/covid-dashboard/internal/domain/repository"
)

// noopRepository используется при CACHE_ENABLED=false: всегда промах, запись игнорируется
type noopRepository struct{}

func NewNoopRepository() repository.CacheRepository {
	return noopRepository{}
}

func (noopRepository) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (noopRepository) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noopRepository) Delete(context.Context, string) error { return nil }

func (noopRepository) Exists(context.Context, string) (bool, error) { return false, nil }

func (noopRepository) GetFigure(context.Context, string) (*domain.Figure, error) { return nil, nil }

func (noopRepository) SetFigure(context.Context, string, *domain.Figure, time.Duration) error {
	return nil
}
