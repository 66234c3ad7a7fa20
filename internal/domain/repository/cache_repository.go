package repository

import (
	"context"
	"time"

	"github.com/covid-dashboard/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetFigure получает фигуру из кеша, nil при промахе
	GetFigure(ctx context.Context, key string) (*domain.Figure, error)

	// SetFigure сохраняет фигуру в кеше
	SetFigure(ctx context.Context, key string, figure *domain.Figure, ttl time.Duration) error
}
