package worker

import (
	"context"
)

// Worker - фоновый процесс, управляемый WorkerManager
type Worker interface {
	// Start блокирует до остановки воркера или отмены ctx
	Start(ctx context.Context) error

	// Stop просит воркер завершиться
	Stop() error

	Name() string
}
