package repository

import (
	"context"
	"time"

	"CycleSense/internal/domain/models"
)

// SyncStream is a device sync-gateway connection delivering entries
// logged on companion devices.
type SyncStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Entry, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, e *models.Entry) error
	PublishBatch(ctx context.Context, entries []*models.Entry) error
	Close() error
}

type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, e *models.Entry) error
	StoreBatch(ctx context.Context, entries []*models.Entry) error
	Health(ctx context.Context) error // ping
	Close() error
}

// RecordStore provides read-only access to a user's logged history for
// the analytics engine.
type RecordStore interface {
	GetCycles(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.CycleRecord, error)
	GetSymptoms(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.SymptomObservation, error)
}

type Metrics interface {
	RecordEntryStored(backend string, kind string)
	RecordError(kind string)
	RecordInsightComputed(section string)
	RecordLatency(op string, seconds float64)
}
