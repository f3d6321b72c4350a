package usecase

import (
	"context"
	"testing"
	"time"

	"CycleSense/internal/domain/models"
)

type fakePublisher struct {
	published []*models.Entry
}

func (p *fakePublisher) Publish(ctx context.Context, e *models.Entry) error {
	p.published = append(p.published, e)
	return nil
}

func (p *fakePublisher) PublishBatch(ctx context.Context, entries []*models.Entry) error {
	p.published = append(p.published, entries...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeStorage struct {
	stored []*models.Entry
}

func (s *fakeStorage) Init(ctx context.Context) error { return nil }

func (s *fakeStorage) Store(ctx context.Context, e *models.Entry) error {
	s.stored = append(s.stored, e)
	return nil
}

func (s *fakeStorage) StoreBatch(ctx context.Context, entries []*models.Entry) error {
	s.stored = append(s.stored, entries...)
	return nil
}

func (s *fakeStorage) Health(ctx context.Context) error { return nil }
func (s *fakeStorage) Close() error                     { return nil }

type noopMetrics struct{}

func (noopMetrics) RecordEntryStored(backend, kind string) {}
func (noopMetrics) RecordError(kind string)                {}
func (noopMetrics) RecordInsightComputed(section string)   {}
func (noopMetrics) RecordLatency(op string, s float64)     {}

func validEntry(userID string) *models.Entry {
	return &models.Entry{
		Kind:   models.EntryKindCycle,
		UserID: userID,
		Cycle: &models.CycleRecord{
			UserID:    userID,
			StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		ReceivedAt: time.Now(),
	}
}

func TestProcessRoutesToKafka(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStorage{}
	p := NewEntryProcessor(pub, store, noopMetrics{}, "kafka", 100, time.Second)

	if err := p.Process(context.Background(), validEntry("u1")); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pub.published) != 1 || len(store.stored) != 0 {
		t.Fatalf("kafka backend must publish only: pub=%d store=%d", len(pub.published), len(store.stored))
	}
}

func TestProcessRoutesToClickHouse(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStorage{}
	p := NewEntryProcessor(pub, store, noopMetrics{}, "clickhouse", 100, time.Second)

	if err := p.Process(context.Background(), validEntry("u1")); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(store.stored) != 1 || len(pub.published) != 0 {
		t.Fatalf("clickhouse backend must store only: pub=%d store=%d", len(pub.published), len(store.stored))
	}
}

func TestProcessRejectsUnknownBackend(t *testing.T) {
	p := NewEntryProcessor(&fakePublisher{}, &fakeStorage{}, noopMetrics{}, "carrier-pigeon", 100, time.Second)

	if err := p.Process(context.Background(), validEntry("u1")); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestProcessBatchDropsInvalid(t *testing.T) {
	store := &fakeStorage{}
	p := NewEntryProcessor(&fakePublisher{}, store, noopMetrics{}, "clickhouse", 100, time.Second)

	entries := []*models.Entry{
		validEntry("u1"),
		{Kind: models.EntryKindCycle, UserID: "u2"}, // no payload
		validEntry("u3"),
	}
	if err := p.ProcessBatch(context.Background(), entries); err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if len(store.stored) != 2 {
		t.Fatalf("stored %d entries, want 2", len(store.stored))
	}
}

func TestProcessBatchEmptyIsNoop(t *testing.T) {
	store := &fakeStorage{}
	p := NewEntryProcessor(&fakePublisher{}, store, noopMetrics{}, "clickhouse", 100, time.Second)

	if err := p.ProcessBatch(context.Background(), nil); err != nil {
		t.Fatalf("ProcessBatch(nil): %v", err)
	}
	if len(store.stored) != 0 {
		t.Fatalf("no entries expected, got %d", len(store.stored))
	}
}
