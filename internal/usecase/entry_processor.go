package usecase

import (
	"context"
	"fmt"
	"time"

	"CycleSense/internal/domain/models"
	drepo "CycleSense/internal/domain/repository"
)

// EntryProcessor routes ingest entries to the configured backend.
type EntryProcessor struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	backend string
	batchSz int
	batchTO time.Duration
}

// NewEntryProcessor creates a new EntryProcessor instance.
func NewEntryProcessor(
	pub drepo.Publisher,
	store drepo.Storage,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *EntryProcessor {
	return &EntryProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
	}
}

// Process routes a single entry to the configured backend.
func (p *EntryProcessor) Process(ctx context.Context, e *models.Entry) error {
	if !e.Valid() {
		return fmt.Errorf("invalid entry")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, e)
	case "clickhouse":
		err = p.store.Store(ctx, e)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process entry: %w", err)
	}

	p.metrics.RecordEntryStored(p.backend, string(e.Kind))
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch routes multiple entries in a batch.
func (p *EntryProcessor) ProcessBatch(ctx context.Context, entries []*models.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	valid := entries[:0:0]
	for _, e := range entries {
		if e.Valid() {
			valid = append(valid, e)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, valid)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, valid)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, e := range valid {
		p.metrics.RecordEntryStored(p.backend, string(e.Kind))
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *EntryProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
