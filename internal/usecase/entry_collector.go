package usecase

import (
	"CycleSense/internal/domain/models"
	drepo "CycleSense/internal/domain/repository"
	mid "CycleSense/internal/middleware"
	"context"
	"time"
)

// Backfiller is an optional SyncStream capability: fetch entries logged
// while the backend was disconnected from the gateway.
type Backfiller interface {
	Backfill(ctx context.Context, since time.Time) ([]*models.Entry, error)
}

const backfillLookback = 45 * 24 * time.Hour

// EntryCollector consumes entries from the sync stream and processes them.
type EntryCollector struct {
	stream  drepo.SyncStream
	proc    *EntryProcessor
	metrics drepo.Metrics
	pipe    *mid.IngestPipeline
}

// NewEntryCollector creates a new EntryCollector instance.
func NewEntryCollector(stream drepo.SyncStream, proc *EntryProcessor, metrics drepo.Metrics, pipe *mid.IngestPipeline) *EntryCollector {
	return &EntryCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the sync stream is connected.
func (c *EntryCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *EntryCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	if bf, ok := c.stream.(Backfiller); ok {
		c.backfill(ctx, bf)
	}
	enCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, enCh, errCh)
	return nil
}

func (c *EntryCollector) backfill(ctx context.Context, bf Backfiller) {
	entries, err := bf.Backfill(ctx, time.Now().Add(-backfillLookback))
	if err != nil {
		c.metrics.RecordError("backfill")
		return
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		if c.pipe != nil {
			_ = c.pipe.Process(ctx, e)
		} else {
			_ = c.proc.Process(ctx, e)
		}
	}
}

func (c *EntryCollector) consume(ctx context.Context, enCh <-chan *models.Entry, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case e := <-enCh:
			if e == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, e)
			} else {
				_ = c.proc.Process(ctx, e)
			}
		}
	}
}

func (c *EntryCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying EntryProcessor for lifecycle management.
func (c *EntryCollector) Processor() *EntryProcessor { return c.proc }

// Shutdown stops pipeline and closes stream.
func (c *EntryCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
