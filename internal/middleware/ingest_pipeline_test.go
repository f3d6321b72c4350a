package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"CycleSense/internal/domain/models"
)

type stubProc struct {
	mu    sync.Mutex
	fail  bool
	seen  []*models.Entry
}

func (p *stubProc) Process(ctx context.Context, e *models.Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("downstream down")
	}
	p.seen = append(p.seen, e)
	return nil
}

func (p *stubProc) setFail(v bool) {
	p.mu.Lock()
	p.fail = v
	p.mu.Unlock()
}

func (p *stubProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.seen)
}

type stubMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func newStubMetrics() *stubMetrics { return &stubMetrics{errors: map[string]int{}} }

func (m *stubMetrics) RecordEntryStored(backend, kind string) {}
func (m *stubMetrics) RecordInsightComputed(section string)   {}
func (m *stubMetrics) RecordLatency(op string, s float64)     {}
func (m *stubMetrics) RecordError(kind string) {
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

func (m *stubMetrics) errCount(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[kind]
}

func cycleEntry(userID string, day int) *models.Entry {
	return &models.Entry{
		Kind:   models.EntryKindCycle,
		UserID: userID,
		Cycle: &models.CycleRecord{
			UserID:    userID,
			StartDate: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		},
		ReceivedAt: time.Now(),
	}
}

func TestPipelineForwardsValidEntry(t *testing.T) {
	proc := &stubProc{}
	p := NewIngestPipeline(proc, newStubMetrics())

	if err := p.Process(context.Background(), cycleEntry("u1", 1)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if proc.count() != 1 {
		t.Fatalf("proc saw %d entries, want 1", proc.count())
	}
}

func TestPipelineRejectsInvalidEntry(t *testing.T) {
	proc := &stubProc{}
	m := newStubMetrics()
	p := NewIngestPipeline(proc, m)

	bad := &models.Entry{Kind: models.EntryKindCycle, UserID: "u1"}
	if err := p.Process(context.Background(), bad); err == nil {
		t.Fatalf("expected error for entry without payload")
	}
	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil entry")
	}
	if proc.count() != 0 {
		t.Fatalf("invalid entries must not reach downstream")
	}
	if m.errCount("pipeline_validate") != 2 {
		t.Fatalf("validate errors = %d, want 2", m.errCount("pipeline_validate"))
	}
}

func TestPipelineThrottlesPerUser(t *testing.T) {
	proc := &stubProc{}
	m := newStubMetrics()
	p := NewIngestPipeline(proc, m, WithMaxRPS(1))

	if err := p.Process(context.Background(), cycleEntry("u1", 1)); err != nil {
		t.Fatalf("first entry: %v", err)
	}
	// second within the same second is dropped without error
	if err := p.Process(context.Background(), cycleEntry("u1", 2)); err != nil {
		t.Fatalf("throttled entry should not error: %v", err)
	}
	// another user is unaffected
	if err := p.Process(context.Background(), cycleEntry("u2", 1)); err != nil {
		t.Fatalf("other user: %v", err)
	}
	if proc.count() != 2 {
		t.Fatalf("proc saw %d entries, want 2", proc.count())
	}
	if m.errCount("pipeline_throttle") != 1 {
		t.Fatalf("throttle count = %d, want 1", m.errCount("pipeline_throttle"))
	}
}

func TestPipelineTransformHook(t *testing.T) {
	proc := &stubProc{}
	p := NewIngestPipeline(proc, newStubMetrics(), WithTransform(func(e *models.Entry) *models.Entry {
		e.Cycle.Notes = "normalized"
		return e
	}))

	if err := p.Process(context.Background(), cycleEntry("u1", 1)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if proc.seen[0].Cycle.Notes != "normalized" {
		t.Fatalf("transform did not run")
	}
}

func TestPipelineBuffersOnDownstreamError(t *testing.T) {
	proc := &stubProc{}
	proc.setFail(true)
	m := newStubMetrics()
	p := NewIngestPipeline(proc, m, WithBufferSize(10))

	if err := p.Process(context.Background(), cycleEntry("u1", 1)); err == nil {
		t.Fatalf("expected downstream error")
	}
	if m.errCount("pipeline_process") != 1 {
		t.Fatalf("process errors = %d, want 1", m.errCount("pipeline_process"))
	}

	// downstream recovers; background flush drains the buffer
	proc.setFail(false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for proc.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if proc.count() != 1 {
		t.Fatalf("buffered entry was not flushed")
	}
}
