package usecase

import (
	"context"
	"testing"
	"time"

	domrepo "CycleSense/internal/domain/repository"
	pkgcache "CycleSense/pkg/cache"
)

func TestRecomputeJobWarmsCache(t *testing.T) {
	store := &fakeRecordStore{cycles: regularCycles(6, 28)}
	mem := pkgcache.NewMemoryCache()
	defer mem.Close()
	agg := newTestAggregator(store, mem)
	job := NewInsightRecomputeJob(agg, NewInsightsBundleUseCase(agg), mem)

	if err := job.Handle(context.Background(), map[string]interface{}{"userId": "u1"}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	warmed := store.calls()
	if warmed == 0 {
		t.Fatalf("job should have computed insights")
	}

	// a read after the warm-up is served from cache
	if _, err := agg.Prediction(context.Background(), "u1", domrepo.DefaultWindow()); err != nil {
		t.Fatalf("Prediction: %v", err)
	}
	if store.calls() != warmed {
		t.Fatalf("warmed section recomputed: %d -> %d store calls", warmed, store.calls())
	}
}

func TestRecomputeJobSkipsWhenLocked(t *testing.T) {
	store := &fakeRecordStore{cycles: regularCycles(6, 28)}
	mem := pkgcache.NewMemoryCache()
	defer mem.Close()
	agg := newTestAggregator(store, mem)
	job := NewInsightRecomputeJob(agg, NewInsightsBundleUseCase(agg), mem)

	lockKey := pkgcache.GenerateKey(recomputeLockPrefix, "u1")
	if ok, err := mem.TryLock(context.Background(), lockKey, time.Minute); err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}

	if err := job.Handle(context.Background(), RecomputePayload{UserID: "u1"}); err != nil {
		t.Fatalf("Handle while locked: %v", err)
	}
	if store.calls() != 0 {
		t.Fatalf("locked job must not recompute, store calls = %d", store.calls())
	}
}

func TestRecomputeJobRejectsBadPayload(t *testing.T) {
	store := &fakeRecordStore{}
	agg := newTestAggregator(store, nil)
	job := NewInsightRecomputeJob(agg, NewInsightsBundleUseCase(agg), nil)

	if err := job.Handle(context.Background(), RecomputePayload{}); err == nil {
		t.Fatalf("expected error for empty userId")
	}
}

func TestRecomputeJobIdentity(t *testing.T) {
	job := &InsightRecomputeJob{}
	if job.Name() != "insight_recompute" {
		t.Fatalf("name = %q", job.Name())
	}
	if job.Type() != "insights.recompute" {
		t.Fatalf("type = %q", job.Type())
	}
}
