package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"CycleSense/internal/domain/models"
	domrepo "CycleSense/internal/domain/repository"
	analytics "CycleSense/internal/services/analytics"
	pkgcache "CycleSense/pkg/cache"
)

type fakeRecordStore struct {
	mu           sync.Mutex
	cycles       []models.CycleRecord
	symptoms     []models.SymptomObservation
	cycleCalls   int
	symptomCalls int
	err          error
}

func (s *fakeRecordStore) GetCycles(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.CycleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycleCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.cycles, nil
}

func (s *fakeRecordStore) GetSymptoms(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.SymptomObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symptomCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.symptoms, nil
}

func (s *fakeRecordStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycleCalls
}

func regularCycles(n, step int) []models.CycleRecord {
	out := make([]models.CycleRecord, 0, n)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s := start.AddDate(0, 0, i*step)
		e := s.AddDate(0, 0, 4)
		out = append(out, models.CycleRecord{
			ID:        fmt.Sprintf("c%d", i),
			UserID:    "u1",
			StartDate: s,
			EndDate:   &e,
			Flow:      models.FlowMedium,
			CreatedAt: s,
		})
	}
	return out
}

func newTestAggregator(store domrepo.RecordStore, c pkgcache.Service) *InsightAggregator {
	agg := NewInsightAggregator(
		store,
		analytics.NewPredictionEngine(),
		analytics.NewCycleAnomalyDetector(),
		analytics.NewSymptomCorrelator(),
		analytics.NewHormonalInferenceLayer(analytics.DefaultHormoneTable()),
		analytics.NewHealthScoreAggregator(),
		c,
		time.Minute,
		nil,
	)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return agg.WithNow(func() time.Time { return now })
}

func TestAggregatorPredictionCached(t *testing.T) {
	store := &fakeRecordStore{cycles: regularCycles(6, 28)}
	mem := pkgcache.NewMemoryCache()
	defer mem.Close()
	agg := newTestAggregator(store, mem)
	ctx := context.Background()

	first, err := agg.Prediction(ctx, "u1", domrepo.WindowAll)
	if err != nil {
		t.Fatalf("Prediction: %v", err)
	}
	if store.calls() != 1 {
		t.Fatalf("store calls = %d, want 1", store.calls())
	}

	second, err := agg.Prediction(ctx, "u1", domrepo.WindowAll)
	if err != nil {
		t.Fatalf("cached Prediction: %v", err)
	}
	if store.calls() != 1 {
		t.Fatalf("cache hit should not reload history, store calls = %d", store.calls())
	}
	if first.NextPeriodDate == nil || second.NextPeriodDate == nil {
		t.Fatalf("expected next period date with regular history")
	}
	if !second.NextPeriodDate.Equal(*first.NextPeriodDate) {
		t.Fatalf("cached result differs: %v vs %v", second.NextPeriodDate, first.NextPeriodDate)
	}
	if second.PredictedLength != first.PredictedLength {
		t.Fatalf("cached length differs: %d vs %d", second.PredictedLength, first.PredictedLength)
	}
}

func TestAggregatorWindowsCachedSeparately(t *testing.T) {
	store := &fakeRecordStore{cycles: regularCycles(6, 28)}
	mem := pkgcache.NewMemoryCache()
	defer mem.Close()
	agg := newTestAggregator(store, mem)
	ctx := context.Background()

	if _, err := agg.Prediction(ctx, "u1", domrepo.Window3M); err != nil {
		t.Fatalf("3m: %v", err)
	}
	if _, err := agg.Prediction(ctx, "u1", domrepo.Window12M); err != nil {
		t.Fatalf("12m: %v", err)
	}
	if store.calls() != 2 {
		t.Fatalf("distinct windows must compute separately, store calls = %d", store.calls())
	}
}

func TestAggregatorInvalidate(t *testing.T) {
	store := &fakeRecordStore{cycles: regularCycles(6, 28)}
	mem := pkgcache.NewMemoryCache()
	defer mem.Close()
	agg := newTestAggregator(store, mem)
	ctx := context.Background()

	if _, err := agg.Anomalies(ctx, "u1", domrepo.WindowAll); err != nil {
		t.Fatalf("Anomalies: %v", err)
	}
	if err := agg.Invalidate(ctx, "u1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := agg.Anomalies(ctx, "u1", domrepo.WindowAll); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if store.calls() != 2 {
		t.Fatalf("invalidation should force a reload, store calls = %d", store.calls())
	}
}

func TestAggregatorStoreError(t *testing.T) {
	store := &fakeRecordStore{err: fmt.Errorf("clickhouse down")}
	agg := newTestAggregator(store, nil)

	if _, err := agg.Health(context.Background(), "u1", domrepo.WindowAll); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestBundleCollectsAllSections(t *testing.T) {
	store := &fakeRecordStore{cycles: regularCycles(6, 28)}
	agg := newTestAggregator(store, nil)
	bundle := NewInsightsBundleUseCase(agg)

	res, err := bundle.GetInsights(context.Background(), GetInsightsParams{UserID: "u1", Window: domrepo.WindowAll})
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if res.Prediction == nil || res.Anomalies == nil || res.Hormonal == nil || res.Health == nil {
		t.Fatalf("bundle missing sections: %+v", res)
	}
	if res.Errors != nil {
		t.Fatalf("unexpected section errors: %v", res.Errors)
	}
	if res.Window != "all" {
		t.Fatalf("window = %q, want all", res.Window)
	}
}

func TestBundleRequiresUser(t *testing.T) {
	store := &fakeRecordStore{}
	bundle := NewInsightsBundleUseCase(newTestAggregator(store, nil))

	if _, err := bundle.GetInsights(context.Background(), GetInsightsParams{}); err == nil {
		t.Fatalf("expected error for missing userId")
	}
}
