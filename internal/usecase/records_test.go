package usecase

import (
	"context"
	"testing"
	"time"

	"CycleSense/internal/domain/models"
	domrepo "CycleSense/internal/domain/repository"
)

type captureStore struct {
	lastLimit int
	lastFrom  time.Time
	lastTo    time.Time
}

func (s *captureStore) GetCycles(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.CycleRecord, error) {
	s.lastLimit = limit
	s.lastFrom = from
	s.lastTo = to
	return regularCycles(3, 28), nil
}

func (s *captureStore) GetSymptoms(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.SymptomObservation, error) {
	s.lastLimit = limit
	s.lastFrom = from
	s.lastTo = to
	return nil, nil
}

func TestGetCyclesDefaults(t *testing.T) {
	store := &captureStore{}
	uc := NewRecordsUseCase(store)

	res, err := uc.GetCycles(context.Background(), GetRecordsParams{UserID: "u1"})
	if err != nil {
		t.Fatalf("GetCycles: %v", err)
	}
	if store.lastLimit != 500 {
		t.Fatalf("default limit = %d, want 500", store.lastLimit)
	}
	if res.Window != "all" {
		t.Fatalf("window = %q, want all", res.Window)
	}
	if res.Count != 3 || len(res.Cycles) != 3 {
		t.Fatalf("count = %d, cycles = %d", res.Count, len(res.Cycles))
	}
}

func TestGetCyclesLimitClamped(t *testing.T) {
	store := &captureStore{}
	uc := NewRecordsUseCase(store)

	if _, err := uc.GetCycles(context.Background(), GetRecordsParams{UserID: "u1", Limit: 999999}); err != nil {
		t.Fatalf("GetCycles: %v", err)
	}
	if store.lastLimit != 5000 {
		t.Fatalf("limit = %d, want clamp to 5000", store.lastLimit)
	}
}

func TestGetSymptomsWindowBounds(t *testing.T) {
	store := &captureStore{}
	uc := NewRecordsUseCase(store)

	before := time.Now()
	if _, err := uc.GetSymptoms(context.Background(), GetRecordsParams{UserID: "u1", Window: domrepo.Window6M}); err != nil {
		t.Fatalf("GetSymptoms: %v", err)
	}
	if store.lastTo.Before(before) {
		t.Fatalf("to bound should be now-ish, got %v", store.lastTo)
	}
	wantFrom := before.AddDate(0, -6, 0)
	if store.lastFrom.After(wantFrom.Add(time.Minute)) || store.lastFrom.Before(wantFrom.Add(-time.Minute)) {
		t.Fatalf("from bound = %v, want about %v", store.lastFrom, wantFrom)
	}
}

func TestRecordsRequireUser(t *testing.T) {
	uc := NewRecordsUseCase(&captureStore{})

	if _, err := uc.GetCycles(context.Background(), GetRecordsParams{}); err == nil {
		t.Fatalf("expected error for missing userId")
	}
	if _, err := uc.GetSymptoms(context.Background(), GetRecordsParams{}); err == nil {
		t.Fatalf("expected error for missing userId")
	}
}
