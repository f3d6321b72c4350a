package usecase

import (
	"context"
	"fmt"
	"time"

	"CycleSense/internal/domain/models"
	domrepo "CycleSense/internal/domain/repository"
)

// RecordsUseCase provides business logic for retrieving logged history.
type RecordsUseCase struct {
	store domrepo.RecordStore
}

func NewRecordsUseCase(store domrepo.RecordStore) *RecordsUseCase {
	return &RecordsUseCase{store: store}
}

type GetRecordsParams struct {
	UserID string
	Window domrepo.Window
	Limit  int
}

type GetCyclesResult struct {
	UserID string               `json:"userId"`
	Window string               `json:"window"`
	Count  int                  `json:"count"`
	Cycles []models.CycleRecord `json:"cycles"`
}

type GetSymptomsResult struct {
	UserID   string                      `json:"userId"`
	Window   string                      `json:"window"`
	Count    int                         `json:"count"`
	Symptoms []models.SymptomObservation `json:"symptoms"`
}

func (uc *RecordsUseCase) normalize(p *GetRecordsParams) error {
	if p.UserID == "" {
		return fmt.Errorf("userId required")
	}
	if !domrepo.IsValidWindow(p.Window) {
		p.Window = domrepo.DefaultWindow()
	}
	if p.Limit <= 0 {
		p.Limit = 500
	}
	if p.Limit > 5000 {
		p.Limit = 5000
	}
	return nil
}

func (uc *RecordsUseCase) GetCycles(ctx context.Context, p GetRecordsParams) (*GetCyclesResult, error) {
	if err := uc.normalize(&p); err != nil {
		return nil, err
	}
	from, to := p.Window.Bounds(time.Now())
	records, err := uc.store.GetCycles(ctx, p.UserID, from, to, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("get cycles: %w", err)
	}
	return &GetCyclesResult{
		UserID: p.UserID,
		Window: string(p.Window),
		Count:  len(records),
		Cycles: records,
	}, nil
}

func (uc *RecordsUseCase) GetSymptoms(ctx context.Context, p GetRecordsParams) (*GetSymptomsResult, error) {
	if err := uc.normalize(&p); err != nil {
		return nil, err
	}
	from, to := p.Window.Bounds(time.Now())
	observations, err := uc.store.GetSymptoms(ctx, p.UserID, from, to, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("get symptoms: %w", err)
	}
	return &GetSymptomsResult{
		UserID:   p.UserID,
		Window:   string(p.Window),
		Count:    len(observations),
		Symptoms: observations,
	}, nil
}
