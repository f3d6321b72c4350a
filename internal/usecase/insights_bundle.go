package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CycleSense/internal/domain/models"
	domrepo "CycleSense/internal/domain/repository"
)

// InsightsBundleUseCase fans out to every engine section in parallel and
// assembles the summary bundle, collecting partial failures instead of
// failing the whole request.
type InsightsBundleUseCase struct {
	agg     *InsightAggregator
	timeout time.Duration
}

func NewInsightsBundleUseCase(agg *InsightAggregator) *InsightsBundleUseCase {
	return &InsightsBundleUseCase{agg: agg, timeout: 10 * time.Second}
}

type GetInsightsParams struct {
	UserID string
	Window domrepo.Window
}

func (uc *InsightsBundleUseCase) GetInsights(ctx context.Context, p GetInsightsParams) (*models.InsightBundle, error) {
	if p.UserID == "" {
		return nil, fmt.Errorf("userId required")
	}
	if !domrepo.IsValidWindow(p.Window) {
		p.Window = domrepo.DefaultWindow()
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.InsightBundle{
		UserID:      p.UserID,
		Window:      string(p.Window),
		GeneratedAt: time.Now(),
		Errors:      map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 5)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Prediction(ctx, p.UserID, p.Window)
		ch <- item{"prediction", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Anomalies(ctx, p.UserID, p.Window)
		ch <- item{"anomalies", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Correlations(ctx, p.UserID, p.Window)
		ch <- item{"correlations", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Hormonal(ctx, p.UserID, p.Window)
		ch <- item{"hormonal", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.agg.Health(ctx, p.UserID, p.Window)
		ch <- item{"health", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "prediction":
			v := it.val.(models.PredictionResult)
			res.Prediction = &v
		case "anomalies":
			v := it.val.(models.AnomalyReport)
			res.Anomalies = &v
		case "correlations":
			res.Correlations = it.val.([]models.SymptomCorrelation)
		case "hormonal":
			v := it.val.(models.HormonalAssessment)
			res.Hormonal = &v
		case "health":
			v := it.val.(models.HealthScore)
			res.Health = &v
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
