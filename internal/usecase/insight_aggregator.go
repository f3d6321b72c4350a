package usecase

import (
	"context"
	"fmt"
	"time"

	"CycleSense/internal/domain/models"
	domrepo "CycleSense/internal/domain/repository"
	domsvc "CycleSense/internal/domain/service"
	"CycleSense/pkg/cache"
)

const (
	insightKeyPrefix = "cyclesense:insights"
	maxHistoryRows   = 5000
)

// InsightAggregator loads a user's history and runs the analytics engine
// over it, caching each section per user and window.
type InsightAggregator struct {
	store       domrepo.RecordStore
	predictor   domsvc.Predictor
	detector    domsvc.AnomalyDetector
	correlator  domsvc.CorrelationAnalyzer
	hormonal    domsvc.HormonalInference
	scorer      domsvc.HealthScorer
	cache       cache.Service
	cacheTTL    time.Duration
	metrics     domrepo.Metrics
	nowFn       func() time.Time
}

func NewInsightAggregator(
	store domrepo.RecordStore,
	predictor domsvc.Predictor,
	detector domsvc.AnomalyDetector,
	correlator domsvc.CorrelationAnalyzer,
	hormonal domsvc.HormonalInference,
	scorer domsvc.HealthScorer,
	cacheSvc cache.Service,
	cacheTTL time.Duration,
	metrics domrepo.Metrics,
) *InsightAggregator {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &InsightAggregator{
		store:      store,
		predictor:  predictor,
		detector:   detector,
		correlator: correlator,
		hormonal:   hormonal,
		scorer:     scorer,
		cache:      cacheSvc,
		cacheTTL:   cacheTTL,
		metrics:    metrics,
		nowFn:      time.Now,
	}
}

// WithNow overrides the clock; used by tests and backfills.
func (a *InsightAggregator) WithNow(nowFn func() time.Time) *InsightAggregator {
	a.nowFn = nowFn
	return a
}

func (a *InsightAggregator) cycles(ctx context.Context, userID string, w domrepo.Window) ([]models.CycleRecord, error) {
	from, to := w.Bounds(a.nowFn())
	records, err := a.store.GetCycles(ctx, userID, from, to, maxHistoryRows)
	if err != nil {
		return nil, fmt.Errorf("get cycles: %w", err)
	}
	return records, nil
}

func (a *InsightAggregator) symptoms(ctx context.Context, userID string, w domrepo.Window) ([]models.SymptomObservation, error) {
	from, to := w.Bounds(a.nowFn())
	observations, err := a.store.GetSymptoms(ctx, userID, from, to, maxHistoryRows)
	if err != nil {
		return nil, fmt.Errorf("get symptoms: %w", err)
	}
	return observations, nil
}

func (a *InsightAggregator) Prediction(ctx context.Context, userID string, w domrepo.Window) (models.PredictionResult, error) {
	key := cache.GenerateKeyWithParams(insightKeyPrefix, userID, w, "prediction")
	return cachedSection(ctx, a, "prediction", key, func() (models.PredictionResult, error) {
		records, err := a.cycles(ctx, userID, w)
		if err != nil {
			return models.PredictionResult{}, err
		}
		return a.predictor.Predict(ctx, records, a.nowFn())
	})
}

func (a *InsightAggregator) Anomalies(ctx context.Context, userID string, w domrepo.Window) (models.AnomalyReport, error) {
	key := cache.GenerateKeyWithParams(insightKeyPrefix, userID, w, "anomalies")
	return cachedSection(ctx, a, "anomalies", key, func() (models.AnomalyReport, error) {
		records, err := a.cycles(ctx, userID, w)
		if err != nil {
			return models.AnomalyReport{}, err
		}
		return a.detector.Detect(ctx, records, a.nowFn())
	})
}

func (a *InsightAggregator) Correlations(ctx context.Context, userID string, w domrepo.Window) ([]models.SymptomCorrelation, error) {
	key := cache.GenerateKeyWithParams(insightKeyPrefix, userID, w, "correlations")
	return cachedSection(ctx, a, "correlations", key, func() ([]models.SymptomCorrelation, error) {
		records, err := a.cycles(ctx, userID, w)
		if err != nil {
			return nil, err
		}
		observations, err := a.symptoms(ctx, userID, w)
		if err != nil {
			return nil, err
		}
		return a.correlator.Correlate(ctx, records, observations)
	})
}

func (a *InsightAggregator) Hormonal(ctx context.Context, userID string, w domrepo.Window) (models.HormonalAssessment, error) {
	key := cache.GenerateKeyWithParams(insightKeyPrefix, userID, w, "hormonal")
	return cachedSection(ctx, a, "hormonal", key, func() (models.HormonalAssessment, error) {
		records, err := a.cycles(ctx, userID, w)
		if err != nil {
			return models.HormonalAssessment{}, err
		}
		observations, err := a.symptoms(ctx, userID, w)
		if err != nil {
			return models.HormonalAssessment{}, err
		}
		return a.hormonal.Infer(ctx, records, observations)
	})
}

func (a *InsightAggregator) Health(ctx context.Context, userID string, w domrepo.Window) (models.HealthScore, error) {
	key := cache.GenerateKeyWithParams(insightKeyPrefix, userID, w, "health")
	return cachedSection(ctx, a, "health", key, func() (models.HealthScore, error) {
		records, err := a.cycles(ctx, userID, w)
		if err != nil {
			return models.HealthScore{}, err
		}
		observations, err := a.symptoms(ctx, userID, w)
		if err != nil {
			return models.HealthScore{}, err
		}
		report, err := a.detector.Detect(ctx, records, a.nowFn())
		if err != nil {
			return models.HealthScore{}, err
		}
		return a.scorer.Score(ctx, records, observations, report)
	})
}

// Invalidate drops every cached insight for the user, across windows.
func (a *InsightAggregator) Invalidate(ctx context.Context, userID string) error {
	if a.cache == nil {
		return nil
	}
	pattern := cache.BuildPattern(cache.GenerateKey(insightKeyPrefix, userID))
	return a.cache.DeleteByPattern(ctx, pattern)
}

// cachedSection wraps one engine section with cache lookup, computation,
// store-back, and metrics.
func cachedSection[T any](ctx context.Context, a *InsightAggregator, section, key string, compute func() (T, error)) (T, error) {
	var out T
	if a.cache != nil {
		if err := a.cache.Get(ctx, key, &out); err == nil {
			return out, nil
		}
	}

	start := time.Now()
	out, err := compute()
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordError(section)
		}
		return out, err
	}
	if a.metrics != nil {
		a.metrics.RecordInsightComputed(section)
		a.metrics.RecordLatency(section, time.Since(start).Seconds())
	}

	if a.cache != nil {
		_ = a.cache.Set(ctx, key, out, a.cacheTTL)
	}
	return out, nil
}
