package service

import (
	"context"
	"time"

	"CycleSense/internal/domain/models"
)

// Predictor derives the next-period forecast from cycle history.
// "now" is injected so the ongoing-cycle check stays deterministic.
type Predictor interface {
	Predict(ctx context.Context, records []models.CycleRecord, now time.Time) (models.PredictionResult, error)
}

// AnomalyDetector flags irregular, missed, or abnormally short cycles.
type AnomalyDetector interface {
	Detect(ctx context.Context, records []models.CycleRecord, now time.Time) (models.AnomalyReport, error)
}

// CorrelationAnalyzer relates symptom observations to cycle days and phases.
type CorrelationAnalyzer interface {
	Correlate(ctx context.Context, records []models.CycleRecord, observations []models.SymptomObservation) ([]models.SymptomCorrelation, error)
}

// HormonalInference maps per-phase symptom patterns to dominant hormones.
type HormonalInference interface {
	Infer(ctx context.Context, records []models.CycleRecord, observations []models.SymptomObservation) (models.HormonalAssessment, error)
}

// HealthScorer folds the other outputs into a single 0-100 score.
type HealthScorer interface {
	Score(ctx context.Context, records []models.CycleRecord, observations []models.SymptomObservation, report models.AnomalyReport) (models.HealthScore, error)
}
