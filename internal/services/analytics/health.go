package analytics

import (
    "context"

    "CycleSense/internal/domain/models"
    domsvc "CycleSense/internal/domain/service"
    "CycleSense/internal/services/cycles"
)

const healthBaseline = 85

// HealthScoreAggregator folds cycle variability, anomaly severity, and
// symptom burden into a single 0-100 score.
type HealthScoreAggregator struct{}

func NewHealthScoreAggregator() *HealthScoreAggregator { return &HealthScoreAggregator{} }

// Score starts from the 85 baseline, rewards low cycle variability,
// penalizes high variability, high-severity anomalies, and severe or
// extreme symptom observations.
func (a *HealthScoreAggregator) Score(_ context.Context, records []models.CycleRecord, observations []models.SymptomObservation, report models.AnomalyReport) (models.HealthScore, error) {
    score := healthBaseline

    intervals := cycles.Intervals(cycles.Sorted(records))
    if len(intervals) >= 2 {
        mean, stddev := meanStdDev(intervals)
        if mean > 0 {
            cv := stddev / mean * 100
            if cv < 10 {
                score += 10
            } else if cv > 25 {
                score -= 15
            }
        }
    }

    for _, a := range report.Anomalies {
        if a.Severity == models.AnomalyHigh {
            score -= 10
        }
    }
    for _, obs := range observations {
        if obs.Severity == models.SeveritySevere || obs.Severity == models.SeverityExtreme {
            score -= 5
        }
    }

    score = clampI(score, 0, 100)
    return models.HealthScore{Score: score, Category: healthCategory(score)}, nil
}

var _ domsvc.HealthScorer = (*HealthScoreAggregator)(nil)

func healthCategory(score int) string {
    switch {
    case score >= 90:
        return "excellent"
    case score >= 75:
        return "good"
    case score >= 60:
        return "fair"
    default:
        return "needs-attention"
    }
}
