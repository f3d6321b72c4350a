package analytics

import (
    "context"
    "testing"

    "CycleSense/internal/domain/models"
)

func TestScoreStableHistory(t *testing.T) {
    aggregator := NewHealthScoreAggregator()
    got, err := aggregator.Score(context.Background(), regularHistory(6, 28), nil, models.AnomalyReport{RiskLevel: models.RiskLow})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    // 85 baseline + 10 for near-zero variability
    if got.Score != 95 {
        t.Fatalf("expected 95, got %d", got.Score)
    }
    if got.Category != "excellent" {
        t.Fatalf("expected excellent, got %s", got.Category)
    }
}

func TestScorePenalties(t *testing.T) {
    aggregator := NewHealthScoreAggregator()
    records := regularHistory(6, 28)
    obs := []models.SymptomObservation{
        observation(records[0].StartDate, models.SymptomCramps, models.SeveritySevere),
        observation(records[1].StartDate, models.SymptomMigraine, models.SeverityExtreme),
        observation(records[2].StartDate, models.SymptomFatigue, models.SeverityMild),
    }
    report := models.AnomalyReport{
        Anomalies: []models.AnomalyRecord{
            {Kind: models.AnomalyMissedPeriod, Severity: models.AnomalyHigh},
            {Kind: models.AnomalyUnusualLength, Severity: models.AnomalyModerate},
        },
        RiskLevel: models.RiskModerate,
    }

    got, err := aggregator.Score(context.Background(), records, obs, report)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    // 85 + 10 - 10 (one high anomaly) - 10 (two severe observations)
    if got.Score != 75 {
        t.Fatalf("expected 75, got %d", got.Score)
    }
    if got.Category != "good" {
        t.Fatalf("expected good, got %s", got.Category)
    }
}

func TestScoreHighVariabilityPenalty(t *testing.T) {
    aggregator := NewHealthScoreAggregator()
    got, err := aggregator.Score(context.Background(), historyWithLengths(21, 40, 22, 41, 23), nil, models.AnomalyReport{})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    // CV well above 25 costs 15 points
    if got.Score != 70 {
        t.Fatalf("expected 70, got %d", got.Score)
    }
    if got.Category != "fair" {
        t.Fatalf("expected fair, got %s", got.Category)
    }
}

func TestScoreClampsToRange(t *testing.T) {
    aggregator := NewHealthScoreAggregator()
    anomalies := make([]models.AnomalyRecord, 12)
    for i := range anomalies {
        anomalies[i] = models.AnomalyRecord{Severity: models.AnomalyHigh}
    }
    got, err := aggregator.Score(context.Background(), nil, nil, models.AnomalyReport{Anomalies: anomalies})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if got.Score != 0 {
        t.Fatalf("expected clamp to 0, got %d", got.Score)
    }
    if got.Category != "needs-attention" {
        t.Fatalf("expected needs-attention, got %s", got.Category)
    }
}

func TestScoreNoHistoryKeepsBaseline(t *testing.T) {
    aggregator := NewHealthScoreAggregator()
    got, err := aggregator.Score(context.Background(), nil, nil, models.AnomalyReport{RiskLevel: models.RiskInsufficient})
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if got.Score != 85 || got.Category != "good" {
        t.Fatalf("expected baseline 85/good, got %d/%s", got.Score, got.Category)
    }
}
