package analytics

import (
    "context"
    "testing"

    "CycleSense/internal/domain/models"
)

func TestDetectInsufficientData(t *testing.T) {
    detector := NewCycleAnomalyDetector()
    report, err := detector.Detect(context.Background(), regularHistory(4, 28), date(2025, 6, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if report.RiskLevel != models.RiskInsufficient {
        t.Fatalf("expected insufficient-data, got %s", report.RiskLevel)
    }
    if len(report.Anomalies) != 0 {
        t.Fatalf("expected no anomalies, got %d", len(report.Anomalies))
    }
}

func TestDetectRegularHistoryIsLowRisk(t *testing.T) {
    detector := NewCycleAnomalyDetector()
    // six records give five derived lengths, enough to activate the detector
    report, err := detector.Detect(context.Background(), regularHistory(6, 28), date(2025, 6, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(report.Anomalies) != 0 {
        t.Fatalf("expected zero anomalies, got %+v", report.Anomalies)
    }
    if report.RiskLevel != models.RiskLow {
        t.Fatalf("expected low risk, got %s", report.RiskLevel)
    }
}

func TestDetectMissedPeriod(t *testing.T) {
    detector := NewCycleAnomalyDetector()
    report, err := detector.Detect(context.Background(), historyWithLengths(28, 28, 28, 45, 28, 28), date(2025, 8, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    var missed *models.AnomalyRecord
    for i := range report.Anomalies {
        if report.Anomalies[i].Kind == models.AnomalyMissedPeriod {
            missed = &report.Anomalies[i]
        }
    }
    if missed == nil {
        t.Fatalf("expected a missed-period anomaly, got %+v", report.Anomalies)
    }
    if missed.Severity != models.AnomalyHigh {
        t.Fatalf("expected high severity, got %s", missed.Severity)
    }
    if missed.Length != 45 {
        t.Fatalf("expected length 45, got %d", missed.Length)
    }
    if report.RiskLevel != models.RiskModerate && report.RiskLevel != models.RiskHigh {
        t.Fatalf("expected at least moderate risk, got %s", report.RiskLevel)
    }
}

func TestDetectShortCycleSeverity(t *testing.T) {
    detector := NewCycleAnomalyDetector()
    report, err := detector.Detect(context.Background(), historyWithLengths(28, 28, 28, 28, 17, 20), date(2025, 8, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    bySeverity := map[int]models.AnomalySeverity{}
    for _, a := range report.Anomalies {
        if a.Kind == models.AnomalyShortCycle {
            bySeverity[a.Length] = a.Severity
        }
    }
    if bySeverity[17] != models.AnomalyHigh {
        t.Fatalf("expected length 17 to be high severity, got %s", bySeverity[17])
    }
    if bySeverity[20] != models.AnomalyModerate {
        t.Fatalf("expected length 20 to be moderate severity, got %s", bySeverity[20])
    }
}

func TestDetectRecentAnomaliesRaiseRisk(t *testing.T) {
    detector := NewCycleAnomalyDetector()
    records := historyWithLengths(28, 28, 20, 20, 20)
    // all anomalies fall within the last six months of this now
    report, err := detector.Detect(context.Background(), records, date(2025, 7, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if report.RiskLevel != models.RiskHigh {
        t.Fatalf("expected high risk from 3 recent anomalies, got %s", report.RiskLevel)
    }
}

func TestDetectZScoreFlagsUnusualLength(t *testing.T) {
    detector := NewCycleAnomalyDetector()
    report, err := detector.Detect(context.Background(), historyWithLengths(28, 27, 29, 28, 28, 28, 28, 40), date(2025, 10, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    found := false
    for _, a := range report.Anomalies {
        if a.Kind == models.AnomalyUnusualLength && a.Length == 40 {
            found = true
            if a.ZScore <= 2 {
                t.Fatalf("expected z-score above 2, got %v", a.ZScore)
            }
        }
    }
    if !found {
        t.Fatalf("expected the 40-day cycle to be flagged, got %+v", report.Anomalies)
    }
}
