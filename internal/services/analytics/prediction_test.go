package analytics

import (
    "context"
    "math"
    "reflect"
    "testing"
)

func TestPredictEmptyInput(t *testing.T) {
    engine := NewPredictionEngine()
    res, err := engine.Predict(context.Background(), nil, date(2025, 6, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if res.NextPeriodDate != nil || res.OvulationDate != nil || res.FertilityWindow != nil {
        t.Fatalf("expected nil dates for empty input")
    }
    if res.Confidence.NextPeriod != 0 || res.Confidence.Ovulation != 0 {
        t.Fatalf("expected zero confidence, got %+v", res.Confidence)
    }
    if res.HistoricalAccuracy != nil {
        t.Fatalf("expected nil accuracy")
    }
    if !res.InsufficientData {
        t.Fatalf("expected insufficient data flag")
    }
}

func TestPredictRegularSixCycles(t *testing.T) {
    engine := NewPredictionEngine()
    records := regularHistory(6, 28)
    now := date(2025, 6, 10)

    res, err := engine.Predict(context.Background(), records, now)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if res.PredictedLength != 28 {
        t.Fatalf("expected predicted length 28, got %d", res.PredictedLength)
    }
    if res.CycleLengthVariance != 0 {
        t.Fatalf("expected zero variance, got %v", res.CycleLengthVariance)
    }
    if res.Confidence.NextPeriod < 80 {
        t.Fatalf("expected high confidence, got %d", res.Confidence.NextPeriod)
    }
    if res.Confidence.Ovulation != res.Confidence.NextPeriod-8 && res.Confidence.Ovulation != 90 {
        t.Fatalf("unexpected ovulation confidence %d", res.Confidence.Ovulation)
    }

    // last start 2025-05-21 + 28 days
    wantNext := date(2025, 6, 18)
    if res.NextPeriodDate == nil || !res.NextPeriodDate.Equal(wantNext) {
        t.Fatalf("expected next period %v, got %v", wantNext, res.NextPeriodDate)
    }
    // 28-day cycle buckets to a 14-day luteal phase
    wantOv := date(2025, 6, 4)
    if res.OvulationDate == nil || !res.OvulationDate.Equal(wantOv) {
        t.Fatalf("expected ovulation %v, got %v", wantOv, res.OvulationDate)
    }
    if res.FertilityWindow == nil ||
        !res.FertilityWindow.Start.Equal(date(2025, 5, 30)) ||
        !res.FertilityWindow.End.Equal(date(2025, 6, 5)) {
        t.Fatalf("unexpected fertility window %+v", res.FertilityWindow)
    }
    if res.HistoricalAccuracy == nil || *res.HistoricalAccuracy != 100 {
        t.Fatalf("expected 100%% backtest accuracy, got %v", res.HistoricalAccuracy)
    }
    if res.OngoingCycle {
        t.Fatalf("completed last cycle should not be flagged ongoing")
    }
}

func TestPredictLutealBuckets(t *testing.T) {
    if got := lutealPhaseLength(34); got != 15 {
        t.Fatalf("expected 15, got %d", got)
    }
    if got := lutealPhaseLength(25); got != 13 {
        t.Fatalf("expected 13, got %d", got)
    }
    if got := lutealPhaseLength(28); got != 14 {
        t.Fatalf("expected 14, got %d", got)
    }
}

func TestPredictSingleCycleFallsBack(t *testing.T) {
    engine := NewPredictionEngine()
    records := regularHistory(1, 28)
    records[0].EndDate = nil
    now := date(2025, 1, 3)

    res, err := engine.Predict(context.Background(), records, now)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if res.PredictedLength != 28 {
        t.Fatalf("expected default length 28, got %d", res.PredictedLength)
    }
    if res.Confidence.NextPeriod != 30 || res.Confidence.Ovulation != 20 {
        t.Fatalf("expected default confidence {30,20}, got %+v", res.Confidence)
    }
    if res.HistoricalAccuracy != nil {
        t.Fatalf("expected nil accuracy with a single cycle")
    }
    if !res.OngoingCycle {
        t.Fatalf("recently started open cycle should be flagged ongoing")
    }
    if !res.InsufficientData {
        t.Fatalf("expected insufficient data flag")
    }
}

func TestPredictOngoingCycleExpires(t *testing.T) {
    engine := NewPredictionEngine()
    records := regularHistory(3, 28)
    records[2].EndDate = nil
    // last start 2025-02-26; 20 days later is well past bleed+2
    res, err := engine.Predict(context.Background(), records, date(2025, 3, 18))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if res.OngoingCycle {
        t.Fatalf("cycle started 20 days ago should not be ongoing")
    }
}

func TestProbabilityCurveProperties(t *testing.T) {
    engine := NewPredictionEngine()
    res, err := engine.Predict(context.Background(), historyWithLengths(26, 30, 28, 27), date(2025, 6, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if len(res.ProbabilityCurve) != 11 {
        t.Fatalf("expected 11 points, got %d", len(res.ProbabilityCurve))
    }
    var sum float64
    for i, p := range res.ProbabilityCurve {
        if p.OffsetDays != i-5 {
            t.Fatalf("expected offset %d at index %d, got %d", i-5, i, p.OffsetDays)
        }
        if p.Probability < 0 {
            t.Fatalf("negative probability at offset %d", p.OffsetDays)
        }
        sum += p.Probability
    }
    if math.Abs(sum-1) > 1e-6 {
        t.Fatalf("probabilities sum to %v, want 1", sum)
    }
}

func TestPredictBacktestGating(t *testing.T) {
    engine := NewPredictionEngine()
    res, err := engine.Predict(context.Background(), regularHistory(2, 28), date(2025, 3, 1))
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if res.HistoricalAccuracy != nil {
        t.Fatalf("expected nil accuracy with fewer than 3 cycles")
    }
}

func TestPredictDeterminism(t *testing.T) {
    engine := NewPredictionEngine()
    records := historyWithLengths(27, 31, 28, 26, 29)
    now := date(2025, 7, 1)

    first, err := engine.Predict(context.Background(), records, now)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    second, err := engine.Predict(context.Background(), records, now)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if !reflect.DeepEqual(first, second) {
        t.Fatalf("prediction is not deterministic")
    }
}

func TestPredictDoesNotMutateInput(t *testing.T) {
    engine := NewPredictionEngine()
    records := historyWithLengths(30, 22, 28)
    // out-of-order input must be tolerated
    records[0], records[2] = records[2], records[0]
    before := make([]string, len(records))
    for i, r := range records {
        before[i] = r.StartDate.String()
    }
    if _, err := engine.Predict(context.Background(), records, date(2025, 6, 1)); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    for i, r := range records {
        if before[i] != r.StartDate.String() {
            t.Fatalf("input was reordered at %d", i)
        }
    }
}
