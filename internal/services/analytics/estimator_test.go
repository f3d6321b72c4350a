package analytics

import (
    "math"
    "testing"
)

func TestEstimateEmptyIntervals(t *testing.T) {
    est := EstimateCycleLength(nil)
    if !est.Insufficient {
        t.Fatalf("expected insufficient data flag")
    }
    if est.CenterLength != 28 || est.Spread != 0 {
        t.Fatalf("expected {28, 0}, got {%d, %v}", est.CenterLength, est.Spread)
    }
}

func TestEstimateSingleInterval(t *testing.T) {
    est := EstimateCycleLength([]float64{35})
    if est.Insufficient {
        t.Fatalf("one interval is usable")
    }
    if est.CenterLength != 35 {
        t.Fatalf("expected 35, got %d", est.CenterLength)
    }
    // MAD is zero for a single point, so sigma falls back to 2.5
    if est.RobustSigma != 2.5 {
        t.Fatalf("expected sigma floor 2.5, got %v", est.RobustSigma)
    }
}

func TestEstimateIdenticalIntervalsHaveZeroSpread(t *testing.T) {
    est := EstimateCycleLength([]float64{28, 28, 28, 28, 28})
    if est.CenterLength != 28 {
        t.Fatalf("expected 28, got %d", est.CenterLength)
    }
    if est.Spread != 0 || est.RobustSigma != 0 {
        t.Fatalf("expected zero spread for identical intervals, got %v/%v", est.Spread, est.RobustSigma)
    }
}

func TestEstimateRejectsIQROutlier(t *testing.T) {
    est := EstimateCycleLength([]float64{28, 28, 28, 28, 90})
    if est.CenterLength != 28 {
        t.Fatalf("outlier should not move the estimate, got %d", est.CenterLength)
    }
}

func TestEstimateClampsToPhysiologicRange(t *testing.T) {
    if est := EstimateCycleLength([]float64{100, 100, 100}); est.CenterLength != 45 {
        t.Fatalf("expected clamp to 45, got %d", est.CenterLength)
    }
    if est := EstimateCycleLength([]float64{12, 12, 12}); est.CenterLength != 21 {
        t.Fatalf("expected clamp to 21, got %d", est.CenterLength)
    }
}

func TestEstimateEWMAWeighsRecent(t *testing.T) {
    // seed 26, then 0.5*30 + 0.5*26 = 28
    est := EstimateCycleLength([]float64{26, 30})
    if est.CenterLength != 28 {
        t.Fatalf("expected 28, got %d", est.CenterLength)
    }
    if math.Abs(est.Spread-4.0) > 1e-9 {
        t.Fatalf("expected spread 4.0, got %v", est.Spread)
    }
}
