package analytics

import (
    "context"
    "math"
    "time"

    "CycleSense/internal/domain/models"
    domsvc "CycleSense/internal/domain/service"
    "CycleSense/internal/services/cycles"
    "CycleSense/pkg/util"
)

const defaultBleedLength = 5

// PredictionEngine produces the next-period forecast from cycle history.
// It is pure: identical inputs always yield identical output.
type PredictionEngine struct{}

func NewPredictionEngine() *PredictionEngine { return &PredictionEngine{} }

// Predict computes the next period date, ovulation date, fertility window,
// confidence scores, probability curve, and a walk-forward backtest.
// Sparse input never errors; it degrades to a low-confidence result.
func (e *PredictionEngine) Predict(_ context.Context, records []models.CycleRecord, now time.Time) (models.PredictionResult, error) {
    sorted := cycles.Sorted(records)
    if len(sorted) == 0 {
        return models.PredictionResult{
            PredictedLength:    defaultCycleLength,
            TypicalBleedLength: defaultBleedLength,
            InsufficientData:   true,
        }, nil
    }

    intervals := cycles.Intervals(sorted)
    est := EstimateCycleLength(intervals)
    bleed := typicalBleedLength(sorted)
    luteal := lutealPhaseLength(est.CenterLength)

    last := sorted[len(sorted)-1]
    next := util.AddDays(last.StartDate, est.CenterLength)
    ovulation := util.AddDays(next, -luteal)

    sinceStart := util.DaysBetween(last.StartDate, now)
    ongoing := last.EndDate == nil && sinceStart >= 0 && sinceStart <= bleed+2

    delta := int(math.Max(2, math.Round(est.Spread)))

    result := models.PredictionResult{
        NextPeriodDate:      &next,
        PredictedLength:     est.CenterLength,
        TypicalBleedLength:  bleed,
        Confidence:          confidenceScores(est, len(intervals)),
        OvulationDate:       &ovulation,
        FertilityWindow:     &models.DateRange{Start: util.AddDays(ovulation, -5), End: util.AddDays(ovulation, 1)},
        CycleLengthVariance: est.Spread,
        ProbabilityCurve:    probabilityCurve(next, est.Spread),
        PredictionRange:     &models.PredictionRange{Earliest: util.AddDays(next, -delta), Latest: util.AddDays(next, delta)},
        HistoricalAccuracy:  backtestAccuracy(sorted),
        OngoingCycle:        ongoing,
        InsufficientData:    est.Insufficient,
    }
    return result, nil
}

var _ domsvc.Predictor = (*PredictionEngine)(nil)

// lutealPhaseLength buckets the post-ovulation phase from the cycle length.
// The luteal phase is clinically far less variable than the follicular one,
// so it is bucketed rather than estimated from data.
func lutealPhaseLength(centerLength int) int {
    switch {
    case centerLength >= 32:
        return 15
    case centerLength <= 26:
        return 13
    default:
        return 14
    }
}

// typicalBleedLength is the median historical bleed length clamped to
// [2, 8] days, defaulting to 5 when no completed record has an end date.
func typicalBleedLength(sorted []models.CycleRecord) int {
    lengths := cycles.BleedLengths(sorted)
    if len(lengths) == 0 {
        return defaultBleedLength
    }
    vs := make([]float64, 0, len(lengths))
    for _, l := range lengths {
        vs = append(vs, float64(l))
    }
    return clampI(int(math.Round(median(vs))), 2, 8)
}

// confidenceScores implements the variability-penalty plus volume-bonus
// model. Zero usable intervals falls back to the {30, 20} floor.
func confidenceScores(est Estimate, intervalCount int) models.PredictionConfidence {
    if intervalCount == 0 {
        return models.PredictionConfidence{NextPeriod: 30, Ovulation: 20}
    }
    variability := clampF(50-est.RobustSigma*8, 0, 50)
    volume := clampF(float64(intervalCount)*10, 0, 40)
    next := clampI(int(math.Round(30+variability+volume)), 30, 95)
    ov := next - 8
    if ov > 90 {
        ov = 90
    }
    return models.PredictionConfidence{NextPeriod: next, Ovulation: ov}
}

// probabilityCurve samples a Gaussian over offsets -5..+5 days around the
// predicted date and normalizes the 11 weights to sum to 1.
func probabilityCurve(next time.Time, spread float64) []models.ProbabilityPoint {
    sigma := math.Max(1.5, spread)
    weights := make([]float64, 11)
    var total float64
    for i := range weights {
        off := float64(i - 5)
        weights[i] = math.Exp(-off * off / (2 * sigma * sigma))
        total += weights[i]
    }
    points := make([]models.ProbabilityPoint, 11)
    for i := range points {
        off := i - 5
        points[i] = models.ProbabilityPoint{
            Date:        util.AddDays(next, off),
            OffsetDays:  off,
            Probability: weights[i] / total,
        }
    }
    return points
}

// backtestAccuracy walks forward through history, re-predicting each start
// from the prefix before it. A prediction within two days of the actual
// start counts as a hit. Needs at least three cycles.
func backtestAccuracy(sorted []models.CycleRecord) *int {
    n := len(sorted)
    if n < 3 {
        return nil
    }
    correct, attempts := 0, 0
    for i := 2; i < n; i++ {
        prefix := sorted[:i]
        est := EstimateCycleLength(cycles.Intervals(prefix))
        predicted := util.AddDays(prefix[len(prefix)-1].StartDate, est.CenterLength)
        diff := util.DaysBetween(predicted, sorted[i].StartDate)
        attempts++
        if diff >= -2 && diff <= 2 {
            correct++
        }
    }
    if attempts == 0 {
        return nil
    }
    acc := int(math.Round(float64(correct) / float64(attempts) * 100))
    return &acc
}
