package analytics

import "math"

// madScale converts a MAD into a standard-deviation approximation for
// normally distributed data.
const madScale = 1.4826

// defaultCycleLength is the population-typical cycle length used whenever
// no usable history exists.
const defaultCycleLength = 28

// Physiologic bounds for a predicted cycle length.
const (
    minCycleLength = 21
    maxCycleLength = 45
)

// Estimate is the robust center-of-mass cycle length and its spread.
type Estimate struct {
    CenterLength int
    Spread       float64
    RobustSigma  float64
    Insufficient bool
}

// EstimateCycleLength derives a recency-weighted, outlier-resistant cycle
// length from inter-period intervals. Intervals are expected to be
// pre-filtered to the plausible range. With zero intervals it returns the
// 28-day default and flags insufficient data.
func EstimateCycleLength(intervals []float64) Estimate {
    if len(intervals) == 0 {
        return Estimate{CenterLength: defaultCycleLength, Insufficient: true}
    }

    med := median(intervals)
    robustSigma := mad(intervals, med) * madScale
    if robustSigma == 0 && len(intervals) < 3 {
        // too few points to trust a zero MAD
        robustSigma = 2.5
    }

    q1, q3 := quartiles(intervals)
    iqr := q3 - q1
    lo := q1 - 1.5*iqr
    hi := q3 + 1.5*iqr

    cleaned := make([]float64, 0, len(intervals))
    for _, v := range intervals {
        if v < lo || v > hi {
            continue
        }
        cleaned = append(cleaned, v)
    }

    // EWMA with alpha 0.5, seeded with the first cleaned value.
    est := med
    if len(cleaned) > 0 {
        est = cleaned[0]
        for _, v := range cleaned[1:] {
            est = 0.5*v + 0.5*est
        }
    }

    center := clampI(int(math.Round(est)), minCycleLength, maxCycleLength)
    spread := round1(robustSigma + math.Max(0, iqr/2))

    return Estimate{CenterLength: center, Spread: spread, RobustSigma: robustSigma}
}
