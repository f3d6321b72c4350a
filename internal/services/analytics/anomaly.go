package analytics

import (
    "context"
    "math"
    "time"

    "CycleSense/internal/domain/models"
    domsvc "CycleSense/internal/domain/service"
    "CycleSense/internal/services/cycles"
)

// Cycle-length thresholds for standalone flags.
const (
    missedPeriodThreshold   = 45
    shortCycleThreshold     = 21
    shortCycleHighThreshold = 18
)

// minLengthsForDetection gates the detector: fewer derived lengths than
// this yields an insufficient-data report.
const minLengthsForDetection = 5

const recentAnomalyWindow = 6 * 30 * 24 * time.Hour

// CycleAnomalyDetector flags irregular cycle lengths with classical
// mean/stddev z-scores. Classical statistics are intentional here: the
// detector must stay sensitive to the very outliers the robust estimator
// is built to ignore.
type CycleAnomalyDetector struct{}

func NewCycleAnomalyDetector() *CycleAnomalyDetector { return &CycleAnomalyDetector{} }

// Detect derives cycle lengths from consecutive starts and flags
// unusual-length, missed-period, and short-cycle anomalies, which can
// co-occur for the same cycle.
func (d *CycleAnomalyDetector) Detect(_ context.Context, records []models.CycleRecord, now time.Time) (models.AnomalyReport, error) {
    sorted := cycles.Sorted(records)
    lengths := cycles.Lengths(sorted)
    if len(lengths) < minLengthsForDetection {
        return models.AnomalyReport{Anomalies: []models.AnomalyRecord{}, RiskLevel: models.RiskInsufficient}, nil
    }

    values := make([]float64, 0, len(lengths))
    for _, l := range lengths {
        values = append(values, float64(l.Days))
    }
    mean, stddev := meanStdDev(values)

    anomalies := []models.AnomalyRecord{}
    for _, l := range lengths {
        if stddev > 0 {
            z := math.Abs(float64(l.Days)-mean) / stddev
            if z > 2 {
                severity := models.AnomalyModerate
                if z > 3 {
                    severity = models.AnomalyHigh
                }
                anomalies = append(anomalies, models.AnomalyRecord{
                    CycleIndex:     l.CycleIndex,
                    Date:           l.Start,
                    Length:         l.Days,
                    Kind:           models.AnomalyUnusualLength,
                    Severity:       severity,
                    ZScore:         round1(z),
                    Recommendation: recommendationFor(models.AnomalyUnusualLength),
                })
            }
        }
        if l.Days >= missedPeriodThreshold {
            anomalies = append(anomalies, models.AnomalyRecord{
                CycleIndex:     l.CycleIndex,
                Date:           l.Start,
                Length:         l.Days,
                Kind:           models.AnomalyMissedPeriod,
                Severity:       models.AnomalyHigh,
                Recommendation: recommendationFor(models.AnomalyMissedPeriod),
            })
        }
        if l.Days < shortCycleThreshold {
            severity := models.AnomalyModerate
            if l.Days < shortCycleHighThreshold {
                severity = models.AnomalyHigh
            }
            anomalies = append(anomalies, models.AnomalyRecord{
                CycleIndex:     l.CycleIndex,
                Date:           l.Start,
                Length:         l.Days,
                Kind:           models.AnomalyShortCycle,
                Severity:       severity,
                Recommendation: recommendationFor(models.AnomalyShortCycle),
            })
        }
    }

    return models.AnomalyReport{Anomalies: anomalies, RiskLevel: riskLevelFor(anomalies, now)}, nil
}

var _ domsvc.AnomalyDetector = (*CycleAnomalyDetector)(nil)

func riskLevelFor(anomalies []models.AnomalyRecord, now time.Time) models.RiskLevel {
    high := 0
    recent := 0
    cutoff := now.Add(-recentAnomalyWindow)
    for _, a := range anomalies {
        if a.Severity == models.AnomalyHigh {
            high++
        }
        if a.Date.After(cutoff) {
            recent++
        }
    }
    switch {
    case high >= 2 || recent >= 3:
        return models.RiskHigh
    case high >= 1 || recent >= 2:
        return models.RiskModerate
    default:
        return models.RiskLow
    }
}

func recommendationFor(kind models.AnomalyKind) string {
    switch kind {
    case models.AnomalyMissedPeriod:
        return "A cycle longer than 45 days may indicate a missed period. Consider consulting a healthcare provider."
    case models.AnomalyShortCycle:
        return "A cycle shorter than 21 days can be linked to stress, diet, or sleep changes. A lifestyle review may help."
    default:
        return "This cycle's length stands out from your history. Keep tracking to see whether the pattern continues."
    }
}
