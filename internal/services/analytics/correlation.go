package analytics

import (
    "context"
    "sort"

    "CycleSense/internal/domain/models"
    domsvc "CycleSense/internal/domain/service"
    "CycleSense/internal/services/cycles"
)

// SymptomCorrelator aggregates symptom observations into per-type cycle
// statistics: frequency, typical cycle day, and phase association.
type SymptomCorrelator struct{}

func NewSymptomCorrelator() *SymptomCorrelator { return &SymptomCorrelator{} }

type symptomAccumulator struct {
    days       []float64
    cyclesSeen map[int]struct{}
}

// Correlate maps each observation to its containing cycle, aggregates per
// symptom type, and derives the associated phase. Observations outside any
// cycle window are skipped.
func (a *SymptomCorrelator) Correlate(_ context.Context, records []models.CycleRecord, observations []models.SymptomObservation) ([]models.SymptomCorrelation, error) {
    sorted := cycles.Sorted(records)
    cycleCount := len(sorted)
    if cycleCount == 0 || len(observations) == 0 {
        return []models.SymptomCorrelation{}, nil
    }

    meanLength := meanCycleLength(sorted)

    acc := make(map[string]*symptomAccumulator)
    for _, obs := range observations {
        if obs.Type == "" || obs.Date.IsZero() {
            continue
        }
        idx, ok := cycles.Containing(obs.Date, sorted)
        if !ok {
            continue
        }
        day := cycles.Day(obs.Date, sorted, idx)
        entry := acc[obs.Type]
        if entry == nil {
            entry = &symptomAccumulator{cyclesSeen: make(map[int]struct{})}
            acc[obs.Type] = entry
        }
        entry.days = append(entry.days, float64(day))
        entry.cyclesSeen[idx] = struct{}{}
    }

    out := make([]models.SymptomCorrelation, 0, len(acc))
    for symptomType, entry := range acc {
        avgDay, dayStddev := meanStdDev(entry.days)
        frequency := len(entry.cyclesSeen)
        out = append(out, models.SymptomCorrelation{
            SymptomType:      symptomType,
            Frequency:        frequency,
            AverageCycleDay:  round1(avgDay),
            Phase:            phaseForDay(avgDay, meanLength),
            PatternStability: stabilityFor(dayStddev),
            Predictable:      float64(frequency) >= 0.5*float64(cycleCount),
        })
    }

    sort.Slice(out, func(i, j int) bool {
        if out[i].Frequency != out[j].Frequency {
            return out[i].Frequency > out[j].Frequency
        }
        return out[i].SymptomType < out[j].SymptomType
    })
    return out, nil
}

var _ domsvc.CorrelationAnalyzer = (*SymptomCorrelator)(nil)

func meanCycleLength(sorted []models.CycleRecord) float64 {
    intervals := cycles.Intervals(sorted)
    if len(intervals) == 0 {
        return defaultCycleLength
    }
    mean, _ := meanStdDev(intervals)
    return mean
}

// phaseForDay maps a cycle day to the basic 4-phase split, with the
// day thresholds scaled to the user's mean cycle length.
func phaseForDay(day, meanLength float64) string {
    scale := meanLength / defaultCycleLength
    switch {
    case day <= 7*scale:
        return "menstrual"
    case day <= 13*scale:
        return "follicular"
    case day <= 16*scale:
        return "ovulatory"
    default:
        return "luteal"
    }
}

// stabilityFor grades the dispersion of the cycle days a symptom lands on.
func stabilityFor(dayStddev float64) string {
    switch {
    case dayStddev < 2:
        return "stable"
    case dayStddev < 4:
        return "variable"
    default:
        return "erratic"
    }
}
