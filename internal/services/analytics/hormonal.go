package analytics

import (
    "context"
    "math"

    "CycleSense/internal/domain/models"
    domsvc "CycleSense/internal/domain/service"
    "CycleSense/internal/services/cycles"
)

// HormonalInferenceLayer maps per-phase symptom patterns to the hormones
// most likely driving them, using an injected lookup table.
type HormonalInferenceLayer struct {
    table HormoneTable
}

func NewHormonalInferenceLayer(table HormoneTable) *HormonalInferenceLayer {
    return &HormonalInferenceLayer{table: table}
}

// one phase occurrence: the symptoms of a single (cycle, phase) pair
type phaseOccurrence struct {
    weights map[HormoneDriver]float64
    count   int
}

type phaseAccumulator struct {
    occurrences map[int]*phaseOccurrence
    weightSum   float64
    matched     int
    total       int
}

// Infer groups observations into (cycle, phase) occurrences, averages
// hormonal activity per phase, and scores how well observed symptoms match
// clinical expectation.
func (l *HormonalInferenceLayer) Infer(_ context.Context, records []models.CycleRecord, observations []models.SymptomObservation) (models.HormonalAssessment, error) {
    assessment := models.HormonalAssessment{
        Patterns:          []models.HormonalPhasePattern{},
        PatternConfidence: "low",
        TableVersion:      l.table.Version(),
    }

    sorted := cycles.Sorted(records)
    totalCycles := len(sorted)
    if totalCycles == 0 || len(observations) == 0 {
        return assessment, nil
    }

    meanLength := int(math.Round(meanCycleLength(sorted)))

    phases := make(map[string]*phaseAccumulator)
    for _, obs := range observations {
        trait, known := l.table.Lookup(obs.Type)
        if !known {
            continue
        }
        idx, ok := cycles.Containing(obs.Date, sorted)
        if !ok {
            continue
        }
        day := cycles.Day(obs.Date, sorted, idx)
        length := cycles.ActualLength(sorted, idx, meanLength)
        phase := sixPhaseForDay(day, length)

        acc := phases[phase]
        if acc == nil {
            acc = &phaseAccumulator{occurrences: make(map[int]*phaseOccurrence)}
            phases[phase] = acc
        }
        occ := acc.occurrences[idx]
        if occ == nil {
            occ = &phaseOccurrence{weights: make(map[HormoneDriver]float64)}
            acc.occurrences[idx] = occ
        }

        w := obs.Severity.Weight()
        occ.weights[trait.Driver] += w
        occ.count++
        acc.weightSum += w
        acc.total++
        if containsPhase(trait.ExpectedPhases, phase) {
            acc.matched++
        }
    }

    totalOccurrences := 0
    var correlationSum float64
    patternCount := 0

    for _, phase := range PhaseOrder {
        acc := phases[phase]
        if acc == nil {
            continue
        }

        levels := averageActivity(acc)
        occurrences := len(acc.occurrences)
        correlation := round1(float64(acc.matched) / float64(acc.total) * 100)
        consistency := round1(clampF(float64(occurrences)/float64(totalCycles)*100, 0, 100))
        dominant, tier := dominantHormone(levels)

        assessment.Patterns = append(assessment.Patterns, models.HormonalPhasePattern{
            Phase:              phase,
            Occurrences:        occurrences,
            AverageIntensity:   round1(acc.weightSum / float64(acc.total)),
            AverageCorrelation: correlation,
            Consistency:        consistency,
            Profile:            profileFor(levels),
            DominantHormone:    dominant,
            HormoneConfidence:  tier,
        })

        totalOccurrences += occurrences
        correlationSum += correlation
        patternCount++
    }

    if patternCount > 0 {
        meanCorrelation := correlationSum / float64(patternCount)
        switch {
        case totalCycles >= 6 && meanCorrelation >= 70 && totalOccurrences >= 12:
            assessment.PatternConfidence = "high"
        case totalCycles >= 3 && meanCorrelation >= 50 && totalOccurrences >= 6:
            assessment.PatternConfidence = "medium"
        }
    }
    return assessment, nil
}

var _ domsvc.HormonalInference = (*HormonalInferenceLayer)(nil)

// sixPhaseForDay maps a cycle day to the finer 6-phase split, with the
// day thresholds scaled to the cycle's actual length.
func sixPhaseForDay(day, actualLength int) string {
    scale := float64(actualLength) / defaultCycleLength
    d := float64(day)
    switch {
    case d <= 5*scale:
        return PhaseMenstrual
    case d <= 12*scale:
        return PhaseFollicular
    case d <= 16*scale:
        return PhaseOvulatory
    case d <= 20*scale:
        return PhaseEarlyLuteal
    case d <= 24*scale:
        return PhaseMidLuteal
    default:
        return PhaseLateLuteal
    }
}

func containsPhase(phases []string, phase string) bool {
    for _, p := range phases {
        if p == phase {
            return true
        }
    }
    return false
}

// averageActivity averages per-occurrence hormone activity (weight sum
// divided by the occurrence's symptom count) across all occurrences.
func averageActivity(acc *phaseAccumulator) map[HormoneDriver]float64 {
    levels := make(map[HormoneDriver]float64, 4)
    for _, occ := range acc.occurrences {
        for driver, sum := range occ.weights {
            levels[driver] += sum / float64(occ.count)
        }
    }
    n := float64(len(acc.occurrences))
    for driver := range levels {
        levels[driver] = levels[driver] / n
    }
    return levels
}

// profileFor projects driver activity onto the four reported hormone axes.
// The multi driver splits between the two sex hormones; low-hormone
// activity shows up as the pituitary hormones that rise when estrogen and
// progesterone fall.
func profileFor(levels map[HormoneDriver]float64) models.HormonalProfile {
    return models.HormonalProfile{
        Estrogen:     round1(levels[DriverEstrogen] + 0.5*levels[DriverMulti]),
        Progesterone: round1(levels[DriverProgesterone] + 0.5*levels[DriverMulti]),
        FSH:          round1(0.75 * levels[DriverLowHormones]),
        LH:           round1(0.25 * levels[DriverLowHormones]),
    }
}

// dominantHormone picks the driver with the highest averaged level and
// grades the confidence tier. Ties break in fixed driver order so output
// stays deterministic.
func dominantHormone(levels map[HormoneDriver]float64) (string, string) {
    order := []HormoneDriver{DriverEstrogen, DriverProgesterone, DriverLowHormones, DriverMulti}
    best := order[0]
    for _, driver := range order[1:] {
        if levels[driver] > levels[best] {
            best = driver
        }
    }
    level := levels[best]
    switch {
    case level < 1:
        return string(best), "none"
    case level >= 2:
        return string(best), "high"
    case level >= 1.5:
        return string(best), "medium"
    default:
        return string(best), "low"
    }
}
