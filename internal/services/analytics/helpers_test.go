package analytics

import (
    "time"

    "CycleSense/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(start time.Time, bleedDays int) models.CycleRecord {
    r := models.CycleRecord{StartDate: start}
    if bleedDays > 0 {
        end := start.AddDate(0, 0, bleedDays-1)
        r.EndDate = &end
    }
    return r
}

// regularHistory returns n records spaced exactly `step` days apart,
// each with a 5-day bleed, starting 2025-01-01.
func regularHistory(n, step int) []models.CycleRecord {
    out := make([]models.CycleRecord, 0, n)
    start := date(2025, 1, 1)
    for i := 0; i < n; i++ {
        out = append(out, record(start, 5))
        start = start.AddDate(0, 0, step)
    }
    return out
}

// historyWithLengths returns len(lengths)+1 records where the i-th derived
// cycle length equals lengths[i].
func historyWithLengths(lengths ...int) []models.CycleRecord {
    out := []models.CycleRecord{record(date(2025, 1, 1), 5)}
    start := date(2025, 1, 1)
    for _, l := range lengths {
        start = start.AddDate(0, 0, l)
        out = append(out, record(start, 5))
    }
    return out
}

func observation(d time.Time, symptomType string, severity models.Severity) models.SymptomObservation {
    return models.SymptomObservation{Date: d, Type: symptomType, Severity: severity}
}
