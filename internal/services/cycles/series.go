package cycles

import (
    "sort"
    "time"

    "CycleSense/internal/domain/models"
    "CycleSense/pkg/util"
)

// Plausible bounds for a raw inter-period interval; values outside are
// treated as data-entry errors and excluded from statistics.
const (
    MinPlausibleInterval = 10
    MaxPlausibleInterval = 120
)

// LastCycleWindowDays caps membership for the newest cycle, which has no
// following start to bound it.
const LastCycleWindowDays = 45

// Length is one derived cycle length with the cycle it belongs to.
type Length struct {
    CycleIndex int
    Days       int
    Start      time.Time
}

// Sorted returns a copy of records ordered by start date ascending.
// Records with a zero start date are dropped. Input is never mutated.
func Sorted(records []models.CycleRecord) []models.CycleRecord {
    out := make([]models.CycleRecord, 0, len(records))
    for _, r := range records {
        if r.StartDate.IsZero() {
            continue
        }
        out = append(out, r)
    }
    sort.Slice(out, func(i, j int) bool {
        return out[i].StartDate.Before(out[j].StartDate)
    })
    return out
}

// Lengths derives cycle lengths from consecutive starts of an ordered
// record list, keeping only values within the plausible range.
func Lengths(sorted []models.CycleRecord) []Length {
    if len(sorted) < 2 {
        return nil
    }
    out := make([]Length, 0, len(sorted)-1)
    for i := 1; i < len(sorted); i++ {
        d := util.DaysBetween(sorted[i-1].StartDate, sorted[i].StartDate)
        if d < MinPlausibleInterval || d > MaxPlausibleInterval {
            continue
        }
        out = append(out, Length{CycleIndex: i - 1, Days: d, Start: sorted[i-1].StartDate})
    }
    return out
}

// Intervals returns just the day values of Lengths as floats.
func Intervals(sorted []models.CycleRecord) []float64 {
    lengths := Lengths(sorted)
    if len(lengths) == 0 {
        return nil
    }
    out := make([]float64, 0, len(lengths))
    for _, l := range lengths {
        out = append(out, float64(l.Days))
    }
    return out
}

// BleedLengths returns the inclusive bleeding-phase lengths of records
// that have an end date.
func BleedLengths(sorted []models.CycleRecord) []int {
    var out []int
    for _, r := range sorted {
        if d := r.BleedDays(); d > 0 {
            out = append(out, d)
        }
    }
    return out
}

// Containing returns the index of the cycle whose [start, nextStart)
// interval contains the date. The newest cycle is bounded by
// LastCycleWindowDays instead of a following start.
func Containing(date time.Time, sorted []models.CycleRecord) (int, bool) {
    d := util.DateOnly(date)
    for i := range sorted {
        start := util.DateOnly(sorted[i].StartDate)
        if d.Before(start) {
            continue
        }
        var end time.Time
        if i+1 < len(sorted) {
            end = util.DateOnly(sorted[i+1].StartDate)
        } else {
            end = util.AddDays(start, LastCycleWindowDays)
        }
        if d.Before(end) {
            return i, true
        }
    }
    return 0, false
}

// Day returns the 1-based cycle day of date within cycle idx.
func Day(date time.Time, sorted []models.CycleRecord, idx int) int {
    return util.DaysBetween(sorted[idx].StartDate, date) + 1
}

// ActualLength returns the observed length of cycle idx (distance to the
// next start) or fallback when idx is the newest cycle.
func ActualLength(sorted []models.CycleRecord, idx int, fallback int) int {
    if idx+1 < len(sorted) {
        if d := util.DaysBetween(sorted[idx].StartDate, sorted[idx+1].StartDate); d > 0 {
            return d
        }
    }
    return fallback
}
