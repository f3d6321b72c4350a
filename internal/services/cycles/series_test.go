package cycles

import (
    "testing"
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

func TestSortedReordersAndDropsZeroDates(t *testing.T) {
    recs := []models.CycleRecord{
        record(date(2025, 3, 1), 0),
        {},
        record(date(2025, 1, 1), 0),
        record(date(2025, 2, 1), 0),
    }
    got := Sorted(recs)
    if len(got) != 3 {
        t.Fatalf("expected 3 records, got %d", len(got))
    }
    if !got[0].StartDate.Equal(date(2025, 1, 1)) || !got[2].StartDate.Equal(date(2025, 3, 1)) {
        t.Fatalf("unexpected order: %v", got)
    }
}

func TestLengthsFiltersImplausible(t *testing.T) {
    recs := []models.CycleRecord{
        record(date(2025, 1, 1), 0),
        record(date(2025, 1, 29), 0),  // 28
        record(date(2025, 2, 3), 0),   // 5, dropped
        record(date(2025, 3, 3), 0),   // 28
        record(date(2025, 10, 1), 0),  // 212, dropped
    }
    lengths := Lengths(Sorted(recs))
    if len(lengths) != 2 {
        t.Fatalf("expected 2 lengths, got %d: %v", len(lengths), lengths)
    }
    for _, l := range lengths {
        if l.Days != 28 {
            t.Fatalf("expected 28, got %d", l.Days)
        }
    }
}

func TestContaining(t *testing.T) {
    recs := Sorted([]models.CycleRecord{
        record(date(2025, 1, 1), 5),
        record(date(2025, 1, 29), 5),
    })

    idx, ok := Containing(date(2025, 1, 15), recs)
    if !ok || idx != 0 {
        t.Fatalf("expected cycle 0, got %d ok=%v", idx, ok)
    }
    // next start belongs to the following cycle
    idx, ok = Containing(date(2025, 1, 29), recs)
    if !ok || idx != 1 {
        t.Fatalf("expected cycle 1, got %d ok=%v", idx, ok)
    }
    // newest cycle window is capped
    if _, ok = Containing(date(2025, 4, 1), recs); ok {
        t.Fatalf("expected no containing cycle far past the last start")
    }
    if _, ok = Containing(date(2024, 12, 31), recs); ok {
        t.Fatalf("expected no containing cycle before the first start")
    }
}

func TestDay(t *testing.T) {
    recs := Sorted([]models.CycleRecord{record(date(2025, 1, 1), 5)})
    if d := Day(date(2025, 1, 1), recs, 0); d != 1 {
        t.Fatalf("expected day 1, got %d", d)
    }
    if d := Day(date(2025, 1, 2), recs, 0); d != 2 {
        t.Fatalf("expected day 2, got %d", d)
    }
}

func TestBleedLengths(t *testing.T) {
    recs := Sorted([]models.CycleRecord{
        record(date(2025, 1, 1), 5),
        record(date(2025, 1, 29), 0),
        record(date(2025, 2, 26), 6),
    })
    got := BleedLengths(recs)
    if len(got) != 2 || got[0] != 5 || got[1] != 6 {
        t.Fatalf("unexpected bleed lengths %v", got)
    }
}
