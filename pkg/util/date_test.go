package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestParseDateCivil(t *testing.T) {
    got, ok := ParseDate("2025-03-14")
    if !ok {
        t.Fatalf("expected ok")
    }
    want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("unexpected date %v", got)
    }
}

func TestParseDateTruncatesRFC3339(t *testing.T) {
    got, ok := ParseDate("2025-03-14T18:30:00Z")
    if !ok {
        t.Fatalf("expected ok")
    }
    want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("unexpected date %v", got)
    }
}

func TestDaysBetween(t *testing.T) {
    a := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)
    b := time.Date(2025, 1, 29, 1, 0, 0, 0, time.UTC)
    if d := DaysBetween(a, b); d != 28 {
        t.Fatalf("expected 28 days, got %d", d)
    }
    if d := DaysBetween(b, a); d != -28 {
        t.Fatalf("expected -28 days, got %d", d)
    }
}

func TestAddDays(t *testing.T) {
    a := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
    got := AddDays(a, 1)
    want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("unexpected date %v", got)
    }
}
