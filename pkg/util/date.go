package util

import (
    "strconv"
    "time"
)

// DateLayout is the civil date format used across the API and storage.
const DateLayout = "2006-01-02"

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// ParseDate tries a civil date (2006-01-02) first, then the ParseTime formats.
// The result is always truncated to a UTC calendar date.
func ParseDate(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(DateLayout, s); err == nil {
        return t, true
    }
    if t, ok := ParseTime(s); ok {
        return DateOnly(t), true
    }
    return time.Time{}, false
}

// ParseDateDefault parses a date or returns default if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
    if t, ok := ParseDate(s); ok {
        return t
    }
    return def
}

// DateOnly truncates t to its UTC calendar date at midnight.
func DateOnly(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n days.
func AddDays(t time.Time, n int) time.Time {
    return DateOnly(t).AddDate(0, 0, n)
}

// DaysBetween returns the whole number of calendar days from a to b (b - a).
func DaysBetween(a, b time.Time) int {
    return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// SameDate reports whether two instants fall on the same UTC calendar date.
func SameDate(a, b time.Time) bool {
    return DateOnly(a).Equal(DateOnly(b))
}
