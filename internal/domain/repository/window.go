package repository

import "time"

// Window represents the history range insights are computed over.
type Window string

const (
	Window3M  Window = "3m"
	Window6M  Window = "6m"
	Window12M Window = "12m"
	WindowAll Window = "all"
)

// IsValidWindow returns true if w is a supported window.
func IsValidWindow(w Window) bool {
	switch w {
	case Window3M, Window6M, Window12M, WindowAll:
		return true
	default:
		return false
	}
}

// DefaultWindow returns the default history window.
func DefaultWindow() Window { return WindowAll }

// NormalizeWindow converts a raw string to a valid window (or default).
func NormalizeWindow(s string) Window {
	if s == "" {
		return DefaultWindow()
	}
	w := Window(s)
	if IsValidWindow(w) {
		return w
	}
	return DefaultWindow()
}

// Bounds resolves the window to a concrete [from, to] range ending at now.
// The all window reaches back far enough to cover any realistic history.
func (w Window) Bounds(now time.Time) (time.Time, time.Time) {
	switch w {
	case Window3M:
		return now.AddDate(0, -3, 0), now
	case Window6M:
		return now.AddDate(0, -6, 0), now
	case Window12M:
		return now.AddDate(0, -12, 0), now
	default:
		return now.AddDate(-20, 0, 0), now
	}
}
