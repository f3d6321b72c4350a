package repository

import (
	"testing"
	"time"
)

func TestNormalizeWindow(t *testing.T) {
	cases := []struct {
		in   string
		want Window
	}{
		{"", WindowAll},
		{"3m", Window3M},
		{"6m", Window6M},
		{"12m", Window12M},
		{"all", WindowAll},
		{"7w", WindowAll},
	}
	for _, c := range cases {
		if got := NormalizeWindow(c.in); got != c.want {
			t.Fatalf("NormalizeWindow(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIsValidWindow(t *testing.T) {
	if !IsValidWindow(Window3M) {
		t.Fatalf("3m should be valid")
	}
	if IsValidWindow(Window("1y")) {
		t.Fatalf("1y should not be valid")
	}
}

func TestWindowBounds(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	from, to := Window3M.Bounds(now)
	if !to.Equal(now) {
		t.Fatalf("to = %v, want %v", to, now)
	}
	if want := now.AddDate(0, -3, 0); !from.Equal(want) {
		t.Fatalf("3m from = %v, want %v", from, want)
	}

	from, _ = Window12M.Bounds(now)
	if want := now.AddDate(0, -12, 0); !from.Equal(want) {
		t.Fatalf("12m from = %v, want %v", from, want)
	}

	from, _ = WindowAll.Bounds(now)
	if !from.Before(now.AddDate(-19, 0, 0)) {
		t.Fatalf("all window should reach back decades, got from = %v", from)
	}
}
