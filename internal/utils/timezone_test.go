package utils

import (
	"testing"
	"time"
)

func TestDateFilterRange(t *testing.T) {
	// 20:30 UTC is already the next day in Karachi (UTC+5).
	now := time.Date(2026, 3, 10, 20, 30, 0, 0, time.UTC)
	karachiMidnight := time.Date(2026, 3, 11, 0, 0, 0, 0, RestaurantLocation())

	from, to, ok := DateFilterRange("today", "", now)
	if !ok {
		t.Fatal("expected today to resolve")
	}
	if !from.Equal(karachiMidnight) {
		t.Fatalf("expected from %v, got %v", karachiMidnight, from)
	}
	if !to.Equal(karachiMidnight.AddDate(0, 0, 1)) {
		t.Fatalf("expected to %v, got %v", karachiMidnight.AddDate(0, 0, 1), to)
	}

	from, to, ok = DateFilterRange("yesterday", "", now)
	if !ok || !from.Equal(karachiMidnight.AddDate(0, 0, -1)) || !to.Equal(karachiMidnight) {
		t.Fatalf("unexpected yesterday range: %v .. %v (ok=%v)", from, to, ok)
	}

	from, to, ok = DateFilterRange("custom", "2026-01-05", now)
	if !ok {
		t.Fatal("expected custom to resolve")
	}
	expected := time.Date(2026, 1, 5, 0, 0, 0, 0, RestaurantLocation())
	if !from.Equal(expected) || !to.Equal(expected.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected custom range: %v .. %v", from, to)
	}

	if _, _, ok := DateFilterRange("custom", "05/01/2026", now); ok {
		t.Fatal("malformed custom date must not resolve")
	}
	if _, _, ok := DateFilterRange("", "", now); ok {
		t.Fatal("empty filter must not constrain the range")
	}
	if _, _, ok := DateFilterRange("all", "", now); ok {
		t.Fatal("all filter must not constrain the range")
	}
}
