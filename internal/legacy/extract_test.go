package legacy

import (
	"testing"
	"time"
)

func TestValueUnwrapsNumbers(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected any
	}{
		{
			name:     "numberInt string payload",
			input:    map[string]any{"$numberInt": "250"},
			expected: float64(250),
		},
		{
			name:     "numberLong string payload",
			input:    map[string]any{"$numberLong": "1714650000000"},
			expected: float64(1714650000000),
		},
		{
			name:     "numberDouble payload",
			input:    map[string]any{"$numberDouble": "149.5"},
			expected: 149.5,
		},
		{
			name:     "oid payload",
			input:    map[string]any{"$oid": "64f1c2ab9d3e"},
			expected: "64f1c2ab9d3e",
		},
		{
			name:     "native float passes through",
			input:    float64(42),
			expected: float64(42),
		},
		{
			name:     "native string passes through",
			input:    "Gulshan",
			expected: "Gulshan",
		},
		{
			name:     "nil passes through",
			input:    nil,
			expected: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Value(tc.input); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestValueUnwrapsDates(t *testing.T) {
	wrapped := map[string]any{
		"$date": map[string]any{"$numberLong": "1714650000000"},
	}
	got, ok := Value(wrapped).(time.Time)
	if !ok {
		t.Fatalf("expected time.Time, got %T", Value(wrapped))
	}
	if got.UnixMilli() != 1714650000000 {
		t.Fatalf("expected epoch millis 1714650000000, got %d", got.UnixMilli())
	}

	iso := map[string]any{"$date": "2024-05-02T10:20:00Z"}
	parsed, ok := Value(iso).(time.Time)
	if !ok {
		t.Fatalf("expected time.Time for ISO date")
	}
	if parsed.Hour() != 10 || parsed.Minute() != 20 {
		t.Fatalf("unexpected parsed time %v", parsed)
	}
}

func TestValueLeavesUnknownShapesAlone(t *testing.T) {
	unknown := map[string]any{"name": "Cheese", "price": float64(50)}
	got, ok := Value(unknown).(map[string]any)
	if !ok {
		t.Fatalf("expected map passthrough, got %T", Value(unknown))
	}
	if got["name"] != "Cheese" {
		t.Fatalf("map contents changed on passthrough")
	}
}

func TestNumberCoercion(t *testing.T) {
	if got := Number(map[string]any{"$numberInt": "300"}); got != 300 {
		t.Fatalf("expected 300, got %v", got)
	}
	if got := Number("149"); got != 149 {
		t.Fatalf("expected 149, got %v", got)
	}
	if got := Number("not-a-number"); got != 0 {
		t.Fatalf("expected 0 for garbage, got %v", got)
	}
	if got := Number(nil); got != 0 {
		t.Fatalf("expected 0 for nil, got %v", got)
	}
}

func TestStringCoercion(t *testing.T) {
	if got := String(map[string]any{"$oid": "abc123"}); got != "abc123" {
		t.Fatalf("expected abc123, got %q", got)
	}
	if got := String(float64(12)); got != "12" {
		t.Fatalf("expected 12, got %q", got)
	}
	if got := String([]any{"x"}); got != "" {
		t.Fatalf("expected empty string for slice, got %q", got)
	}
}
