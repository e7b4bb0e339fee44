package order

import (
	"errors"
	"testing"
)

func TestTransitionForwardProgression(t *testing.T) {
	forward := []Status{StatusPending, StatusInProcess, StatusDispatched, StatusComplete}
	for i := 0; i < len(forward)-1; i++ {
		if err := Transition(forward[i], forward[i+1], ""); err != nil {
			t.Fatalf("%s -> %s should be allowed: %v", forward[i], forward[i+1], err)
		}
	}

	// Skipping ahead is allowed; only regression is forbidden.
	if err := Transition(StatusPending, StatusDispatched, ""); err != nil {
		t.Fatalf("Pending -> Dispatched should be allowed: %v", err)
	}
}

func TestTransitionRejectsRevert(t *testing.T) {
	cases := []struct {
		current Status
		next    Status
	}{
		{StatusInProcess, StatusPending},
		{StatusDispatched, StatusPending},
		{StatusDispatched, StatusInProcess},
	}

	for _, tc := range cases {
		err := Transition(tc.current, tc.next, "")
		if !errors.Is(err, ErrCannotRevert) {
			t.Fatalf("%s -> %s: expected ErrCannotRevert, got %v", tc.current, tc.next, err)
		}
	}
}

func TestTransitionCancel(t *testing.T) {
	for _, current := range []Status{StatusPending, StatusInProcess, StatusDispatched} {
		if err := Transition(current, StatusCancel, "customer unreachable"); err != nil {
			t.Fatalf("%s -> Cancel with reason should be allowed: %v", current, err)
		}
		err := Transition(current, StatusCancel, "  ")
		if !errors.Is(err, ErrCancelReasonRequired) {
			t.Fatalf("%s -> Cancel without reason: expected ErrCancelReasonRequired, got %v", current, err)
		}
	}
}

func TestTransitionTerminalStates(t *testing.T) {
	if err := Transition(StatusComplete, StatusCancel, "late cancel"); err == nil {
		t.Fatal("Complete -> Cancel should be rejected")
	}
	if err := Transition(StatusCancel, StatusPending, ""); err == nil {
		t.Fatal("Cancel -> Pending should be rejected")
	}
	if err := Transition(StatusComplete, StatusComplete, ""); err != nil {
		t.Fatalf("staying at a terminal state should be a no-op: %v", err)
	}
	if err := Transition(StatusCancel, StatusCancel, ""); err != nil {
		t.Fatalf("staying at Cancel should be a no-op: %v", err)
	}
}

func TestTransitionSameState(t *testing.T) {
	if err := Transition(StatusInProcess, StatusInProcess, ""); err != nil {
		t.Fatalf("same-state transition should be a no-op: %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input    string
		expected Status
		ok       bool
	}{
		{"Pending", StatusPending, true},
		{"in-process", StatusInProcess, true},
		{"In Process", StatusInProcess, true},
		{"DISPATCHED", StatusDispatched, true},
		{"completed", StatusComplete, true},
		{"cancelled", StatusCancel, true},
		{"shipped", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseStatus(tc.input)
		if ok != tc.ok || got != tc.expected {
			t.Fatalf("ParseStatus(%q) = %q, %v; expected %q, %v", tc.input, got, ok, tc.expected, tc.ok)
		}
	}
}
