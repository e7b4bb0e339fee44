package handlers

import (
	"testing"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

func TestParseStatusFilter(t *testing.T) {
	cases := []struct {
		name     string
		param    string
		expected []order.Status
		ok       bool
	}{
		{
			name:     "empty means the working set",
			param:    "",
			expected: []order.Status{order.StatusPending, order.StatusInProcess, order.StatusDispatched},
			ok:       true,
		},
		{
			name:     "all lifts the filter",
			param:    "all",
			expected: nil,
			ok:       true,
		},
		{
			name:     "single status",
			param:    "cancelled",
			expected: []order.Status{order.StatusCancel},
			ok:       true,
		},
		{
			name:     "comma list with mixed casing",
			param:    "pending,In Process",
			expected: []order.Status{order.StatusPending, order.StatusInProcess},
			ok:       true,
		},
		{
			name:  "unknown status rejected",
			param: "shipped",
			ok:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseStatusFilter(tc.param)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if !ok {
				return
			}
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %d statuses, got %d", len(tc.expected), len(got))
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Fatalf("expected %s at %d, got %s", tc.expected[i], i, got[i])
				}
			}
		})
	}
}

func TestStatusFilterKey(t *testing.T) {
	cases := []struct {
		name     string
		params   []string
		expected string
	}{
		{
			name:     "casing and spacing collapse to one key",
			params:   []string{"pending,in process", "Pending, In-Process", "PENDING,IN-PROCESS"},
			expected: "Pending,In-Process",
		},
		{
			name:     "default working set",
			params:   []string{""},
			expected: "Pending,In-Process,Dispatched",
		},
		{
			name:     "all in any casing",
			params:   []string{"all", "ALL"},
			expected: "all",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, param := range tc.params {
				statuses, ok := parseStatusFilter(param)
				if !ok {
					t.Fatalf("parseStatusFilter(%q) rejected", param)
				}
				if got := statusFilterKey(statuses); got != tc.expected {
					t.Fatalf("statusFilterKey for %q = %q, expected %q", param, got, tc.expected)
				}
			}
		})
	}
}

func TestFormBranchID(t *testing.T) {
	cases := []struct {
		param    string
		expected int64
	}{
		{"", 0},
		{"all", 0},
		{"3", 3},
		{"-1", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := formBranchID(tc.param); got != tc.expected {
			t.Fatalf("formBranchID(%q) = %d, expected %d", tc.param, got, tc.expected)
		}
	}
}
