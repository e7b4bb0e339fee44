package order

import "testing"

func TestParseItemName(t *testing.T) {
	cases := []struct {
		name         string
		input        string
		expectedQty  int
		expectedName string
	}{
		{
			name:         "suffix quantity",
			input:        "Burger x2",
			expectedQty:  2,
			expectedName: "Burger",
		},
		{
			name:         "prefix quantity",
			input:        "3x Zinger Burger",
			expectedQty:  3,
			expectedName: "Zinger Burger",
		},
		{
			name:         "uppercase suffix",
			input:        "Loaded Fries X4",
			expectedQty:  4,
			expectedName: "Loaded Fries",
		},
		{
			name:         "suffix wins over prefix",
			input:        "2x Burger x3",
			expectedQty:  3,
			expectedName: "2x Burger",
		},
		{
			name:         "no pattern",
			input:        "Chicken Tikka Pizza",
			expectedQty:  1,
			expectedName: "Chicken Tikka Pizza",
		},
		{
			name:         "name containing x without quantity",
			input:        "Mexican Wrap",
			expectedQty:  1,
			expectedName: "Mexican Wrap",
		},
		{
			name:         "surrounding whitespace trimmed",
			input:        "  Club Sandwich x2  ",
			expectedQty:  2,
			expectedName: "Club Sandwich",
		},
		{
			name:         "empty input",
			input:        "",
			expectedQty:  1,
			expectedName: "Unknown Item",
		},
		{
			name:         "whitespace only",
			input:        "   ",
			expectedQty:  1,
			expectedName: "Unknown Item",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qty, clean := ParseItemName(tc.input)
			if qty != tc.expectedQty {
				t.Fatalf("expected quantity %d, got %d", tc.expectedQty, qty)
			}
			if clean != tc.expectedName {
				t.Fatalf("expected name %q, got %q", tc.expectedName, clean)
			}
		})
	}
}
