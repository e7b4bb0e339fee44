package handlers

import (
	"bytes"
	"testing"
	"time"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"TB-1024", "TB-1024"},
		{"TB 10/24", "TB_10_24"},
		{"..//", ""},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.expected {
			t.Fatalf("sanitizeFilename(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestLineAmountUsesVariationPrice(t *testing.T) {
	item := order.Item{
		Title:             "Zinger Burger",
		Price:             450,
		Quantity:          2,
		SelectedVariation: &order.Variation{Name: "Large", Price: 550},
	}
	if got := lineAmount(item); got != 1100 {
		t.Fatalf("expected 1100, got %v", got)
	}

	item.SelectedVariation = nil
	if got := lineAmount(item); got != 900 {
		t.Fatalf("expected 900, got %v", got)
	}
}

func TestRenderDocuments(t *testing.T) {
	o := &order.Order{
		OrderNumber:     "TB-7",
		FullName:        "Ahmed Khan",
		Mobile:          "03001234567",
		OrderType:       order.TypeDelivery,
		DeliveryAddress: "House 12, Block 4, Gulshan",
		Subtotal:        1500,
		Discount:        150,
		DeliveryFee:     100,
		Total:           1450,
		PromoCode:       "SAVE10",
		PaymentMethod:   "cod",
		Items: []order.Item{
			{
				Title:               "Zinger Burger",
				Price:               450,
				Quantity:            2,
				SpecialInstructions: "extra spicy",
				SelectedExtras:      []order.Extra{{Name: "Cheese", Price: 50}},
			},
		},
	}

	slip, err := renderKitchenSlip(o)
	if err != nil {
		t.Fatalf("kitchen slip: %v", err)
	}
	if slip.Len() == 0 {
		t.Fatal("kitchen slip is empty")
	}

	bill, err := renderPreBill(o)
	if err != nil {
		t.Fatalf("pre-bill: %v", err)
	}
	if bill.Len() == 0 {
		t.Fatal("pre-bill is empty")
	}
}

func TestPreBillDerivesMissingDeliveryFee(t *testing.T) {
	placed := time.Date(2026, 8, 14, 19, 30, 0, 0, time.UTC)
	base := order.Order{
		OrderNumber:     "TB-42",
		FullName:        "Sana Iqbal",
		Mobile:          "03211234567",
		OrderType:       order.TypeDelivery,
		DeliveryAddress: "Flat 3, North Nazimabad",
		Subtotal:        1000,
		Total:           1150,
		PaymentMethod:   "cod",
		CreatedAt:       placed,
		Items: []order.Item{
			{Title: "Broast Quarter", Price: 500, Quantity: 2},
		},
	}

	persisted := base
	persisted.DeliveryFee = 150
	migrated := base

	withFee, err := renderPreBill(&persisted)
	if err != nil {
		t.Fatalf("pre-bill with persisted fee: %v", err)
	}
	withoutFee, err := renderPreBill(&migrated)
	if err != nil {
		t.Fatalf("pre-bill with missing fee: %v", err)
	}

	// Totals imply a 150 fee, so both documents must show the same
	// delivery line.
	if !bytes.Equal(withFee.Bytes(), withoutFee.Bytes()) {
		t.Fatal("pre-bill without a persisted fee should print the derived delivery fee")
	}
}
