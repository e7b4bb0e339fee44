package stats

import (
	"testing"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

func sampleOrders() []order.Order {
	return []order.Order{
		{
			ID: 1, Status: order.StatusComplete, OrderType: order.TypeDelivery,
			DeliveryAddress: "House 4, Gulshan",
			Subtotal:        1000, Tax: 50, DeliveryFee: 150, Total: 1200,
			Items: []order.Item{
				{Title: "Zinger Burger", Price: 500, Quantity: 2},
			},
		},
		{
			ID: 2, Status: order.StatusDispatched, OrderType: order.TypeDelivery,
			Area:     "Gulshan",
			Subtotal: 600, Total: 750, DeliveryFee: 150,
			PromoCode: "SAVE10", PromoDiscount: 60, Discount: 60,
			Items: []order.Item{
				{Title: "Loaded Fries", Price: 300, Quantity: 2},
			},
		},
		{
			ID: 3, Status: order.StatusPending, OrderType: order.TypePickup,
			Subtotal: 450, Total: 450,
			Items: []order.Item{
				// Legacy line with title-encoded quantity.
				{Title: "3x Samosa", Price: 150, Quantity: 1},
			},
		},
		{
			ID: 4, Status: order.StatusCancel, OrderType: order.TypeDelivery,
			DeliveryAddress: "Flat 1, Clifton",
			Subtotal:        5000, Total: 5000, CancelReason: "no answer",
			Items: []order.Item{
				{Title: "Party Platter", Price: 5000, Quantity: 1},
			},
		},
	}
}

func TestAggregateStatusCounts(t *testing.T) {
	s := Aggregate(sampleOrders(), Options{})

	if s.TotalOrders != 4 {
		t.Fatalf("expected 4 orders, got %d", s.TotalOrders)
	}
	expected := map[order.Status]int{
		order.StatusComplete:   1,
		order.StatusDispatched: 1,
		order.StatusPending:    1,
		order.StatusCancel:     1,
	}
	for status, count := range expected {
		if s.StatusCounts[status] != count {
			t.Fatalf("status %s: expected %d, got %d", status, count, s.StatusCounts[status])
		}
	}
}

func TestAggregateExcludesCancelledFinancials(t *testing.T) {
	s := Aggregate(sampleOrders(), Options{})

	if s.Financials.Subtotal != 2050 {
		t.Fatalf("cancelled order leaked into subtotal: %v", s.Financials.Subtotal)
	}
	if s.Financials.Total != 2400 {
		t.Fatalf("cancelled order leaked into total: %v", s.Financials.Total)
	}

	for _, item := range s.TopItems {
		if item.Name == "Party Platter" {
			t.Fatal("cancelled order items must not appear in top items")
		}
	}
}

func TestAggregateScopedToCancelled(t *testing.T) {
	s := Aggregate(sampleOrders(), Options{ScopedToCancelled: true})

	if s.Financials.Total != 5000 {
		t.Fatalf("expected only the cancelled order's total, got %v", s.Financials.Total)
	}
	if len(s.TopItems) != 1 || s.TopItems[0].Name != "Party Platter" {
		t.Fatalf("expected only cancelled-order items, got %+v", s.TopItems)
	}
}

func TestAggregateTopItemsParsesLegacyQuantities(t *testing.T) {
	s := Aggregate(sampleOrders(), Options{})

	var samosa *ItemStat
	for i := range s.TopItems {
		if s.TopItems[i].Name == "Samosa" {
			samosa = &s.TopItems[i]
		}
	}
	if samosa == nil {
		t.Fatalf("legacy title-encoded item missing from top items: %+v", s.TopItems)
	}
	if samosa.Quantity != 3 || samosa.Revenue != 450 {
		t.Fatalf("legacy quantity not applied: %+v", samosa)
	}

	// Zinger Burger at 1000 revenue should lead.
	if s.TopItems[0].Name != "Zinger Burger" {
		t.Fatalf("expected Zinger Burger first by revenue, got %+v", s.TopItems[0])
	}
}

func TestAggregateTopAreas(t *testing.T) {
	s := Aggregate(sampleOrders(), Options{})

	if len(s.TopAreas) != 1 {
		t.Fatalf("expected one delivery area, got %+v", s.TopAreas)
	}
	gulshan := s.TopAreas[0]
	if gulshan.Area != "Gulshan" || gulshan.Orders != 2 {
		t.Fatalf("area resolution failed: %+v", gulshan)
	}
	// (1200 + 750) / 2 = 975
	if gulshan.AverageOrderValue != 975 {
		t.Fatalf("expected average order value 975, got %v", gulshan.AverageOrderValue)
	}
	if gulshan.EstimatedDeliveryFees != 300 {
		t.Fatalf("expected delivery fees 300, got %v", gulshan.EstimatedDeliveryFees)
	}
}

func TestAggregatePromoUsage(t *testing.T) {
	s := Aggregate(sampleOrders(), Options{})

	if len(s.PromoUsage) != 1 {
		t.Fatalf("expected one promo entry, got %+v", s.PromoUsage)
	}
	p := s.PromoUsage[0]
	if p.Code != "SAVE10" || p.Uses != 1 || p.DiscountGranted != 60 || p.NetRevenue != 750 {
		t.Fatalf("unexpected promo stats: %+v", p)
	}
}

func TestAggregateImpliedDeliveryFee(t *testing.T) {
	// Legacy delivery order without a persisted fee: 1150 - 1000 = 150.
	orders := []order.Order{{
		ID: 10, Status: order.StatusComplete, OrderType: order.TypeDelivery,
		Area: "Gulshan", Subtotal: 1000, Total: 1150,
	}}

	s := Aggregate(orders, Options{})
	if s.TopAreas[0].EstimatedDeliveryFees != 150 {
		t.Fatalf("expected implied fee 150, got %v", s.TopAreas[0].EstimatedDeliveryFees)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, Options{})
	if s.TotalOrders != 0 || len(s.TopItems) != 0 || len(s.TopAreas) != 0 || len(s.PromoUsage) != 0 {
		t.Fatalf("empty input should yield an empty summary: %+v", s)
	}
}
