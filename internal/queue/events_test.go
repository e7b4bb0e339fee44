package queue

import (
	"encoding/json"
	"testing"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

type recordingSink struct {
	created []OrderEvent
	updated []OrderEvent
	deleted []OrderEvent
}

func (s *recordingSink) OrderCreated(event OrderEvent) { s.created = append(s.created, event) }
func (s *recordingSink) OrderUpdated(event OrderEvent) { s.updated = append(s.updated, event) }
func (s *recordingSink) OrderDeleted(event OrderEvent) { s.deleted = append(s.deleted, event) }

func TestNewOrderEvent(t *testing.T) {
	o := &order.Order{ID: 42, OrderNumber: "TB-42"}
	event := NewOrderEvent(EventOrderCreated, o)
	if event.OrderID != 42 {
		t.Fatalf("expected order id 42, got %d", event.OrderID)
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("expected OccurredAt to be set")
	}

	event = NewOrderEvent(EventOrderDeleted, nil)
	if event.OrderID != 0 {
		t.Fatalf("expected zero order id, got %d", event.OrderID)
	}
}

func TestDispatchOrderEventRouting(t *testing.T) {
	cases := []struct {
		eventType string
		check     func(s *recordingSink) int
	}{
		{EventOrderCreated, func(s *recordingSink) int { return len(s.created) }},
		{EventOrderStatusUpdated, func(s *recordingSink) int { return len(s.updated) }},
		{EventOrderCancelled, func(s *recordingSink) int { return len(s.updated) }},
		{EventOrderDeleted, func(s *recordingSink) int { return len(s.deleted) }},
	}

	for _, tc := range cases {
		t.Run(tc.eventType, func(t *testing.T) {
			sink := &recordingSink{}
			body, err := json.Marshal(OrderEvent{Type: tc.eventType, OrderID: 7})
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if err := DispatchOrderEvent(sink, body); err != nil {
				t.Fatalf("dispatch: %v", err)
			}
			if tc.check(sink) != 1 {
				t.Fatalf("event %s not routed", tc.eventType)
			}
		})
	}
}

func TestDispatchOrderEventUnknownTypeDropped(t *testing.T) {
	sink := &recordingSink{}
	if err := DispatchOrderEvent(sink, []byte(`{"type":"order.refunded","orderId":1}`)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(sink.created)+len(sink.updated)+len(sink.deleted) != 0 {
		t.Fatal("unknown event type should be dropped")
	}
}

func TestDispatchOrderEventBadPayload(t *testing.T) {
	if err := DispatchOrderEvent(&recordingSink{}, []byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
