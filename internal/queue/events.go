package queue

import (
	"context"
	"time"

	"github.com/ZainJ5/tipuburger-server/internal/order"
)

// Order lifecycle events flow through a topic exchange so every running
// instance (and any future consumer, e.g. an SMS notifier) sees them.
const (
	ExchangeEvents     = "tipu.events"
	QueueNotifications = "tipu.notifications"

	// The '#' wildcard is required: routing keys like 'order.status.updated'
	// span multiple segments.
	BindingOrders = "order.#"

	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status.updated"
	EventOrderCancelled     = "order.cancelled"
	EventOrderDeleted       = "order.deleted"
)

type OrderEvent struct {
	Type       string       `json:"type"`
	OrderID    int64        `json:"orderId"`
	Order      *order.Order `json:"order,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

func NewOrderEvent(eventType string, o *order.Order) OrderEvent {
	event := OrderEvent{Type: eventType, Order: o, OccurredAt: time.Now()}
	if o != nil {
		event.OrderID = o.ID
	}
	return event
}

// DeliverOrderEvent routes an in-process event to the sink, bypassing the
// queue. Used when RabbitMQ is not configured or a publish fails.
func DeliverOrderEvent(sink OrderEventSink, event OrderEvent) {
	switch event.Type {
	case EventOrderCreated:
		sink.OrderCreated(event)
	case EventOrderStatusUpdated, EventOrderCancelled:
		sink.OrderUpdated(event)
	case EventOrderDeleted:
		sink.OrderDeleted(event)
	}
}

// SetupTopology declares the exchange, the notifications queue and its
// binding. Idempotent; safe to run on every boot.
func SetupTopology(c *Client) error {
	if err := c.EnsureExchange(ExchangeEvents); err != nil {
		return err
	}
	if _, err := c.EnsureQueue(QueueNotifications); err != nil {
		return err
	}
	return c.BindQueue(QueueNotifications, ExchangeEvents, BindingOrders)
}

func (c *Client) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	return c.PublishJSON(ctx, ExchangeEvents, event.Type, event)
}
