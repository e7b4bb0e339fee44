package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type HandlerFunc func(ctx context.Context, body []byte) error

// ConsumeWithRetry processes the queue, requeueing failures with an
// x-retry-count header until maxRetries is exhausted, then dead-lettering
// via Nack.
func (c *Client) ConsumeWithRetry(queue string, handler HandlerFunc, maxRetries int, retryDelay time.Duration) error {
	msgs, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for msg := range msgs {
		ctx := context.Background()
		err := handler(ctx, msg.Body)
		if err == nil {
			_ = msg.Ack(false)
			continue
		}

		retryCount := getRetryCount(msg.Headers)
		if retryCount >= maxRetries {
			_ = msg.Nack(false, false)
			continue
		}

		retryCount++
		headers := msg.Headers
		if headers == nil {
			headers = amqp.Table{}
		}
		headers["x-retry-count"] = retryCount

		time.Sleep(retryDelay)
		_ = c.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
			Timestamp:   time.Now(),
		})
		_ = msg.Ack(false)
	}

	return errors.New("consumer closed")
}

// OrderEventSink receives translated order events; the ws server implements
// it to fan events out to connected admin sessions.
type OrderEventSink interface {
	OrderCreated(event OrderEvent)
	OrderUpdated(event OrderEvent)
	OrderDeleted(event OrderEvent)
}

// DispatchOrderEvent decodes one queued event and routes it to the sink.
// Unknown event types are dropped without error so new producers can ship
// first.
func DispatchOrderEvent(sink OrderEventSink, body []byte) error {
	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	DeliverOrderEvent(sink, event)
	return nil
}

func getRetryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	if v, ok := headers["x-retry-count"]; ok {
		switch t := v.(type) {
		case int32:
			return int(t)
		case int64:
			return int(t)
		case int:
			return t
		}
	}
	return 0
}
