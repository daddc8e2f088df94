package amqp

import (
	"context"
	"fmt"
	"log/slog"
)

// BindingAllEvents matches every expense event type on the topic exchange.
const BindingAllEvents = "expense.*"

const consumerPrefetch = 10

// ConsumeExpenseEvents declares a durable queue bound to the exchange and
// hands each decoded event to handler until ctx is cancelled. Undecodable
// messages are dropped; handler errors requeue the message.
func (c *Client) ConsumeExpenseEvents(ctx context.Context, queue string, handler func(context.Context, *ExpenseEvent) error) error {
	ch, err := c.ensureChannel()
	if err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue, BindingAllEvents, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}

	msgs, err := ch.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming expense events", "queue", queue, "exchange", c.exchangeName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping event consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			ev, err := ExpenseEventFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal event", "error", err, "routing_key", delivery.RoutingKey)
				_ = delivery.Nack(false, false)
				continue
			}

			if err := handler(ctx, ev); err != nil {
				slog.ErrorContext(ctx, "Failed to handle event",
					"error", err,
					"expense_id", ev.ID,
					"type", ev.Type)
				_ = delivery.Nack(false, true)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}
