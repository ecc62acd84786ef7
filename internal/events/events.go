// Package events publishes order and billing lifecycle events to RabbitMQ
// and runs the notifier that consumes them. The broker is optional: services
// hold a nil Publisher when no AMQP URL is configured and skip publishing.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tasty-table/internal/logger"
)

const (
	exchange      = "restaurant_events"
	notifyQueue   = "notifications.q"
	publishExpiry = 5 * time.Second
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and declares the topic exchange plus the
// notification queue bound to every routing key.
func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	c := &Client{conn: conn, ch: ch}
	if err := c.declare(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) declare() error {
	if err := c.ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := c.ch.QueueDeclare(notifyQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := c.ch.QueueBind(notifyQueue, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishExpiry)
	defer cancel()
	return c.ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// RunNotifier consumes the notification queue and logs every event until the
// context is cancelled.
func (c *Client) RunNotifier(ctx context.Context, lg *logger.Logger) error {
	deliveries, err := c.ch.Consume(notifyQueue, "notifier", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", notifyQueue, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("notification channel closed")
			}
			lg.Info("notification_received", map[string]any{
				"routing_key": d.RoutingKey,
				"body":        string(d.Body),
			})
			_ = d.Ack(false)
		}
	}
}
