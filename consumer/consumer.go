package consumer

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gameshelf/config"
	"gameshelf/events"
)

// dialAMQP is a test seam for simulating broker failures.
var dialAMQP = amqp.Dial

// EventStore persists consumed events. Implemented by storage.EventLogStore.
type EventStore interface {
	Append(eventType string, userID int64, payloadJSON string) error
}

// Consumer is the long-lived stats consume loop. It owns its broker
// connection exclusively; the publish path never shares it. Run one Consumer
// per process — scaling out means more processes bound to the same durable
// queue (competing consumers).
type Consumer struct {
	cfg   config.RabbitMQConf
	store EventStore
}

func New(cfg config.RabbitMQConf, store EventStore) *Consumer {
	return &Consumer{cfg: cfg, store: store}
}

// Run consumes until ctx is cancelled. Any broker failure tears the
// connection down, waits the fixed reconnect delay and starts over from a
// fresh connection. The loop has no terminal state besides cancellation.
func (c *Consumer) Run(ctx context.Context) error {
	delay := time.Duration(c.cfg.ReconnectDelay) * time.Second

	for {
		if err := c.consumeOnce(ctx); err != nil {
			log.Printf("❌ Consumer crashed: %v. Retry in %v...", err, delay)
		}

		select {
		case <-ctx.Done():
			log.Println("🛑 Consumer stopped")
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// consumeOnce runs a single connect-declare-consume cycle. It returns nil
// only when ctx is cancelled; every broker error bubbles up so Run can back
// off and reconnect.
func (c *Consumer) consumeOnce(ctx context.Context) error {
	conn, err := dialAMQP(c.cfg.GetRabbitMQURL())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer closeQuietly(conn)

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, events.ExchangeType, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", c.cfg.Exchange, err)
	}

	if _, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.cfg.Queue, err)
	}

	if err := ch.QueueBind(c.cfg.Queue, c.cfg.BindingKey, c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s to %s: %w", c.cfg.Queue, c.cfg.BindingKey, err)
	}

	// Prefetch bounds the in-flight unacknowledged messages so a slow store
	// cannot grow memory without limit.
	if err := ch.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("set prefetch: %w", err)
	}

	deliveries, err := ch.Consume(c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consume: %w", err)
	}

	log.Printf("🎧 Stats consumer started. Queue: %s, binding: %s, prefetch: %d",
		c.cfg.Queue, c.cfg.BindingKey, c.cfg.PrefetchCount)

	for {
		select {
		case <-ctx.Done():
			// Let the deferred close tear the channel down; the in-flight
			// handler has already finished by the time we get here.
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			c.handleDelivery(d.Body, d.RoutingKey)

			// Ack regardless of handler outcome so a poison message can
			// never stall the queue.
			if err := d.Ack(false); err != nil {
				return fmt.Errorf("ack %s: %w", d.RoutingKey, err)
			}
		}
	}
}

func closeQuietly(conn *amqp.Connection) {
	if err := conn.Close(); err != nil {
		log.Printf("⚠️  Failed to close RabbitMQ connection: %v", err)
	}
}
