package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// dialAMQP is a test seam for simulating a failing broker.
var dialAMQP = amqp.Dial

const publishTimeout = 5 * time.Second

// Publisher sends events to the topic exchange over a per-call connection.
// Publishing is strictly best-effort: the mutation that produced the event is
// already committed, so a lost event must never fail or roll back the HTTP
// request that triggered it.
type Publisher struct {
	url      string
	exchange string
}

func NewPublisher(url, exchange string) *Publisher {
	if exchange == "" {
		exchange = ExchangeName
	}
	return &Publisher{url: url, exchange: exchange}
}

// Publish serializes payload as JSON and publishes it with persistent
// delivery mode. Every step is guarded: failures are logged and swallowed,
// and Publish never reports an error to the caller.
func (p *Publisher) Publish(routingKey string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("❌ Failed to marshal event %s: %v", routingKey, err)
		return
	}

	conn, err := dialAMQP(p.url)
	if err != nil {
		log.Printf("❌ Failed to connect to RabbitMQ for event %s: %v", routingKey, err)
		return
	}
	defer closeQuietly(conn)

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("❌ Failed to open channel for event %s: %v", routingKey, err)
		return
	}

	if err := ch.ExchangeDeclare(p.exchange, ExchangeType, true, false, false, false, nil); err != nil {
		log.Printf("❌ Failed to declare exchange %s: %v", p.exchange, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		log.Printf("❌ Event publish failed %s: %v", routingKey, err)
		return
	}

	log.Printf("✅ Published event %s", routingKey)
}

// closeQuietly closes the per-call connection even after an earlier step
// failed, guarding the close itself so a broken teardown cannot surface to
// the HTTP handler.
func closeQuietly(conn *amqp.Connection) {
	if err := conn.Close(); err != nil {
		log.Printf("⚠️  Failed to close RabbitMQ connection: %v", err)
	}
}
