package consumer

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
)

// handleDelivery processes one consumed message. Failures are logged and the
// message is dropped — the caller acks either way, so a malformed body or a
// store outage can never block the queue.
func (c *Consumer) handleDelivery(body []byte, routingKey string) {
	if err := c.storeMessage(body, routingKey); err != nil {
		log.Printf("❌ Failed to process message %s: %v", routingKey, err)
		return
	}
	log.Printf("✅ Consumed %s", routingKey)
}

// storeMessage decodes the body and appends an event log record. The routing
// key the message arrived on is the authoritative event type — never a field
// inside the payload.
func (c *Consumer) storeMessage(body []byte, routingKey string) error {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	userID, err := extractUserID(payload)
	if err != nil {
		return err
	}

	if err := c.store.Append(routingKey, userID, string(body)); err != nil {
		return fmt.Errorf("store event: %w", err)
	}
	return nil
}

// extractUserID coerces the payload's user_id to a positive integer. JSON
// numbers decode as float64; producers on other stacks occasionally send
// numeric strings.
func extractUserID(payload map[string]any) (int64, error) {
	raw, ok := payload["user_id"]
	if !ok || raw == nil {
		return 0, fmt.Errorf("missing user_id in event")
	}

	var userID int64
	switch v := raw.(type) {
	case float64:
		userID = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid user_id %q in event", v)
		}
		userID = parsed
	default:
		return 0, fmt.Errorf("invalid user_id type %T in event", raw)
	}

	if userID <= 0 {
		return 0, fmt.Errorf("invalid user_id %d in event", userID)
	}
	return userID, nil
}
