package models

import "time"

// EventLog is an event consumed from RabbitMQ and stored durably (event_logs
// table). EventType is the routing key the message arrived on; PayloadJSON is
// the original message body. Records are append-only and never updated.
type EventLog struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EventType   string    `json:"event_type" gorm:"size:128;index;not null"`
	UserID      int64     `json:"user_id" gorm:"index;not null"`
	PayloadJSON string    `json:"payload_json" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (EventLog) TableName() string {
	return "event_logs"
}
