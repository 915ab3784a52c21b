package storage

import (
	"fmt"

	"gorm.io/gorm"

	"gameshelf/models"
)

// RecentEventsLimit caps the stats read path.
const RecentEventsLimit = 50

// EventLogStore is the append-only log of consumed events.
type EventLogStore struct {
	db *gorm.DB
}

func NewEventLogStore(db *gorm.DB) *EventLogStore {
	return &EventLogStore{db: db}
}

// Append writes one consumed event. Records with a non-positive user id are
// rejected and never stored. Each call is its own transactional scope; no
// transaction ever spans a broker round-trip.
func (s *EventLogStore) Append(eventType string, userID int64, payloadJSON string) error {
	if userID <= 0 {
		return fmt.Errorf("user id must be positive, got %d", userID)
	}

	record := models.EventLog{
		EventType:   eventType,
		UserID:      userID,
		PayloadJSON: payloadJSON,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}
	return nil
}

// ListRecent returns the user's events newest-first, capped at
// RecentEventsLimit and scoped strictly to userID.
func (s *EventLogStore) ListRecent(userID int64) ([]models.EventLog, error) {
	var records []models.EventLog
	err := s.db.
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(RecentEventsLimit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list event logs: %w", err)
	}
	return records, nil
}
