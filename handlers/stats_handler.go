package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gameshelf/auth"
	"gameshelf/storage"
)

type StatsHandler struct {
	Store *storage.EventLogStore
}

type eventLogResponse struct {
	ID          int64     `json:"id"`
	EventType   string    `json:"event_type"`
	PayloadJSON string    `json:"payload_json"`
	CreatedAt   time.Time `json:"created_at"`
}

// MyEvents returns the caller's most recent consumed events, newest first,
// at most storage.RecentEventsLimit entries.
func (h *StatsHandler) MyEvents(c echo.Context) error {
	records, err := h.Store.ListRecent(auth.UserID(c))
	if err != nil {
		log.Printf("❌ Failed to load event logs: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load events"})
	}

	out := make([]eventLogResponse, 0, len(records))
	for _, r := range records {
		out = append(out, eventLogResponse{
			ID:          r.ID,
			EventType:   r.EventType,
			PayloadJSON: r.PayloadJSON,
			CreatedAt:   r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
