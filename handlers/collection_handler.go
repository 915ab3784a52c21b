package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gameshelf/auth"
	"gameshelf/config"
	"gameshelf/events"
	"gameshelf/models"
)

type CollectionHandler struct {
	Events *events.Publisher
}

type itemCreateRequest struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
}

type itemUpdateRequest struct {
	Status *string `json:"status"`
	Rating *int    `json:"rating"`
	Note   *string `json:"note"`
}

// ListItems returns the caller's collection, newest first.
func (h *CollectionHandler) ListItems(c echo.Context) error {
	userID := auth.UserID(c)

	var items []models.CollectionItem
	if err := config.DB.Where("user_id = ?", userID).Order("id desc").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load collection"})
	}
	return c.JSON(http.StatusOK, items)
}

// AddItem creates a collection item (status "planned") and publishes
// collection.item_added. The item is committed before publish is attempted;
// a publish failure never affects the response.
func (h *CollectionHandler) AddItem(c echo.Context) error {
	userID := auth.UserID(c)

	var req itemCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}
	if req.Title == "" || len(req.Title) > 255 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title must be 1-255 characters"})
	}
	if req.Platform == "" {
		req.Platform = "PC"
	}
	if len(req.Platform) > 64 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Platform must be at most 64 characters"})
	}

	item := models.CollectionItem{
		UserID:   userID,
		Title:    req.Title,
		Platform: req.Platform,
		Status:   "planned",
	}
	if err := config.DB.Create(&item).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add item"})
	}

	h.Events.Publish(events.ItemAdded, map[string]any{
		"user_id":  userID,
		"item_id":  item.ID,
		"title":    item.Title,
		"platform": item.Platform,
	})

	return c.JSON(http.StatusCreated, item)
}

// GetItem returns one item, only if the caller owns it.
func (h *CollectionHandler) GetItem(c echo.Context) error {
	userID := auth.UserID(c)

	item, ok := h.findOwnedItem(c, userID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem partially updates status/rating/note and publishes
// collection.item_updated.
func (h *CollectionHandler) UpdateItem(c echo.Context) error {
	userID := auth.UserID(c)

	var req itemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}
	if req.Status != nil && len(*req.Status) > 32 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Status must be at most 32 characters"})
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Rating must be between 1 and 10"})
	}
	if req.Note != nil && len(*req.Note) > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Note must be at most 500 characters"})
	}

	item, ok := h.findOwnedItem(c, userID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
	}

	// Apply only the fields actually present in the PATCH body.
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Rating != nil {
		item.Rating = req.Rating
	}
	if req.Note != nil {
		item.Note = req.Note
	}

	if err := config.DB.Save(&item).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update item"})
	}

	h.Events.Publish(events.ItemUpdated, map[string]any{
		"user_id": userID,
		"item_id": item.ID,
		"status":  item.Status,
		"rating":  item.Rating,
	})

	return c.JSON(http.StatusOK, item)
}

// DeleteItem removes an owned item and publishes collection.item_deleted.
func (h *CollectionHandler) DeleteItem(c echo.Context) error {
	userID := auth.UserID(c)

	item, ok := h.findOwnedItem(c, userID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Item not found"})
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete item"})
	}

	h.Events.Publish(events.ItemDeleted, map[string]any{
		"user_id": userID,
		"item_id": item.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// findOwnedItem loads the :id item scoped to the owner. Cross-user ids look
// identical to missing ones.
func (h *CollectionHandler) findOwnedItem(c echo.Context, userID int64) (models.CollectionItem, bool) {
	var item models.CollectionItem

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID <= 0 {
		return item, false
	}

	err = config.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error
	if err != nil {
		return item, false
	}
	return item, true
}
