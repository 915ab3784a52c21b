package models

import "time"

// CollectionItem is one game in a user's collection (collection_items table).
type CollectionItem struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Platform  string    `json:"platform" gorm:"size:64;not null;default:PC"`
	Status    string    `json:"status" gorm:"size:32;not null;default:planned"`
	Rating    *int      `json:"rating"`
	Note      *string   `json:"note" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

func (CollectionItem) TableName() string {
	return "collection_items"
}
