package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog records one search request for the admin dashboard. Writes are
// best effort; a failed log line never fails the search.
type SearchLog struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    *uuid.UUID `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	Query     string     `gorm:"size:255;not null" json:"query"`
	Filters   JSONBRaw   `gorm:"type:jsonb" json:"filters,omitempty"`
	Results   int        `gorm:"not null" json:"results"`
	TookMs    int64      `gorm:"not null" json:"took_ms"`
	Source    string     `gorm:"size:16" json:"source,omitempty"`
}
