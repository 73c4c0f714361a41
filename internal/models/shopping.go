package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string         `gorm:"size:60;not null" json:"name"`
	Items     []ShoppingItem `gorm:"foreignKey:ListID" json:"items"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type ShoppingItem struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ListID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"list_id"`
	Label     string    `gorm:"size:200;not null" json:"label"`
	Quantity  *float64  `json:"quantity"`
	Unit      *string   `gorm:"size:32" json:"unit"`
	Checked   bool      `gorm:"not null;default:false" json:"checked"`
	Meta      JSONBRaw  `gorm:"type:jsonb" json:"meta,omitempty"`
}

func (i *ShoppingItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
