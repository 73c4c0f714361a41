package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	// Stored as text so LIKE filters work across dialects.
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// JSONBRaw stores an arbitrary JSON document (upstream ingredient lists,
// instruction steps, nutrition blobs) without imposing a schema on it.
type JSONBRaw json.RawMessage

// Value implements the driver.Valuer interface
func (j JSONBRaw) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements the sql.Scanner interface
func (j *JSONBRaw) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = JSONBRaw(append([]byte(nil), v...))
	case string:
		*j = JSONBRaw(v)
	}
	return nil
}

// MarshalJSON renders the stored document as-is.
func (j JSONBRaw) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON stores the document as-is.
func (j *JSONBRaw) UnmarshalJSON(data []byte) error {
	*j = JSONBRaw(append([]byte(nil), data...))
	return nil
}

// Recipe is the locally cached copy of an upstream recipe, or an
// admin-created one. IDs are strings: cached upstream rows use the decimal
// upstream id, admin-created rows get a UUID.
type Recipe struct {
	ID             string           `gorm:"primarykey" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	SpoonacularID  *int64           `gorm:"uniqueIndex" json:"spoonacular_id"`
	Title          string           `gorm:"size:255;not null" json:"title"`
	Summary        string           `gorm:"type:text" json:"summary,omitempty"`
	Image          string           `gorm:"size:512" json:"image,omitempty"`
	SourceURL      string           `gorm:"size:512" json:"source_url,omitempty"`
	ReadyInMinutes *int             `json:"ready_in_minutes"`
	Servings       *int             `json:"servings"`
	Cuisines       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisines"`
	Diets          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"diets"`
	Ingredients    JSONBRaw         `gorm:"type:jsonb" json:"ingredients,omitempty"`
	Steps          JSONBRaw         `gorm:"type:jsonb" json:"steps,omitempty"`
	Nutrition      JSONBRaw         `gorm:"type:jsonb" json:"nutrition,omitempty"`
	AvgRating      float64          `gorm:"not null;default:0" json:"avg_rating"`
	RatingCount    int              `gorm:"not null;default:0" json:"rating_count"`
	Embedding      pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}
