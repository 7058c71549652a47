package model

import (
	"time"

	"github.com/google/uuid"
)

// working_hours — one row per weekday.
type WorkingHour struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Weekday time.Weekday `gorm:"not null;uniqueIndex"`

	// Minutes since midnight. When IsClosed is false, CloseMin > OpenMin.
	OpenMin  int `gorm:"not null"`
	CloseMin int `gorm:"not null"`

	IsClosed bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
