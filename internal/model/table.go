package model

import (
	"time"

	"github.com/google/uuid"
)

// Capacity bounds for a cafe table.
const (
	MinTableCapacity = 1
	MaxTableCapacity = 20
)

// cafe_tables
type CafeTable struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	TableNumber int `gorm:"not null;uniqueIndex"`

	// Seats at the table, 1..20. Guarded before every write.
	Capacity int `gorm:"not null"`

	PricePerPersonCents int64 `gorm:"not null"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Slots []Slot `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
