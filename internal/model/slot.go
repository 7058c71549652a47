package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// slots
type Slot struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	TableID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_slots_table_date_start"`

	Date datatypes.Date `gorm:"type:date;not null;index;uniqueIndex:idx_slots_table_date_start"`

	StartsAt time.Time `gorm:"type:timestamp with time zone;not null;uniqueIndex:idx_slots_table_date_start"`
	EndsAt   time.Time `gorm:"type:timestamp with time zone;not null"`

	// Derived: EndsAt - StartsAt in minutes.
	DurationMin int `gorm:"not null"`

	IsActive bool `gorm:"not null;default:true"`

	Note string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Table *CafeTable `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// DateOf truncates t to its calendar day in UTC. Slots, reservations and
// availability lookups all key dates this way so comparisons stay exact.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
