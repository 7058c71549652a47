package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit event kind.
type EventType string

const (
	EventTypeReservationCreated   EventType = "reservation_created"
	EventTypeReservationConfirmed EventType = "reservation_confirmed"
	EventTypeReservationCancelled EventType = "reservation_cancelled"
	EventTypeReservationCompleted EventType = "reservation_completed"
	EventTypeSlotsGenerated       EventType = "slots_generated"
	EventTypeSlotsCleared         EventType = "slots_cleared"
)

// events — audit trail, written in the same transaction as the change
// it records.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`

	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	ReservationID *uuid.UUID `gorm:"type:uuid;index"`

	Details string `gorm:"type:text"`

	User        *User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Reservation *Reservation `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
