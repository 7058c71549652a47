package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

type AttendanceStatus string

const (
	AttendanceUnknown AttendanceStatus = "unknown"
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// ActiveReservationStatuses are the statuses that keep a slot occupied.
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
}

// reservations
type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	SlotID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Denormalized from the slot so availability and listing queries
	// do not need a join.
	TableID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Date    datatypes.Date `gorm:"type:date;not null;index"`

	PartySize int `gorm:"not null"`

	Status           ReservationStatus `gorm:"type:varchar(32);not null;default:'pending';index"`
	AttendanceStatus AttendanceStatus  `gorm:"type:varchar(32);not null;default:'unknown'"`

	// Derived: table rate x party size + sum of line final prices.
	// Always rewritten together with the mutation that invalidated it.
	TotalPriceCents int64 `gorm:"not null;default:0"`

	CancelledAt *time.Time `gorm:"type:timestamp with time zone"`

	Note string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	User  *User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Slot  *Slot      `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Table *CafeTable `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Lines []OrderLine `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// order_lines — one row per (reservation, food item).
type OrderLine struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	ReservationID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_lines_reservation_item"`
	FoodItemID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_lines_reservation_item"`

	// Always >= 1. A line whose quantity would drop to zero is deleted,
	// never kept around.
	Quantity int `gorm:"not null"`

	// Derived: discounted unit price x quantity.
	FinalPriceCents int64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Reservation *Reservation `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	FoodItem    *FoodItem    `gorm:"foreignKey:FoodItemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
