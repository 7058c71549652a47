package model

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

// discounts — shared between food items and categories.
type Discount struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Type DiscountType `gorm:"type:varchar(16);not null"`

	// Percent is used when Type is "percent", 0..100.
	Percent int `gorm:"not null;default:0"`

	// AmountCents is used when Type is "fixed" and must be positive.
	// When attached to a food item it must not exceed the item price.
	AmountCents int64 `gorm:"not null;default:0"`

	Description string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
