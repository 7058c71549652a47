package model

import (
	"time"

	"github.com/google/uuid"
)

// categories
type Category struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name string `gorm:"type:varchar(32);not null"`

	// Optional category-wide discount applied after the item discount.
	DiscountID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Discount  *Discount  `gorm:"foreignKey:DiscountID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	FoodItems []FoodItem `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// food_items
type FoodItem struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name string `gorm:"type:varchar(32);not null"`

	PriceCents int64 `gorm:"not null"`

	IsAvailable bool `gorm:"not null;default:true;index"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`

	// At most one discount per item; fixed and percent types can never
	// stack on the same item because only one reference exists.
	DiscountID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Discount *Discount `gorm:"foreignKey:DiscountID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
