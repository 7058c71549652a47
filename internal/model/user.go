package model

import (
	"time"

	"github.com/google/uuid"
)

// users — identity itself is owned by the auth collaborator; this record
// exists so reservations have a referent and staff checks have a flag.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Username string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email    string `gorm:"type:varchar(254)"`

	IsStaff  bool `gorm:"not null;default:false"`
	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Reservations []Reservation `gorm:"foreignKey:UserID"`
}
