package model

import "time"

// SettingSingletonID pins cafe_settings to a single row.
const SettingSingletonID = 1

// cafe_settings — singleton row (pk = 1), loaded once at startup and
// passed explicitly into the services that read it.
type CafeSetting struct {
	ID uint `gorm:"primaryKey"`

	CancelWindowHours    int  `gorm:"not null;default:1"`
	AllowUserCancel      bool `gorm:"not null;default:true"`
	AllowAdminLateCancel bool `gorm:"not null;default:true"`

	ReservationsEnabled bool `gorm:"not null;default:true"`

	SlotDurationMinutes   int `gorm:"not null;default:120"`
	AutoGenerateDaysAhead int `gorm:"not null;default:7"`

	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// DefaultCafeSetting mirrors the column defaults for stores that are
// created empty (first boot, tests).
func DefaultCafeSetting() *CafeSetting {
	return &CafeSetting{
		ID:                    SettingSingletonID,
		CancelWindowHours:     1,
		AllowUserCancel:       true,
		AllowAdminLateCancel:  true,
		ReservationsEnabled:   true,
		SlotDurationMinutes:   120,
		AutoGenerateDaysAhead: 7,
	}
}
