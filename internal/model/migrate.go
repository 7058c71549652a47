package model

import "gorm.io/gorm"

// AutoMigrate migrates every entity of the reservation core.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&CafeTable{},
		&WorkingHour{},
		&Slot{},
		&Discount{},
		&Category{},
		&FoodItem{},
		&Reservation{},
		&OrderLine{},
		&CafeSetting{},
		&Event{},
	)
}
