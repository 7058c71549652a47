package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
)

// newTestDB opens an in-memory sqlite database with a minimal schema for
// the service logic (sqlite-friendly: uuid defaults left out, the code
// always sets IDs explicitly).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Every pooled connection gets its own :memory: database; pin the
	// pool to one so all sessions see the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT,
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE cafe_tables (
			id TEXT PRIMARY KEY,
			table_number INTEGER NOT NULL UNIQUE,
			capacity INTEGER NOT NULL,
			price_per_person_cents INTEGER NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE working_hours (
			id TEXT PRIMARY KEY,
			weekday INTEGER NOT NULL UNIQUE,
			open_min INTEGER NOT NULL,
			close_min INTEGER NOT NULL,
			is_closed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE slots (
			id TEXT PRIMARY KEY,
			table_id TEXT NOT NULL,
			date DATETIME NOT NULL,
			starts_at DATETIME NOT NULL,
			ends_at DATETIME NOT NULL,
			duration_min INTEGER NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			note TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (table_id, date, starts_at)
		);`,
		`CREATE TABLE discounts (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			percent INTEGER NOT NULL DEFAULT 0,
			amount_cents INTEGER NOT NULL DEFAULT 0,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			discount_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE food_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price_cents INTEGER NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			category_id TEXT NOT NULL,
			discount_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE reservations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			slot_id TEXT NOT NULL,
			table_id TEXT NOT NULL,
			date DATETIME NOT NULL,
			party_size INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			attendance_status TEXT NOT NULL DEFAULT 'unknown',
			total_price_cents INTEGER NOT NULL DEFAULT 0,
			cancelled_at DATETIME,
			note TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE order_lines (
			id TEXT PRIMARY KEY,
			reservation_id TEXT NOT NULL,
			food_item_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			final_price_cents INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (reservation_id, food_item_id)
		);`,
		`CREATE TABLE cafe_settings (
			id INTEGER PRIMARY KEY,
			cancel_window_hours INTEGER NOT NULL DEFAULT 1,
			allow_user_cancel BOOLEAN NOT NULL DEFAULT TRUE,
			allow_admin_late_cancel BOOLEAN NOT NULL DEFAULT TRUE,
			reservations_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			slot_duration_minutes INTEGER NOT NULL DEFAULT 120,
			auto_generate_days_ahead INTEGER NOT NULL DEFAULT 7,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			user_id TEXT,
			reservation_id TEXT,
			details TEXT
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func nowPlusDay() time.Time {
	return time.Now().UTC().Add(24 * time.Hour)
}

// fixedClock pins "now" for time-boundary tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func seedUser(t *testing.T, db *gorm.DB, staff bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	u := &model.User{ID: id, Username: "u-" + id.String()[:8], IsStaff: staff}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

func seedTable(t *testing.T, db *gorm.DB, number, capacity int, rateCents int64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	tbl := &model.CafeTable{
		ID:                  id,
		TableNumber:         number,
		Capacity:            capacity,
		PricePerPersonCents: rateCents,
		IsActive:            true,
	}
	if err := db.Create(tbl).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return id
}

func seedSlot(t *testing.T, db *gorm.DB, tableID uuid.UUID, startsAt time.Time, durationMin int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	slot := &model.Slot{
		ID:          id,
		TableID:     tableID,
		Date:        model.DateOf(startsAt),
		StartsAt:    startsAt,
		EndsAt:      startsAt.Add(time.Duration(durationMin) * time.Minute),
		DurationMin: durationMin,
		IsActive:    true,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	return id
}

func seedCategory(t *testing.T, db *gorm.DB, name string, discountID *uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	c := &model.Category{ID: id, Name: name, DiscountID: discountID}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return id
}

func seedFoodItem(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, priceCents int64, discountID *uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	item := &model.FoodItem{
		ID:          id,
		Name:        name,
		PriceCents:  priceCents,
		IsAvailable: true,
		CategoryID:  categoryID,
		DiscountID:  discountID,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed food item: %v", err)
	}
	return id
}

func seedPercentDiscount(t *testing.T, db *gorm.DB, percent int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	d := &model.Discount{ID: id, Type: model.DiscountTypePercent, Percent: percent}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("seed discount: %v", err)
	}
	return id
}
