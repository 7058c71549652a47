package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
)

type SlotRepository interface {
	// Find a slot by ID.
	GetByID(ctx context.Context, id string) (*model.Slot, error)
	// Find the slot occupying (table, date, start); gorm.ErrRecordNotFound when absent.
	Find(ctx context.Context, tableID uuid.UUID, date datatypes.Date, startsAt time.Time) (*model.Slot, error)
	// Create a slot.
	Create(ctx context.Context, slot *model.Slot) error
	// Slots of one table on one date, ordered by start.
	ListByTableAndDate(ctx context.Context, tableID uuid.UUID, date datatypes.Date) ([]model.Slot, error)
	// Number of slots on a date, any table.
	CountByDate(ctx context.Context, date datatypes.Date) (int64, error)
	// Delete slots with date >= from that no reservation references; returns deleted count.
	DeleteUnusedFrom(ctx context.Context, from datatypes.Date) (int64, error)
}

type GormSlotRepository struct {
	db *gorm.DB
}

func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

func (r *GormSlotRepository) GetByID(ctx context.Context, id string) (*model.Slot, error) {
	var slot model.Slot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) Find(
	ctx context.Context,
	tableID uuid.UUID,
	date datatypes.Date,
	startsAt time.Time,
) (*model.Slot, error) {
	var slot model.Slot
	err := r.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Where("date = ?", date).
		Where("starts_at = ?", startsAt).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *GormSlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *GormSlotRepository) ListByTableAndDate(
	ctx context.Context,
	tableID uuid.UUID,
	date datatypes.Date,
) ([]model.Slot, error) {
	var slots []model.Slot
	err := r.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Where("date = ?", date).
		Order("starts_at ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *GormSlotRepository) CountByDate(ctx context.Context, date datatypes.Date) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Slot{}).
		Where("date = ?", date).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormSlotRepository) DeleteUnusedFrom(ctx context.Context, from datatypes.Date) (int64, error) {
	referenced := r.db.Model(&model.Reservation{}).Select("slot_id")

	tx := r.db.WithContext(ctx).
		Where("date >= ?", from).
		Where("id NOT IN (?)", referenced).
		Delete(&model.Slot{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
