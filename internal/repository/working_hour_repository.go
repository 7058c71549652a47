package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
)

type WorkingHourRepository interface {
	// All weekday entries, ordered by weekday.
	List(ctx context.Context) ([]model.WorkingHour, error)
	// Insert or update the entry for wh.Weekday.
	Upsert(ctx context.Context, wh *model.WorkingHour) error
}

type GormWorkingHourRepository struct {
	db *gorm.DB
}

func NewGormWorkingHourRepository(db *gorm.DB) *GormWorkingHourRepository {
	return &GormWorkingHourRepository{db: db}
}

func (r *GormWorkingHourRepository) List(ctx context.Context) ([]model.WorkingHour, error) {
	var hours []model.WorkingHour
	err := r.db.WithContext(ctx).
		Order("weekday ASC").
		Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *GormWorkingHourRepository) Upsert(ctx context.Context, wh *model.WorkingHour) error {
	var existing model.WorkingHour
	tx := r.db.WithContext(ctx).First(&existing, "weekday = ?", int(wh.Weekday))
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(wh).Error
		}
		return tx.Error
	}
	updates := map[string]any{
		"open_min":  wh.OpenMin,
		"close_min": wh.CloseMin,
		"is_closed": wh.IsClosed,
	}
	return r.db.WithContext(ctx).
		Model(&model.WorkingHour{}).
		Where("weekday = ?", int(wh.Weekday)).
		Updates(updates).
		Error
}
