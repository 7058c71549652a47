package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
)

type SettingRepository interface {
	// The singleton settings row, created with defaults when missing.
	Load(ctx context.Context) (*model.CafeSetting, error)
	// Persist the singleton row.
	Save(ctx context.Context, setting *model.CafeSetting) error
}

type GormSettingRepository struct {
	db *gorm.DB
}

func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

func (r *GormSettingRepository) Load(ctx context.Context) (*model.CafeSetting, error) {
	var s model.CafeSetting
	tx := r.db.WithContext(ctx).First(&s, "id = ?", model.SettingSingletonID)
	if tx.Error == nil {
		return &s, nil
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, tx.Error
	}

	def := model.DefaultCafeSetting()
	if err := r.db.WithContext(ctx).Create(def).Error; err != nil {
		return nil, err
	}
	return def, nil
}

func (r *GormSettingRepository) Save(ctx context.Context, setting *model.CafeSetting) error {
	setting.ID = model.SettingSingletonID
	return r.db.WithContext(ctx).Save(setting).Error
}
