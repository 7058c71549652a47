package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
)

type TableRepository interface {
	// Find a table by ID.
	GetByID(ctx context.Context, id string) (*model.CafeTable, error)
	// Tables currently taking reservations, ordered by table number.
	ListActive(ctx context.Context) ([]model.CafeTable, error)
	// Create a table.
	Create(ctx context.Context, table *model.CafeTable) error
}

type GormTableRepository struct {
	db *gorm.DB
}

func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

func (r *GormTableRepository) GetByID(ctx context.Context, id string) (*model.CafeTable, error) {
	var t model.CafeTable
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormTableRepository) ListActive(ctx context.Context) ([]model.CafeTable, error) {
	var tables []model.CafeTable
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("table_number ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *GormTableRepository) Create(ctx context.Context, table *model.CafeTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}
