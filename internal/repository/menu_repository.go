package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
)

// MenuRepository is the menu catalog contract consumed by the pricing
// and order paths: items are always loaded with their category and any
// attached discounts.
type MenuRepository interface {
	// Item with Discount and Category.Discount preloaded.
	GetFoodItem(ctx context.Context, id string) (*model.FoodItem, error)
	// Items (with discounts) belonging to a category.
	ListFoodItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.FoodItem, error)
	// Create a category.
	CreateCategory(ctx context.Context, category *model.Category) error
	// Create a food item.
	CreateFoodItem(ctx context.Context, item *model.FoodItem) error
	// Create a discount record.
	CreateDiscount(ctx context.Context, discount *model.Discount) error
}

type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

func (r *GormMenuRepository) GetFoodItem(ctx context.Context, id string) (*model.FoodItem, error) {
	var item model.FoodItem
	err := r.db.WithContext(ctx).
		Preload("Discount").
		Preload("Category.Discount").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormMenuRepository) ListFoodItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.FoodItem, error) {
	var items []model.FoodItem
	err := r.db.WithContext(ctx).
		Preload("Discount").
		Preload("Category.Discount").
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormMenuRepository) CreateCategory(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *GormMenuRepository) CreateFoodItem(ctx context.Context, item *model.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormMenuRepository) CreateDiscount(ctx context.Context, discount *model.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}
