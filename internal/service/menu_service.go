package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/pricing"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/repository"
)

// MenuService manages the catalog, discounts and menu availability. Any
// change that shifts an item's effective price reprices every pending
// reservation whose order references the affected items, in the same
// transaction as the change itself.
type MenuService struct {
	db   *gorm.DB
	menu repository.MenuRepository
}

func NewMenuService(db *gorm.DB, menu repository.MenuRepository) *MenuService {
	return &MenuService{db: db, menu: menu}
}

// CreateCategory stores a new menu category.
func (s *MenuService) CreateCategory(ctx context.Context, category *model.Category) error {
	if category.Name == "" {
		return fmt.Errorf("%w: category name must not be empty", ErrValidation)
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := s.menu.CreateCategory(ctx, category); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// CreateFoodItem stores a new menu item.
func (s *MenuService) CreateFoodItem(ctx context.Context, item *model.FoodItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name must not be empty", ErrValidation)
	}
	if item.PriceCents <= 0 {
		return fmt.Errorf("%w: item price must be positive", ErrValidation)
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.menu.CreateFoodItem(ctx, item); err != nil {
		return fmt.Errorf("create food item: %w", err)
	}
	return nil
}

// ListCategoryItems returns a category's items with discounts loaded.
func (s *MenuService) ListCategoryItems(ctx context.Context, categoryID uuid.UUID) ([]model.FoodItem, error) {
	return s.menu.ListFoodItemsByCategory(ctx, categoryID)
}

// CreateDiscount validates and stores a new discount record.
func (s *MenuService) CreateDiscount(ctx context.Context, d *model.Discount) error {
	if err := pricing.ValidateDiscount(d); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if err := s.menu.CreateDiscount(ctx, d); err != nil {
		return fmt.Errorf("create discount: %w", err)
	}
	return nil
}

// AttachItemDiscount sets (or, with a nil discountID, clears) the
// discount on a single food item and reprices pending orders that
// contain it. A fixed discount larger than the item price is rejected.
func (s *MenuService) AttachItemDiscount(ctx context.Context, itemID uuid.UUID, discountID *uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.FoodItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return fmt.Errorf("load food item: %w", err)
		}
		if discountID != nil {
			var d model.Discount
			if err := tx.First(&d, "id = ?", *discountID).Error; err != nil {
				return fmt.Errorf("load discount: %w", err)
			}
			if err := pricing.ValidateItemDiscount(&d, item.PriceCents); err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
		if err := tx.Model(&model.FoodItem{}).Where("id = ?", itemID).
			Update("discount_id", discountID).Error; err != nil {
			return fmt.Errorf("attach item discount: %w", err)
		}
		return repricePendingForItemsTx(tx, []uuid.UUID{itemID})
	})
}

// AttachCategoryDiscount sets (or clears) the discount on a category
// and reprices pending orders containing any of the category's items.
func (s *MenuService) AttachCategoryDiscount(ctx context.Context, categoryID uuid.UUID, discountID *uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
			return fmt.Errorf("load category: %w", err)
		}
		if discountID != nil {
			var d model.Discount
			if err := tx.First(&d, "id = ?", *discountID).Error; err != nil {
				return fmt.Errorf("load discount: %w", err)
			}
			if err := pricing.ValidateDiscount(&d); err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
		if err := tx.Model(&model.Category{}).Where("id = ?", categoryID).
			Update("discount_id", discountID).Error; err != nil {
			return fmt.Errorf("attach category discount: %w", err)
		}

		var itemIDs []uuid.UUID
		if err := tx.Model(&model.FoodItem{}).Where("category_id = ?", categoryID).
			Pluck("id", &itemIDs).Error; err != nil {
			return fmt.Errorf("list category items: %w", err)
		}
		return repricePendingForItemsTx(tx, itemIDs)
	})
}

// SetItemAvailability toggles whether an item can be added to new
// orders. Existing order lines stay; their reservations are repriced so
// stored totals never go stale.
func (s *MenuService) SetItemAvailability(ctx context.Context, itemID uuid.UUID, available bool) error {
	if _, err := s.menu.GetFoodItem(ctx, itemID.String()); err != nil {
		return fmt.Errorf("load food item: %w", err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.FoodItem{}).Where("id = ?", itemID).
			Update("is_available", available).Error; err != nil {
			return fmt.Errorf("set item availability: %w", err)
		}
		return repricePendingForItemsTx(tx, []uuid.UUID{itemID})
	})
}

// repricePendingForItemsTx finds every pending reservation whose order
// references one of the given items and runs the full reprice on it.
func repricePendingForItemsTx(tx *gorm.DB, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	var reservationIDs []uuid.UUID
	err := tx.Model(&model.OrderLine{}).
		Distinct("order_lines.reservation_id").
		Joins("JOIN reservations ON reservations.id = order_lines.reservation_id").
		Where("order_lines.food_item_id IN ?", itemIDs).
		Where("reservations.status = ?", model.ReservationStatusPending).
		Pluck("order_lines.reservation_id", &reservationIDs).Error
	if err != nil {
		return fmt.Errorf("list affected reservations: %w", err)
	}

	for _, id := range reservationIDs {
		var res model.Reservation
		if err := tx.First(&res, "id = ?", id).Error; err != nil {
			return fmt.Errorf("load reservation: %w", err)
		}
		if _, err := recalculateReservationTx(tx, &res); err != nil {
			return err
		}
	}
	if len(reservationIDs) > 0 {
		log.WithField("reservations", len(reservationIDs)).Info("repriced pending reservations after menu change")
	}
	return nil
}
