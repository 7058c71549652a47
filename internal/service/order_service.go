package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/money"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/pricing"
)

// OrderItem is one entry of a replacement order.
type OrderItem struct {
	FoodItemID uuid.UUID
	Quantity   int
}

// OrderService edits the pre-order attached to a reservation. All edits
// are restricted to pending reservations and every mutation reprices
// the whole reservation in the same transaction, so the stored total
// never drifts from the lines.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// AddItem adds quantity units of a food item to the reservation's
// order, merging into the existing line if one exists. A zero quantity
// is a no-op; unavailable items are rejected.
func (s *OrderService) AddItem(ctx context.Context, reservationID, foodItemID uuid.UUID, quantity int) (*model.Reservation, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if quantity == 0 {
		return s.Recalculate(ctx, reservationID)
	}
	return s.edit(ctx, reservationID, func(tx *gorm.DB, res *model.Reservation) error {
		item, err := loadFoodItemTx(tx, foodItemID)
		if err != nil {
			return err
		}
		if !item.IsAvailable {
			return fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
		}

		var line model.OrderLine
		err = tx.Where("reservation_id = ? AND food_item_id = ?", res.ID, foodItemID).First(&line).Error
		switch {
		case err == nil:
			line.Quantity += quantity
			if err := tx.Model(&model.OrderLine{}).Where("id = ?", line.ID).
				Update("quantity", line.Quantity).Error; err != nil {
				return fmt.Errorf("bump order line: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = model.OrderLine{
				ID:            uuid.New(),
				ReservationID: res.ID,
				FoodItemID:    foodItemID,
				Quantity:      quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("create order line: %w", err)
			}
		default:
			return fmt.Errorf("load order line: %w", err)
		}
		return nil
	})
}

// RemoveItem subtracts quantity units from the item's line, deleting
// the line when it reaches zero. Removing from a line that does not
// exist, or a zero quantity, is a no-op.
func (s *OrderService) RemoveItem(ctx context.Context, reservationID, foodItemID uuid.UUID, quantity int) (*model.Reservation, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if quantity == 0 {
		return s.Recalculate(ctx, reservationID)
	}
	return s.edit(ctx, reservationID, func(tx *gorm.DB, res *model.Reservation) error {
		var line model.OrderLine
		err := tx.Where("reservation_id = ? AND food_item_id = ?", res.ID, foodItemID).First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load order line: %w", err)
		}

		remaining := line.Quantity - quantity
		if remaining <= 0 {
			if err := tx.Delete(&model.OrderLine{}, "id = ?", line.ID).Error; err != nil {
				return fmt.Errorf("delete order line: %w", err)
			}
			return nil
		}
		if err := tx.Model(&model.OrderLine{}).Where("id = ?", line.ID).
			Update("quantity", remaining).Error; err != nil {
			return fmt.Errorf("shrink order line: %w", err)
		}
		return nil
	})
}

// ReplaceOrder swaps the reservation's whole order for the given items
// in one transaction. Duplicate item IDs are merged; zero quantities
// are dropped. An empty list clears the order.
func (s *OrderService) ReplaceOrder(ctx context.Context, reservationID uuid.UUID, items []OrderItem) (*model.Reservation, error) {
	merged := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if it.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
		}
		merged[it.FoodItemID] += it.Quantity
	}
	return s.edit(ctx, reservationID, func(tx *gorm.DB, res *model.Reservation) error {
		if err := tx.Delete(&model.OrderLine{}, "reservation_id = ?", res.ID).Error; err != nil {
			return fmt.Errorf("clear order: %w", err)
		}
		for itemID, qty := range merged {
			if qty == 0 {
				continue
			}
			item, err := loadFoodItemTx(tx, itemID)
			if err != nil {
				return err
			}
			if !item.IsAvailable {
				return fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
			}
			line := model.OrderLine{
				ID:            uuid.New(),
				ReservationID: res.ID,
				FoodItemID:    itemID,
				Quantity:      qty,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("create order line: %w", err)
			}
		}
		return nil
	})
}

// Recalculate reprices every line of a pending reservation against the
// current menu and discounts and rewrites the stored total.
func (s *OrderService) Recalculate(ctx context.Context, reservationID uuid.UUID) (*model.Reservation, error) {
	return s.edit(ctx, reservationID, func(tx *gorm.DB, res *model.Reservation) error {
		return nil
	})
}

// edit wraps a pending-only mutation and the mandatory reprice into one
// transaction.
func (s *OrderService) edit(
	ctx context.Context,
	reservationID uuid.UUID,
	mutate func(tx *gorm.DB, res *model.Reservation) error,
) (*model.Reservation, error) {
	var out *model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res model.Reservation
		if err := tx.First(&res, "id = ?", reservationID).Error; err != nil {
			return fmt.Errorf("load reservation: %w", err)
		}
		if res.Status != model.ReservationStatusPending {
			return fmt.Errorf("%w: order edits require a pending reservation, got %s", ErrInvalidState, res.Status)
		}
		if err := mutate(tx, &res); err != nil {
			return err
		}
		if _, err := recalculateReservationTx(tx, &res); err != nil {
			return err
		}
		if err := tx.Preload("Lines").First(&res, "id = ?", res.ID).Error; err != nil {
			return fmt.Errorf("reload reservation: %w", err)
		}
		out = &res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// recalculateReservationTx reprices every order line from the current
// menu, rewrites each line's final price, and updates the reservation
// total (seating plus order) in place.
func recalculateReservationTx(tx *gorm.DB, res *model.Reservation) (money.Cents, error) {
	var table model.CafeTable
	if err := tx.First(&table, "id = ?", res.TableID).Error; err != nil {
		return 0, fmt.Errorf("load table: %w", err)
	}

	var lines []model.OrderLine
	if err := tx.Where("reservation_id = ?", res.ID).Find(&lines).Error; err != nil {
		return 0, fmt.Errorf("load order lines: %w", err)
	}

	lineTotals := make([]money.Cents, 0, len(lines))
	for i := range lines {
		item, err := loadFoodItemTx(tx, lines[i].FoodItemID)
		if err != nil {
			return 0, err
		}
		lineTotal := pricing.LineTotal(item, lines[i].Quantity)
		if int64(lineTotal) != lines[i].FinalPriceCents {
			if err := tx.Model(&model.OrderLine{}).Where("id = ?", lines[i].ID).
				Update("final_price_cents", int64(lineTotal)).Error; err != nil {
				return 0, fmt.Errorf("reprice order line: %w", err)
			}
		}
		lineTotals = append(lineTotals, lineTotal)
	}

	total := pricing.ReservationTotal(money.Cents(table.PricePerPersonCents), res.PartySize, lineTotals)
	if err := tx.Model(&model.Reservation{}).Where("id = ?", res.ID).
		Update("total_price_cents", int64(total)).Error; err != nil {
		return 0, fmt.Errorf("update reservation total: %w", err)
	}

	log.WithFields(log.Fields{
		"reservation_id": res.ID,
		"lines":          len(lines),
		"total_cents":    int64(total),
	}).Debug("reservation repriced")
	return total, nil
}

func loadFoodItemTx(tx *gorm.DB, itemID uuid.UUID) (*model.FoodItem, error) {
	var item model.FoodItem
	err := tx.Preload("Discount").Preload("Category.Discount").
		First(&item, "id = ?", itemID).Error
	if err != nil {
		return nil, fmt.Errorf("load food item: %w", err)
	}
	return &item, nil
}
