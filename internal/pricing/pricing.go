// Package pricing computes reservation prices as pure functions over the
// entity snapshots handed to it. Recomputing a stored total from scratch
// with these functions must always reproduce the stored value.
package pricing

import (
	"errors"
	"fmt"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/money"
)

var (
	ErrInvalidPercent    = errors.New("percent discount must be between 0 and 100")
	ErrInvalidFixed      = errors.New("fixed discount must be positive")
	ErrFixedExceedsPrice = errors.New("fixed discount exceeds item price")
	ErrUnknownType       = errors.New("unknown discount type")
)

// applyDiscount reduces a unit price by one discount. A nil discount is
// the identity.
func applyDiscount(unit money.Cents, d *model.Discount) money.Cents {
	if d == nil {
		return unit
	}
	switch d.Type {
	case model.DiscountTypePercent:
		return unit.ApplyPercent(d.Percent)
	case model.DiscountTypeFixed:
		return unit.SubClamp(money.Cents(d.AmountCents))
	default:
		return unit
	}
}

// UnitPrice returns the price of a single unit of item after its own
// discount and then its category's discount. Discount and Category must
// be preloaded on the item; a missing association means "no discount".
func UnitPrice(item *model.FoodItem) money.Cents {
	unit := applyDiscount(money.Cents(item.PriceCents), item.Discount)
	if item.Category != nil {
		unit = applyDiscount(unit, item.Category.Discount)
	}
	return unit
}

// LineTotal is the discounted unit price of item multiplied by qty.
func LineTotal(item *model.FoodItem, qty int) money.Cents {
	return UnitPrice(item).MulQty(qty)
}

// ReservationTotal is the table base price (rate x party size) plus the
// sum of the given line totals.
func ReservationTotal(pricePerPerson money.Cents, partySize int, lineTotals []money.Cents) money.Cents {
	total := pricePerPerson.MulQty(partySize)
	for _, lt := range lineTotals {
		total += lt
	}
	return total
}

// ValidateDiscount checks the static invariants of a discount record.
func ValidateDiscount(d *model.Discount) error {
	switch d.Type {
	case model.DiscountTypePercent:
		if d.Percent < 0 || d.Percent > 100 {
			return fmt.Errorf("%w: got %d", ErrInvalidPercent, d.Percent)
		}
	case model.DiscountTypeFixed:
		if d.AmountCents <= 0 {
			return fmt.Errorf("%w: got %d cents", ErrInvalidFixed, d.AmountCents)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, d.Type)
	}
	return nil
}

// ValidateItemDiscount additionally requires a fixed discount not to
// exceed the price of the item it is being attached to.
func ValidateItemDiscount(d *model.Discount, itemPriceCents int64) error {
	if err := ValidateDiscount(d); err != nil {
		return err
	}
	if d.Type == model.DiscountTypeFixed && d.AmountCents > itemPriceCents {
		return fmt.Errorf("%w: %s off a %s item",
			ErrFixedExceedsPrice, money.Cents(d.AmountCents), money.Cents(itemPriceCents))
	}
	return nil
}
