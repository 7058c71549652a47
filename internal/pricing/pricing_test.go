package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/money"
)

func pct(p int) *model.Discount {
	return &model.Discount{Type: model.DiscountTypePercent, Percent: p}
}

func fixed(cents int64) *model.Discount {
	return &model.Discount{Type: model.DiscountTypeFixed, AmountCents: cents}
}

func item(priceCents int64, d *model.Discount, catD *model.Discount) *model.FoodItem {
	return &model.FoodItem{
		PriceCents: priceCents,
		Discount:   d,
		Category:   &model.Category{Discount: catD},
	}
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		name string
		item *model.FoodItem
		qty  int
		want money.Cents
	}{
		// 20.00 x 0.9 x 3 = 54.00
		{"item percent only", item(2000, pct(10), pct(0)), 3, 5400},
		{"no discounts", item(2000, nil, nil), 2, 4000},
		{"category percent only", item(1000, nil, pct(25)), 1, 750},
		{"item then category percent", item(2000, pct(10), pct(50)), 1, 900},
		{"fixed on item", item(2000, fixed(500), nil), 2, 3000},
		{"fixed clamps at zero", item(300, fixed(500), nil), 4, 0},
		{"fixed then category percent", item(2000, fixed(1000), pct(10)), 1, 900},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LineTotal(tc.item, tc.qty))
		})
	}
}

func TestUnitPrice_NoCategoryLoaded(t *testing.T) {
	it := &model.FoodItem{PriceCents: 1500}
	assert.Equal(t, money.Cents(1500), UnitPrice(it))
}

func TestReservationTotal(t *testing.T) {
	// table rate 5.00 x 4 people + lines 54.00 and 7.50
	total := ReservationTotal(500, 4, []money.Cents{5400, 750})
	assert.Equal(t, money.Cents(8150), total)

	assert.Equal(t, money.Cents(2000), ReservationTotal(1000, 2, nil))
}

func TestValidateDiscount(t *testing.T) {
	require.NoError(t, ValidateDiscount(pct(0)))
	require.NoError(t, ValidateDiscount(pct(100)))
	assert.ErrorIs(t, ValidateDiscount(pct(101)), ErrInvalidPercent)
	assert.ErrorIs(t, ValidateDiscount(pct(-1)), ErrInvalidPercent)

	require.NoError(t, ValidateDiscount(fixed(1)))
	assert.ErrorIs(t, ValidateDiscount(fixed(0)), ErrInvalidFixed)
	assert.ErrorIs(t, ValidateDiscount(fixed(-200)), ErrInvalidFixed)

	assert.ErrorIs(t, ValidateDiscount(&model.Discount{Type: "bogus"}), ErrUnknownType)
}

func TestValidateItemDiscount(t *testing.T) {
	require.NoError(t, ValidateItemDiscount(fixed(2000), 2000))
	assert.ErrorIs(t, ValidateItemDiscount(fixed(2001), 2000), ErrFixedExceedsPrice)
	// Percent discounts are not bounded by the item price.
	require.NoError(t, ValidateItemDiscount(pct(100), 50))
}
