// Package money implements the fixed-point price arithmetic used by the
// pricing engine. Amounts are whole cents so totals stay exact; the only
// rounding point is percent application, which rounds half up at the cent.
package money

import "fmt"

// Cents is a monetary amount with two fractional digits, stored as an
// integer number of cents.
type Cents int64

// FromMajor converts a whole-unit amount ("20" -> 20.00) to cents.
func FromMajor(major int64) Cents {
	return Cents(major * 100)
}

// ApplyPercent discounts c by p percent. p outside (0, 100) is clamped:
// nothing happens below 1, everything is discounted at 100 and above.
func (c Cents) ApplyPercent(p int) Cents {
	if p <= 0 {
		return c
	}
	if p >= 100 {
		return 0
	}
	keep := int64(100 - p)
	return Cents((int64(c)*keep + 50) / 100)
}

// SubClamp subtracts amount and clamps the result at zero.
func (c Cents) SubClamp(amount Cents) Cents {
	r := c - amount
	if r < 0 {
		return 0
	}
	return r
}

// MulQty multiplies a unit price by a quantity.
func (c Cents) MulQty(qty int) Cents {
	return c * Cents(qty)
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
