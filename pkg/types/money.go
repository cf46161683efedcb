package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point currency amount. It marshals the way the storefront
// API serializes prices (a JSON number), with decimal arithmetic underneath.
type Money struct {
	decimal.Decimal
}

func MoneyFromFloat(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

func MoneyFromCents(cents int64) Money {
	return Money{decimal.New(cents, -2)}
}

func MoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("parsing money %q: %w", value, err)
	}
	return Money{d}, nil
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) MulQty(qty int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}
