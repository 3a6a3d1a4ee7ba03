// Package pricing converts storefront prices into the settlement currency.
package pricing

import (
	"github.com/juanitaaa04/ethere-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Converter applies one fixed local-to-settlement rate.
type Converter struct {
	rate decimal.Decimal
}

func NewConverter(rate decimal.Decimal) Converter {
	return Converter{rate: rate}
}

// UnitPrice converts a single local-currency amount, rounded to cents.
func (c Converter) UnitPrice(local decimal.Decimal) decimal.Decimal {
	return local.DivRound(c.rate, 2)
}

// Line is a converted cart item.
type Line struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Quote is the settlement-currency view of a cart.
type Quote struct {
	Lines []Line
	Total decimal.Decimal
}

// Quote converts each unit price on its own and sums unit price × quantity.
// Rounding happens per unit, so Total can differ by a cent or more from
// converting the local grand total in one step. Charged amounts depend on this.
func (c Converter) Quote(items []domain.CartItem) Quote {
	q := Quote{Lines: make([]Line, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		unit := c.UnitPrice(item.Price)
		q.Lines = append(q.Lines, Line{Name: item.Name, Quantity: item.Quantity, UnitPrice: unit})
		q.Total = q.Total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return q
}
