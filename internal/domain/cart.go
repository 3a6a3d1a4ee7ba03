package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultItemName = "Item"

// Bounds on decoded numbers. Arbitrary exponents such as 1e100000000 would make
// later arithmetic materialise the full digit string.
const (
	maxExponent = 15
	minExponent = -10
	maxDigits   = 24
	maxQuantity = math.MaxInt32
)

var ErrInvalidItem = errors.New("invalid cart item")

// CartItem is one storefront line, priced in the local currency.
type CartItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// UnmarshalJSON applies the storefront defaults: a missing name becomes "Item", a
// missing quantity 1 and a missing price 0. Quantity and price may be sent as
// numbers or numeric strings; fractional quantities are truncated.
func (c *CartItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     json.RawMessage `json:"name"`
		Quantity json.RawMessage `json:"quantity"`
		Price    json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	item := CartItem{Name: DefaultItemName, Quantity: 1, Price: decimal.Zero}

	if !isNull(raw.Name) {
		var name Text
		if err := name.UnmarshalJSON(raw.Name); err != nil {
			return err
		}
		item.Name = string(name)
	}

	if !isNull(raw.Quantity) {
		q, err := parseQuantity(raw.Quantity)
		if err != nil {
			return err
		}
		item.Quantity = q
	}

	if !isNull(raw.Price) {
		p, err := parsePrice(raw.Price)
		if err != nil {
			return err
		}
		item.Price = p
	}

	*c = item
	return nil
}

func parseQuantity(raw json.RawMessage) (int, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		q, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%w: quantity %q is not an integer", ErrInvalidItem, s)
		}
		if q > maxQuantity {
			return 0, fmt.Errorf("%w: quantity %d is too large", ErrInvalidItem, q)
		}
		return q, nil
	}

	d, err := parseDecimal(string(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %s: %v", ErrInvalidItem, raw, err)
	}
	d = d.Truncate(0)
	if d.GreaterThan(decimal.NewFromInt(maxQuantity)) {
		return 0, fmt.Errorf("%w: quantity %s is too large", ErrInvalidItem, raw)
	}
	return int(d.IntPart()), nil
}

func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	text := string(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		text = strings.TrimSpace(s)
	}
	p, err := parseDecimal(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price %s: %v", ErrInvalidItem, raw, err)
	}
	return p, nil
}

// parseDecimal rejects values whose exponent or precision is out of range before
// any arithmetic touches them.
func parseDecimal(text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, errors.New("not a number")
	}
	if exp := d.Exponent(); exp > maxExponent || exp < minExponent {
		return decimal.Zero, errors.New("out of range")
	}
	if d.NumDigits() > maxDigits {
		return decimal.Zero, errors.New("too many digits")
	}
	return d, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
