// Package money is the single parse/format/arithmetic contract for monetary
// values. Prices arrive from the backend as JSON numbers or strings and from
// user input as free text; everything funnels through Parse so fallback
// behavior is the same everywhere: garbage reads as zero.
package money

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal monetary value.
type Amount struct {
	dec decimal.Decimal
}

func Zero() Amount {
	return Amount{}
}

func FromInt(value int64) Amount {
	return Amount{dec: decimal.NewFromInt(value)}
}

// Parse reads a monetary value from text. Empty or unparseable input yields
// zero, never an error.
func Parse(value string) Amount {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Amount{}
	}
	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{}
	}
	return Amount{dec: dec}
}

func (a Amount) Add(other Amount) Amount {
	return Amount{dec: a.dec.Add(other.dec)}
}

func (a Amount) Sub(other Amount) Amount {
	return Amount{dec: a.dec.Sub(other.dec)}
}

// MulInt scales the amount by a quantity.
func (a Amount) MulInt(qty int) Amount {
	return Amount{dec: a.dec.Mul(decimal.NewFromInt(int64(qty)))}
}

func (a Amount) Cmp(other Amount) int {
	return a.dec.Cmp(other.dec)
}

func (a Amount) GreaterOrEqual(other Amount) bool {
	return a.dec.Cmp(other.dec) >= 0
}

func (a Amount) IsZero() bool {
	return a.dec.IsZero()
}

// String renders with two decimal places.
func (a Amount) String() string {
	return a.dec.StringFixed(2)
}

// Format renders with a currency symbol, e.g. "₹240.00".
func (a Amount) Format(symbol string) string {
	return symbol + a.dec.StringFixed(2)
}

// MarshalJSON emits a plain JSON number, matching what the backend expects
// for subtotal/total fields.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.dec.String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers, and null. Anything else
// falls back to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		a.dec = decimal.Decimal{}
		return nil
	}
	raw = bytes.Trim(raw, `"`)
	dec, err := decimal.NewFromString(string(raw))
	if err != nil {
		a.dec = decimal.Decimal{}
		return nil
	}
	a.dec = dec
	return nil
}

// Sum folds a list of amounts.
func Sum(amounts ...Amount) Amount {
	total := Amount{}
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
