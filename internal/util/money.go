package util

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents 是以分为单位的金额，内部计算全部用整数，避免浮点误差。
// JSON 里序列化成两位小数的数字，比如 1234 分 -> 12.34
type Cents int64

// NewCents converts a decimal currency amount to cents, rounding
// half away from zero at the second decimal place.
func NewCents(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Shift(2).IntPart())
}

// Decimal returns the amount as an exact decimal currency value.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount with two decimal places, e.g. "12.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// MarshalJSON emits the amount as an unquoted JSON number with two
// decimal places so callers never see raw cent values.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
// Parsing is exact; range checks are left to the validators.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		return fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*c = NewCents(d)
	return nil
}

// DivCents divides a total by count and rounds to whole cents,
// half away from zero. count must be positive.
func DivCents(total Cents, count int64) Cents {
	avg := total.Decimal().DivRound(decimal.NewFromInt(count), 2)
	return NewCents(avg)
}
