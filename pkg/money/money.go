// Package money provides fixed-point arithmetic for balances, prices and
// prize amounts.
//
// Invariants:
//   - Amount is an integer count of the smallest currency unit (satang).
//   - Balance arithmetic never touches floating point.
//   - Checked operations fail instead of overflowing or going negative.
package money

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrAmountMustBePositive is returned for zero or negative operands where
	// a positive amount is required.
	ErrAmountMustBePositive = errors.New("amount must be positive")
	// ErrNegativeBalance is returned when a subtraction would produce a
	// negative balance.
	ErrNegativeBalance = errors.New("balance cannot go negative")
	// ErrAmountOverflow is returned when an addition would overflow int64.
	ErrAmountOverflow = errors.New("amount overflows")
)

// Amount is a monetary value in minor units (satang).
type Amount int64

// Add returns a + b, failing on int64 overflow.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// Sub returns a - b, failing when the result would be negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrNegativeBalance
	}
	return a - b, nil
}

// Covers reports whether a balance of a can pay b.
func (a Amount) Covers(b Amount) bool { return a >= b }

// String renders the amount in major units with two decimals.
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
