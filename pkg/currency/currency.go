// Package currency formats and parses Indonesian Rupiah amounts.
//
// Amounts are whole rupiah held in int64; the currency has no minor unit in
// everyday use, so nothing here deals with fractions beyond rejecting or
// rounding them on input.
package currency

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Symbol is the prefix used for every formatted amount.
const Symbol = "Rp"

var (
	ErrNegativeAmount = errors.New("currency: amount must not be negative")
	ErrAmountTooLarge = errors.New("currency: amount is too large")
)

// maxAmount keeps amounts far below the int64 limit so sums of quantities
// times prices cannot overflow.
var maxAmount = decimal.New(1, 15)

// FormatNumber groups the digits of n the Indonesian way: 13000 -> "13.000".
func FormatNumber(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", ".")
}

// Format renders n as a Rupiah amount: 13000 -> "Rp 13.000", -500 -> "-Rp 500".
func Format(n int64) string {
	if n < 0 {
		return "-" + Symbol + " " + strings.TrimPrefix(FormatNumber(n), "-")
	}
	return Symbol + " " + FormatNumber(n)
}

// ToRupiah converts a decimal taken from user input into whole rupiah,
// rounding half away from zero.
func ToRupiah(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return 0, ErrAmountTooLarge
	}
	return d.Round(0).IntPart(), nil
}
