package currency

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{3000, "Rp 3.000"},
		{13000, "Rp 13.000"},
		{1250000, "Rp 1.250.000"},
		{-1000, "-Rp 1.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "Format(%d)", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "13.000", FormatNumber(13000))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "-2.500", FormatNumber(-2500))
}

func TestFormatExtremes(t *testing.T) {
	assert.Equal(t, "9.223.372.036.854.775.807", FormatNumber(math.MaxInt64))
	assert.Equal(t, "-9.223.372.036.854.775.808", FormatNumber(math.MinInt64))
	assert.Equal(t, "-Rp 9.223.372.036.854.775.808", Format(math.MinInt64))
	assert.Equal(t, "-Rp 1", Format(-1))
}

func TestToRupiah(t *testing.T) {
	n, err := ToRupiah(decimal.RequireFromString("15000"))
	require.NoError(t, err)
	assert.Equal(t, int64(15000), n)

	n, err = ToRupiah(decimal.RequireFromString("999.5"))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), n)

	_, err = ToRupiah(decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ToRupiah(decimal.RequireFromString("1000000000000000"))
	assert.ErrorIs(t, err, ErrAmountTooLarge)
}
