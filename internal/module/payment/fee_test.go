package payment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFee(t *testing.T) {
	tests := []struct {
		amount  string
		percent string
		want    string
	}{
		{"100", "10", "10.00"},
		{"99.99", "7.5", "7.50"},
		{"10.005", "100", "10.01"},
		{"10.005", "10", "1.00"},
		{"0.05", "50", "0.03"},
		{"1234.56", "0", "0.00"},
		{"0.10", "33.333", "0.03"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+"x"+tt.percent, func(t *testing.T) {
			got := ComputeFee(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.percent))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, validateAmount(decimal.RequireFromString("0.01")))
	assert.NoError(t, validateAmount(decimal.RequireFromString("100.50")))
	assert.ErrorIs(t, validateAmount(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, validateAmount(decimal.RequireFromString("-5")), ErrInvalidAmount)
	assert.ErrorIs(t, validateAmount(decimal.RequireFromString("1.001")), ErrInvalidAmount)
}

func TestValidatePercent(t *testing.T) {
	assert.NoError(t, validatePercent(decimal.Zero))
	assert.NoError(t, validatePercent(decimal.NewFromInt(100)))
	assert.ErrorIs(t, validatePercent(decimal.RequireFromString("-0.1")), ErrInvalidFeePercent)
	assert.ErrorIs(t, validatePercent(decimal.RequireFromString("100.01")), ErrInvalidFeePercent)
}

func TestValidateAmount_Bounds(t *testing.T) {
	assert.NoError(t, validateAmount(decimal.RequireFromString("999999999999.99")))
	assert.NoError(t, validateAmount(decimal.RequireFromString("1e3")))
	assert.NoError(t, validateAmount(decimal.RequireFromString("12.50000000")))

	err := validateAmount(decimal.RequireFromString("1000000000000"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.ErrorIs(t, validateAmount(decimal.RequireFromString("1e20")), ErrInvalidAmount)
	assert.ErrorIs(t, validateAmount(decimal.RequireFromString("1.000000001")), ErrInvalidAmount)
	assert.ErrorIs(t, validateAmount(decimal.RequireFromString("99999999999999999999.99")), ErrInvalidAmount)
}

func TestValidate_HugeExponentsAreRejectedCheaply(t *testing.T) {
	for _, raw := range []string{`"1e20000000"`, `"1e-20000000"`, `1e2000000`, `"-1e-2000000"`} {
		var d decimal.Decimal
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)

		start := time.Now()
		assert.ErrorIs(t, validateAmount(d), ErrInvalidAmount, raw)
		assert.ErrorIs(t, validatePercent(d), ErrInvalidFeePercent, raw)
		assert.Less(t, time.Since(start), 100*time.Millisecond, raw)
	}

	assert.NoError(t, validatePercent(decimal.RequireFromString("1e2")))
	assert.NoError(t, validatePercent(decimal.RequireFromString("33.333")))
}
