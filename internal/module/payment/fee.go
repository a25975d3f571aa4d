package payment

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	// maxAmount matches the numeric(14,2) columns of the payments table.
	maxAmount = decimal.New(1, 12)
)

// Inputs outside these windows are rejected before any arithmetic so a
// short literal like "1e20000000" never expands into a huge coefficient.
const (
	minExponent    = -8
	maxExponent    = 12
	maxCoefficient = 63 // bits; keeps every operand within a machine word
)

// ComputeFee returns amount × percent / 100 rounded to cents, half away from zero.
func ComputeFee(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Shift(-2).Round(2)
}

// bounded reports whether d has a small coefficient and exponent. It reads
// only the representation and never rescales.
func bounded(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < minExponent || exp > maxExponent {
		return false
	}
	return d.Coefficient().BitLen() <= maxCoefficient
}

func validateAmount(amount decimal.Decimal) error {
	if !bounded(amount) {
		return ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return ErrInvalidAmount.WithDetails("valor máximo excedido")
	}
	if !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount.WithDetails("no máximo duas casas decimais")
	}
	return nil
}

func validatePercent(percent decimal.Decimal) error {
	if !bounded(percent) {
		return ErrInvalidFeePercent
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return ErrInvalidFeePercent
	}
	return nil
}
