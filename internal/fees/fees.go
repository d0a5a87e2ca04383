// Package fees computes payment-processing fee deductions. All functions
// are pure; lookups that fail resolve to a zero fee so a misconfigured
// method can never block a payment confirmation.
package fees

import (
	"fmt"
	"math"
)

// Config maps a payment-method name to its fee percentage.
type Config map[string]float64

// MaxInstallments is the highest credit-card installment count offered.
const MaxInstallments = 12

// Fixed payment-method names. Credit card methods are parametrized by
// installment count, see CreditCardMethod.
const (
	MethodPix       = "Pix"
	MethodCash      = "Dinheiro"
	MethodDebitCard = "Cartão de Débito"
)

// CreditCardMethod builds the config key for a credit-card payment in n
// installments, e.g. "Cartão de Crédito (3x)". The result is an opaque
// lookup key; nothing in this package parses n back out of it.
func CreditCardMethod(n int) string {
	return fmt.Sprintf("Cartão de Crédito (%dx)", n)
}

// DefaultConfig returns a config covering every known method with a zero
// fee. Stored overrides are merged on top of it, so lookups against a
// merged config always find the known keys even when storage is empty.
func DefaultConfig() Config {
	cfg := Config{
		MethodPix:       0,
		MethodCash:      0,
		MethodDebitCard: 0,
	}
	for n := 1; n <= MaxInstallments; n++ {
		cfg[CreditCardMethod(n)] = 0
	}
	return cfg
}

// Percentage resolves the fee percentage for a method. Unknown methods,
// NaN and negative percentages all resolve to 0.
func Percentage(method string, cfg Config) float64 {
	pct, ok := cfg[method]
	if !ok || math.IsNaN(pct) || pct < 0 {
		return 0
	}
	return pct
}

// CalculateNetValue returns the amount the business receives after the
// fee for the given method is deducted.
//
// The raw discount is rounded to cents before the subtraction. Rounding
// the discount first (rather than the difference) keeps the result
// reproducible: the bulk recalculation relies on recomputing from the
// same gross value and config yielding the identical net value.
// The caller derives fee = amount - net without further rounding, so
// fee + net == amount holds exactly.
func CalculateNetValue(amount float64, method string, cfg Config) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount
	}
	pct := Percentage(method, cfg)
	if pct == 0 {
		return amount
	}
	discount := round2(amount * pct / 100)
	return round2(amount - discount)
}

// Round2 rounds a currency amount to cents, half away from zero.
func Round2(v float64) float64 {
	return round2(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
