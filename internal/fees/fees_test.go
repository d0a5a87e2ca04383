package fees

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Len(t, cfg, 3+MaxInstallments)
	assert.Contains(t, cfg, MethodPix)
	assert.Contains(t, cfg, MethodCash)
	assert.Contains(t, cfg, MethodDebitCard)
	assert.Contains(t, cfg, "Cartão de Crédito (1x)")
	assert.Contains(t, cfg, "Cartão de Crédito (12x)")

	for method, pct := range cfg {
		assert.Zerof(t, pct, "default fee for %s should be zero", method)
	}
}

func TestCreditCardMethod(t *testing.T) {
	assert.Equal(t, "Cartão de Crédito (1x)", CreditCardMethod(1))
	assert.Equal(t, "Cartão de Crédito (12x)", CreditCardMethod(12))
}

func TestPercentage(t *testing.T) {
	cfg := Config{"Pix": 1.5, "Quebrado": math.NaN(), "Negativo": -3}

	assert.Equal(t, 1.5, Percentage("Pix", cfg))
	assert.Zero(t, Percentage("Método Inexistente", cfg))
	assert.Zero(t, Percentage("Quebrado", cfg))
	assert.Zero(t, Percentage("Negativo", cfg))
}

func TestCalculateNetValue(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		method string
		cfg    Config
		want   float64
	}{
		{"zero fee returns amount", 100.00, "Pix", Config{"Pix": 0}, 100.00},
		{"unknown method is fee free", 100.00, "Método Inexistente", Config{"Pix": 2}, 100.00},
		{"whole percentage", 200.00, "Cartão de Débito", Config{"Cartão de Débito": 2}, 196.00},
		{"installment method", 150.00, "Cartão de Crédito (3x)", Config{"Cartão de Crédito (3x)": 4.5}, 143.25},
		{"discount rounds before subtraction", 33.33, "Cartão de Débito", Config{"Cartão de Débito": 3}, 32.33},
		{"zero amount", 0, "Pix", Config{"Pix": 5}, 0},
		{"negative percentage ignored", 100.00, "Pix", Config{"Pix": -10}, 100.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateNetValue(tt.amount, tt.method, tt.cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateNetValue_RoundingExample(t *testing.T) {
	// 33.33 at 3% -> raw discount 0.9999 -> rounds to 1.00 before the
	// subtraction, so net is 32.33 and the derived fee exactly 1.00.
	cfg := Config{"Pix": 3}

	net := CalculateNetValue(33.33, "Pix", cfg)
	fee := 33.33 - net

	assert.Equal(t, 32.33, net)
	assert.InDelta(t, 1.00, fee, 1e-9)
}

func TestCalculateNetValue_FeePlusNetEqualsAmount(t *testing.T) {
	cfg := Config{"Cartão de Crédito (3x)": 4.5}

	amounts := []float64{0.01, 1, 33.33, 99.99, 150, 1234.56, 10000}
	for _, amount := range amounts {
		net := CalculateNetValue(amount, "Cartão de Crédito (3x)", cfg)
		fee := amount - net
		assert.Equalf(t, amount, fee+net, "fee + net must reconstruct %v exactly", amount)
	}
}

func TestCalculateNetValue_Deterministic(t *testing.T) {
	cfg := Config{"Pix": 1.99}

	first := CalculateNetValue(87.65, "Pix", cfg)
	second := CalculateNetValue(87.65, "Pix", cfg)

	assert.Equal(t, first, second)
}

func TestCalculateNetValue_InvalidAmountFailsOpen(t *testing.T) {
	cfg := Config{"Pix": 3}

	assert.True(t, math.IsNaN(CalculateNetValue(math.NaN(), "Pix", cfg)))
	assert.True(t, math.IsInf(CalculateNetValue(math.Inf(1), "Pix", cfg), 1))
}

func TestCalculateNetValue_NilConfig(t *testing.T) {
	assert.Equal(t, 100.00, CalculateNetValue(100.00, "Pix", nil))
}
