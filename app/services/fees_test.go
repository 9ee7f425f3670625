package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFinalAmount(t *testing.T) {
	tests := []struct {
		name string
		base string
		pct  string
		flat string
		want string
	}{
		{"percentage then flat", "1000", "10", "50", "850"},
		{"no discounts", "1200.50", "0", "0", "1200.50"},
		{"percentage only", "2000", "25", "0", "1500"},
		{"flat only", "500", "0", "100", "400"},
		{"clamps at zero", "100", "0", "200", "0"},
		{"full percentage discount", "800", "100", "0", "0"},
		{"fractional percentage", "999.99", "12.5", "0", "874.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalAmount(d(tt.base), d(tt.pct), d(tt.flat))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestValidateDiscounts(t *testing.T) {
	assert.NoError(t, validateDiscounts(d("0"), d("0")))
	assert.NoError(t, validateDiscounts(d("100"), d("50")))

	var verr *ValidationError
	err := validateDiscounts(d("101"), d("0"))
	assert.ErrorAs(t, err, &verr)

	err = validateDiscounts(d("-1"), d("0"))
	assert.ErrorAs(t, err, &verr)

	err = validateDiscounts(d("0"), d("-10"))
	assert.ErrorAs(t, err, &verr)
}
