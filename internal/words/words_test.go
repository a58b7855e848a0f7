package words

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupees(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "Zero Rupees Only"},
		{"hundred", "100", "One Hundred Rupees Only"},
		{"one lakh", "100000", "One Lakh Rupees Only"},
		{"with paise", "150.50", "One Hundred And Fifty Rupees And Fifty Paise Only"},
		{"teens", "17", "Seventeen Rupees Only"},
		{"round tens", "90", "Ninety Rupees Only"},
		{"scenario total", "11951", "Eleven Thousand Nine Hundred And Fifty One Rupees Only"},
		{"crore", "12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred And Seventy Eight Rupees Only"},
		{"hundred crore", "1000000000", "One Hundred Crore Rupees Only"},
		{"thousand crore", "10000000000", "One Thousand Crore Rupees Only"},
		{"paise only", "0.05", "Zero Rupees And Five Paise Only"},
		{"paise rounding carries", "9.999", "Ten Rupees Only"},
		{"negative", "-250", "Minus Two Hundred And Fifty Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rupees(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestRupeesPaiseClause(t *testing.T) {
	got := Rupees(decimal.RequireFromString("150.50"))
	assert.Contains(t, got, "One Hundred And Fifty Rupees")
	assert.Contains(t, got, " And Fifty Paise")
}

func TestInteger(t *testing.T) {
	assert.Equal(t, "", Integer(0))
	assert.Equal(t, "Five Lakh", Integer(500000))
	assert.Equal(t, "Ninety Nine Lakh Ninety Nine Thousand Nine Hundred And Ninety Nine", Integer(9999999))
}
