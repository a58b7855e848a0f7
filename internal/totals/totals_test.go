package totals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripbill/internal/rates"
	"tripbill/pkg/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func scenarioInput() *models.InvoiceInput {
	return &models.InvoiceInput{
		InvoiceNumber: "#00001",
		Customer:      models.Customer{Name: "Test Customer"},
		Trip:          models.Trip{StartKm: 1000, EndKm: 1350, FreeKm: 50},
		Rent:          models.Rent{Hourly: &models.HourlyRent{Hours: dec("15"), RatePerHour: dec("475"), ChargePerKm: dec("18")}},
		AdditionalCosts: []models.AdditionalCost{
			{Label: "Toll", Amount: dec("500")},
			{Label: "Parking", Amount: dec("200")},
		},
		DriverAllowance: &models.Allowance{Days: 2, PerDay: dec("400")},
		NightHalt:       &models.Allowance{Days: 1, PerDay: dec("300")},
		Discount:        ptr(dec("1000")),
		GST:             &models.TaxRate{Percentage: dec("5")},
		Advance:         dec("2000"),
	}
}

func TestComputeHourlyScenario(t *testing.T) {
	in := scenarioInput()

	b, err := Compute(FromInput(in, rates.LineItems(in)))
	require.NoError(t, err)

	assert.True(t, b.TaxableSubtotal.Equal(dec("12525")), b.TaxableSubtotal.String())
	assert.True(t, b.NonTaxableSubtotal.Equal(dec("1800")), b.NonTaxableSubtotal.String())
	assert.Equal(t, models.TaxGST, b.Tax.Regime)
	assert.True(t, b.Tax.Amount.Equal(dec("626.25")), b.Tax.Amount.String())
	assert.True(t, b.Unrounded.Equal(dec("11951.25")), b.Unrounded.String())
	assert.True(t, b.GrandTotal.Equal(dec("11951")), b.GrandTotal.String())
	assert.True(t, b.RoundOff.Equal(dec("-0.25")), b.RoundOff.String())

	pct, amt := b.Tax.Half()
	assert.True(t, pct.Equal(dec("2.5")))
	assert.True(t, amt.Equal(dec("313.125")))
	assert.True(t, b.TaxedSubtotal().Equal(dec("13151.25")))
}

func TestComputeRentOnly(t *testing.T) {
	in := &models.InvoiceInput{
		Trip: models.Trip{StartKm: 0, EndKm: 500, FreeKm: 50},
		Rent: models.Rent{PerKm: &models.DistanceRent{RatePerKm: dec("20.333")}},
	}

	b, err := Compute(FromInput(in, rates.LineItems(in)))
	require.NoError(t, err)

	assert.True(t, b.TaxableSubtotal.Equal(dec("9149.85")))
	assert.True(t, b.NonTaxableSubtotal.IsZero())
	assert.Equal(t, models.TaxNone, b.Tax.Regime)
	assert.True(t, b.Tax.Amount.IsZero())
	assert.True(t, b.Discount.IsZero())
	assert.True(t, b.Advance.IsZero())
	assert.True(t, b.GrandTotal.Equal(dec("9150")))
	assert.True(t, b.RoundOff.Equal(dec("0.15")))
}

func TestComputeConflictingTax(t *testing.T) {
	_, err := Compute(Params{
		GST:  &models.TaxRate{Percentage: dec("5")},
		IGST: &models.TaxRate{Percentage: dec("5")},
	})
	assert.ErrorIs(t, err, ErrConflictingTax)
}

func TestComputeTaxIgnoresSupplements(t *testing.T) {
	items := []models.LineItem{
		{Amount: dec("1000"), Category: models.Rental},
		{Amount: dec("700"), Category: models.Supplement},
	}
	b, err := Compute(Params{Items: items, IGST: &models.TaxRate{Percentage: dec("12")}})
	require.NoError(t, err)

	assert.Equal(t, models.TaxIGST, b.Tax.Regime)
	assert.True(t, b.Tax.Amount.Equal(dec("120")))
	assert.True(t, b.GrandTotal.Equal(dec("1820")))
}

func TestComputeNegativeTotalNotClamped(t *testing.T) {
	items := []models.LineItem{{Amount: dec("500"), Category: models.Rental}}
	b, err := Compute(Params{Items: items, Discount: ptr(dec("800")), Advance: dec("100.4")})
	require.NoError(t, err)

	assert.True(t, b.Unrounded.Equal(dec("-400.4")))
	assert.True(t, b.GrandTotal.Equal(dec("-400")))
	assert.True(t, b.RoundOff.Equal(dec("0.4")))
}

func TestRoundOffInvariant(t *testing.T) {
	for _, s := range []string{"0", "0.5", "1.49", "1.5", "-1.5", "-2.51", "11951.25", "99999.999"} {
		u := dec(s)
		g := RoundRupee(u)
		assert.True(t, g.Equal(g.Truncate(0)), "grand total %s must be whole", g)
		assert.True(t, g.Sub(u).Abs().LessThanOrEqual(dec("0.5")), s)
	}
	assert.True(t, RoundRupee(dec("11.5")).Equal(dec("12")))
	assert.True(t, RoundRupee(dec("-11.5")).Equal(dec("-11")))
}

func TestComputeDeterministic(t *testing.T) {
	in := scenarioInput()
	first, err := Compute(FromInput(in, rates.LineItems(in)))
	require.NoError(t, err)
	second, err := Compute(FromInput(in, rates.LineItems(in)))
	require.NoError(t, err)

	assert.Equal(t, first.GrandTotal.String(), second.GrandTotal.String())
	assert.Equal(t, first.RoundOff.String(), second.RoundOff.String())
	assert.Equal(t, first.Unrounded.String(), second.Unrounded.String())
}

func TestTaxSwitchKeepsOneRegime(t *testing.T) {
	in := scenarioInput()
	in.EnableIGST(dec("18"))
	in.EnableGST(dec("5"))

	b, err := Compute(FromInput(in, rates.LineItems(in)))
	require.NoError(t, err)
	assert.Nil(t, in.IGST)
	assert.Equal(t, models.TaxGST, b.Tax.Regime)

	in.EnableIGST(dec("18"))
	b, err = Compute(FromInput(in, rates.LineItems(in)))
	require.NoError(t, err)
	assert.Nil(t, in.GST)
	assert.Equal(t, models.TaxIGST, b.Tax.Regime)
}
