package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripbill/pkg/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceRentalHourly(t *testing.T) {
	rent := models.Rent{Hourly: &models.HourlyRent{Hours: dec("15"), RatePerHour: dec("475"), ChargePerKm: dec("18")}}

	items := PriceRental(rent, models.NewDistances(350, 50))

	require.Len(t, items, 2)
	assert.Equal(t, "Vehicle Rent (15 hrs @ Rs475/hr)", items[0].Description)
	assert.True(t, items[0].Amount.Equal(dec("7125")))
	assert.Equal(t, "KM Charges (300 km @ Rs18/km)", items[1].Description)
	assert.True(t, items[1].Amount.Equal(dec("5400")))
	for _, it := range items {
		assert.Equal(t, models.Rental, it.Category)
	}
}

func TestPriceRentalPerKm(t *testing.T) {
	rent := models.Rent{PerKm: &models.DistanceRent{RatePerKm: dec("20")}}

	t.Run("with free distance", func(t *testing.T) {
		items := PriceRental(rent, models.NewDistances(500, 50))
		require.Len(t, items, 1)
		assert.Equal(t, "Vehicle Rent (500 km - 50 free km = 450 km @ Rs20/km)", items[0].Description)
		assert.True(t, items[0].Amount.Equal(dec("9000")))
	})

	t.Run("without free distance", func(t *testing.T) {
		items := PriceRental(rent, models.NewDistances(450, 0))
		require.Len(t, items, 1)
		assert.Equal(t, "Vehicle Rent (450 km @ Rs20/km)", items[0].Description)
	})
}

func TestPriceRentalFixedAndDaily(t *testing.T) {
	fixed := models.Rent{Fixed: &models.FixedRent{Amount: dec("3000"), ChargePerKm: dec("12.5")}}
	items := PriceRental(fixed, models.NewDistances(120, 20))
	require.Len(t, items, 2)
	assert.Equal(t, "Vehicle Rent (Fixed Amount)", items[0].Description)
	assert.Equal(t, "KM Charges (100 km @ Rs12.5/km)", items[1].Description)
	assert.True(t, items[1].Amount.Equal(dec("1250")))

	daily := models.Rent{Daily: &models.DailyRent{Days: dec("2"), RatePerDay: dec("2500"), FuelChargePerKm: dec("9")}}
	items = PriceRental(daily, models.NewDistances(100, 0))
	require.Len(t, items, 2)
	assert.Equal(t, "Vehicle Rent (2 days @ Rs2500/day)", items[0].Description)
	assert.Equal(t, "Fuel Charges (100 km @ Rs9/km)", items[1].Description)
	assert.True(t, items[1].Amount.Equal(dec("900")))
}

func TestPriceRentalOmitsZeroRows(t *testing.T) {
	tests := []struct {
		name string
		rent models.Rent
	}{
		{"fixed without surcharge", models.Rent{Fixed: &models.FixedRent{Amount: dec("1000")}}},
		{"hourly without surcharge", models.Rent{Hourly: &models.HourlyRent{Hours: dec("4"), RatePerHour: dec("300")}}},
		{"daily without fuel", models.Rent{Daily: &models.DailyRent{Days: dec("1"), RatePerDay: dec("2000")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, PriceRental(tt.rent, models.NewDistances(100, 0)), 1)
		})
	}

	assert.Empty(t, PriceRental(models.Rent{Fixed: &models.FixedRent{}}, models.NewDistances(100, 0)))
	assert.Empty(t, PriceRental(models.Rent{}, models.NewDistances(100, 0)))
}

func TestChargeableDistanceNeverNegative(t *testing.T) {
	d := models.NewDistances(40, 100)
	assert.Equal(t, int64(0), d.Chargeable)

	variants := []models.Rent{
		{Fixed: &models.FixedRent{ChargePerKm: dec("10")}},
		{Hourly: &models.HourlyRent{ChargePerKm: dec("10")}},
		{Daily: &models.DailyRent{FuelChargePerKm: dec("10")}},
		{PerKm: &models.DistanceRent{RatePerKm: dec("10")}},
	}
	for _, rent := range variants {
		for _, it := range PriceRental(rent, d) {
			assert.False(t, it.Amount.IsNegative())
		}
	}
}

func TestSupplements(t *testing.T) {
	in := &models.InvoiceInput{
		AdditionalCosts: []models.AdditionalCost{{Label: "Toll", Amount: dec("500")}, {Label: "Parking", Amount: dec("200")}},
		DriverAllowance: &models.Allowance{Days: 2, PerDay: dec("400")},
		NightHalt:       &models.Allowance{Days: 1, PerDay: dec("300")},
	}

	items := Supplements(in)

	require.Len(t, items, 4)
	assert.Equal(t, "Toll", items[0].Description)
	assert.Equal(t, "Parking", items[1].Description)
	assert.Equal(t, "Driver Beta (2 days @ Rs400/day)", items[2].Description)
	assert.True(t, items[2].Amount.Equal(dec("800")))
	assert.Equal(t, "Night Halt (1 days @ Rs300/day)", items[3].Description)
	for _, it := range items {
		assert.Equal(t, models.Supplement, it.Category)
	}
}
