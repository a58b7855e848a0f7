// Package rates prices a trip for the selected rental variant and lists the
// supplemental charges, producing line items in their literal print order.
package rates

import (
	"fmt"

	"github.com/shopspring/decimal"
	"tripbill/pkg/models"
)

// PriceRental emits the taxable rental rows for the selected variant.
// Zero-valued components are omitted; a rent with no selected variant yields no rows.
func PriceRental(rent models.Rent, d models.Distances) []models.LineItem {
	var items []models.LineItem
	add := func(description string, amount decimal.Decimal) {
		if amount.IsPositive() {
			items = append(items, models.LineItem{Description: description, Amount: amount, Category: models.Rental})
		}
	}
	km := decimal.NewFromInt(d.Chargeable)

	switch {
	case rent.Fixed != nil:
		r := rent.Fixed
		add("Vehicle Rent (Fixed Amount)", r.Amount)
		add(kmCharges("KM Charges", d.Chargeable, r.ChargePerKm), km.Mul(r.ChargePerKm))
	case rent.Hourly != nil:
		r := rent.Hourly
		add(fmt.Sprintf("Vehicle Rent (%s hrs @ Rs%s/hr)", r.Hours, r.RatePerHour), r.Hours.Mul(r.RatePerHour))
		add(kmCharges("KM Charges", d.Chargeable, r.ChargePerKm), km.Mul(r.ChargePerKm))
	case rent.Daily != nil:
		r := rent.Daily
		add(fmt.Sprintf("Vehicle Rent (%s days @ Rs%s/day)", r.Days, r.RatePerDay), r.Days.Mul(r.RatePerDay))
		add(kmCharges("Fuel Charges", d.Chargeable, r.FuelChargePerKm), km.Mul(r.FuelChargePerKm))
	case rent.PerKm != nil:
		add(DistanceDescription(d, rent.PerKm.RatePerKm), km.Mul(rent.PerKm.RatePerKm))
	}

	return items
}

// DistanceDescription states the free-distance deduction when there is one:
// "Vehicle Rent (500 km - 50 free km = 450 km @ Rs20/km)".
func DistanceDescription(d models.Distances, rate decimal.Decimal) string {
	if d.Free > 0 {
		return fmt.Sprintf("Vehicle Rent (%d km - %d free km = %d km @ Rs%s/km)", d.Total, d.Free, d.Chargeable, rate)
	}
	return fmt.Sprintf("Vehicle Rent (%d km @ Rs%s/km)", d.Chargeable, rate)
}

func kmCharges(label string, km int64, rate decimal.Decimal) string {
	return fmt.Sprintf("%s (%d km @ Rs%s/km)", label, km, rate)
}

// Supplements lists the non-taxable rows: additional costs in input order,
// then driver beta and night halt when enabled.
func Supplements(in *models.InvoiceInput) []models.LineItem {
	items := make([]models.LineItem, 0, len(in.AdditionalCosts)+2)
	for _, cost := range in.AdditionalCosts {
		items = append(items, models.LineItem{Description: cost.Label, Amount: cost.Amount, Category: models.Supplement})
	}
	if a := in.DriverAllowance; a != nil {
		items = append(items, models.LineItem{
			Description: fmt.Sprintf("Driver Beta (%d days @ Rs%s/day)", a.Days, a.PerDay),
			Amount:      a.Total(),
			Category:    models.Supplement,
		})
	}
	if a := in.NightHalt; a != nil {
		items = append(items, models.LineItem{
			Description: fmt.Sprintf("Night Halt (%d days @ Rs%s/day)", a.Days, a.PerDay),
			Amount:      a.Total(),
			Category:    models.Supplement,
		})
	}
	return items
}

// LineItems is the full items table: rental rows followed by supplements.
func LineItems(in *models.InvoiceInput) []models.LineItem {
	items := PriceRental(in.Rent, in.Trip.Distances())
	return append(items, Supplements(in)...)
}
