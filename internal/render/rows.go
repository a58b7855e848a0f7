package render

import (
	"fmt"
	"time"

	"tripbill/pkg/models"
)

// view is the read-only data every row spec is evaluated against.
type view struct {
	Sheet
	dist models.Distances
	loc  *time.Location
}

func newView(s Sheet, loc *time.Location) *view {
	return &view{Sheet: s, dist: s.Input.Trip.Distances(), loc: loc}
}

type predicate func(v *view) bool

// rowSpec is one "label : value" row, printed only when its predicate holds.
type rowSpec struct {
	label string
	value func(v *view) string
	when  predicate
	bold  bool
	wrap  float64 // wrap the value to this width; 0 prints one line
}

func (r *rowSpec) visible(v *view) bool {
	return r != nil && (r.when == nil || r.when(v))
}

// pairRow places one spec in each column of the trip block.
type pairRow struct {
	left, right *rowSpec
	when        predicate
}

// amountRow is one line of the totals column.
type amountRow struct {
	label  func(v *view) string
	amount func(v *view) string
	when   predicate
	gap    float64
}

func fixed(s string) func(*view) string { return func(*view) string { return s } }

var (
	hasCompany     predicate = func(v *view) bool { return v.Input.Customer.Company != "" }
	hasAddress     predicate = func(v *view) bool { return v.Input.Customer.Address != "" }
	hasGSTIN       predicate = func(v *view) bool { return v.Input.Customer.GSTIN != "" }
	hasVehicleType predicate = func(v *view) bool { return v.Input.Trip.VehicleType != "" }
	hasFreeKm      predicate = func(v *view) bool { return v.dist.Free > 0 }
	isGST          predicate = func(v *view) bool { return v.Totals.Tax.Regime == models.TaxGST }
	isIGST         predicate = func(v *view) bool { return v.Totals.Tax.Regime == models.TaxIGST }
	hasNonTaxable  predicate = func(v *view) bool { return v.Totals.NonTaxableSubtotal.IsPositive() }
	hasDiscount    predicate = func(v *view) bool { return v.Totals.Discount.IsPositive() }
	hasAdvance     predicate = func(v *view) bool { return v.Totals.Advance.IsPositive() }
)

var billToRows = []rowSpec{
	{label: "Customer Name", value: func(v *view) string { return orDash(v.Input.Customer.DisplayName()) }},
	{label: "Company", value: func(v *view) string { return v.Input.Customer.Company }, when: hasCompany},
	{label: "Address", value: func(v *view) string { return v.Input.Customer.Address }, when: hasAddress, wrap: 70},
	{label: "GST No", value: func(v *view) string { return v.Input.Customer.GSTIN }, when: hasGSTIN},
}

var invoiceDetailRows = []rowSpec{
	{label: "Invoice No", value: func(v *view) string { return v.Input.InvoiceNumber }},
	{label: "Date", value: func(v *view) string { return formatDate(v.IssuedAt, v.loc) }},
	{label: "Vehicle No", value: func(v *view) string { return orDash(v.Input.Trip.VehicleNo) }},
	{label: "Vehicle Type", value: func(v *view) string { return v.Input.Trip.VehicleType }, when: hasVehicleType},
	{label: "Driver Name", value: func(v *view) string { return orDash(v.Input.Trip.DriverName) }},
}

var tripRows = []pairRow{
	{
		left:  &rowSpec{label: "From", value: func(v *view) string { return orDash(v.Input.Trip.From) }},
		right: &rowSpec{label: "Trip Start", value: func(v *view) string { return formatDateTime(v.Input.Trip.StartTime, v.loc) }},
	},
	{
		left:  &rowSpec{label: "To", value: func(v *view) string { return orDash(v.Input.Trip.To) }},
		right: &rowSpec{label: "Trip End", value: func(v *view) string { return formatDateTime(v.Input.Trip.EndTime, v.loc) }},
	},
	{
		left:  &rowSpec{label: "Start KM", value: func(v *view) string { return km(v.Input.Trip.StartKm) }},
		right: &rowSpec{label: "End KM", value: func(v *view) string { return km(v.Input.Trip.EndKm) }},
	},
	{
		left:  &rowSpec{label: "Total KM", value: func(v *view) string { return km(v.dist.Total) }},
		right: &rowSpec{label: "Free KM", value: func(v *view) string { return km(v.dist.Free) }, when: hasFreeKm},
	},
	{
		left: &rowSpec{label: "Chargeable KM", value: func(v *view) string { return km(v.dist.Chargeable) }, bold: true},
		when: hasFreeKm,
	},
}

var totalsRows = []amountRow{
	{label: fixed("Sub Total"), amount: func(v *view) string { return money(v.Totals.TaxableSubtotal) }},
	{
		label:  func(v *view) string { pct, _ := v.Totals.Tax.Half(); return fmt.Sprintf("CGST %s%%", pct) },
		amount: func(v *view) string { _, amt := v.Totals.Tax.Half(); return money(amt) },
		when:   isGST,
	},
	{
		label:  func(v *view) string { pct, _ := v.Totals.Tax.Half(); return fmt.Sprintf("SGST %s%%", pct) },
		amount: func(v *view) string { _, amt := v.Totals.Tax.Half(); return money(amt) },
		when:   isGST,
	},
	{
		label:  func(v *view) string { return fmt.Sprintf("IGST %s%%", v.Totals.Tax.Percentage) },
		amount: func(v *view) string { return money(v.Totals.Tax.Amount) },
		when:   isIGST,
	},
	{
		label:  fixed("Taxable Sub Total"),
		amount: func(v *view) string { return money(v.Totals.TaxedSubtotal()) },
		when:   func(v *view) bool { return isGST(v) || isIGST(v) },
	},
	{label: fixed("Non Taxable Sub Total"), amount: func(v *view) string { return money(v.Totals.NonTaxableSubtotal) }, when: hasNonTaxable},
	{label: fixed("Discount"), amount: func(v *view) string { return deduction(v.Totals.Discount) }, when: hasDiscount},
	{label: fixed("Advance"), amount: func(v *view) string { return deduction(v.Totals.Advance) }, when: hasAdvance},
	{label: fixed("Round Off"), amount: func(v *view) string { return money(v.Totals.RoundOff) }, gap: 8},
}

// visibleTotals lists the totals lines that apply to this sheet, in print order.
func visibleTotals(v *view) []amountRow {
	var rows []amountRow
	for _, row := range totalsRows {
		if row.when == nil || row.when(v) {
			rows = append(rows, row)
		}
	}
	return rows
}
