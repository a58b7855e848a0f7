package invoice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"tripbill/pkg/models"
)

// Validate checks an input before any computation. Every failing field is
// reported; the result matches each sentinel that applies via errors.Is.
func Validate(in *models.InvoiceInput) error {
	v := &validator{}
	v.customer(in.Customer)
	v.trip(in.Trip)
	v.rent(in.Rent)
	v.supplements(in)
	v.adjustments(in)
	return v.err()
}

// ValidateForIssue also requires the assigned invoice number.
func ValidateForIssue(in *models.InvoiceInput) error {
	var errs []error
	if strings.TrimSpace(in.InvoiceNumber) == "" {
		errs = append(errs, NewValidationError("invoice_number", in.InvoiceNumber, ErrMissingInvoiceNumber, ""))
	}
	if err := Validate(in); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type validator struct {
	errs []error
}

func (v *validator) add(field string, value interface{}, sentinel error, message string) {
	v.errs = append(v.errs, NewValidationError(field, value, sentinel, message))
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}

func (v *validator) nonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.add(field, d.String(), ErrNegativeAmount, "")
	}
}

func (v *validator) customer(c models.Customer) {
	if strings.TrimSpace(c.Name) == "" {
		v.add("customer.name", c.Name, ErrMissingCustomer, "")
	}
}

func (v *validator) trip(t models.Trip) {
	if t.StartKm < 0 {
		v.add("trip.start_km", t.StartKm, ErrNegativeReading, "")
	}
	if t.EndKm < 0 {
		v.add("trip.end_km", t.EndKm, ErrNegativeReading, "")
	}
	if t.FreeKm < 0 {
		v.add("trip.free_km", t.FreeKm, ErrNegativeReading, "free distance cannot be negative")
	}
	if t.StartKm >= 0 && t.EndKm >= 0 && t.EndKm < t.StartKm {
		v.add("trip.end_km", t.EndKm, ErrReadingOrder, fmt.Sprintf("end reading %d is below start reading %d", t.EndKm, t.StartKm))
	}
	if t.StartTime != nil && t.EndTime != nil && t.EndTime.Before(*t.StartTime) {
		v.add("trip.end_time", *t.EndTime, ErrTimeOrder, "")
	}
}

func (v *validator) rent(r models.Rent) {
	switch r.Type() {
	case models.RentFixed:
		v.nonNegative("rent.fixed.amount", r.Fixed.Amount)
		v.nonNegative("rent.fixed.charge_per_km", r.Fixed.ChargePerKm)
	case models.RentHourly:
		v.nonNegative("rent.hourly.hours", r.Hourly.Hours)
		v.nonNegative("rent.hourly.rate_per_hour", r.Hourly.RatePerHour)
		v.nonNegative("rent.hourly.charge_per_km", r.Hourly.ChargePerKm)
	case models.RentDaily:
		v.nonNegative("rent.daily.days", r.Daily.Days)
		v.nonNegative("rent.daily.rate_per_day", r.Daily.RatePerDay)
		v.nonNegative("rent.daily.fuel_charge_per_km", r.Daily.FuelChargePerKm)
	case models.RentPerKm:
		v.nonNegative("rent.per_km.rate_per_km", r.PerKm.RatePerKm)
	default:
		v.add("rent", nil, ErrRentVariant, "")
	}
}

func (v *validator) supplements(in *models.InvoiceInput) {
	for i, c := range in.AdditionalCosts {
		v.nonNegative(fmt.Sprintf("additional_costs[%d].amount", i), c.Amount)
	}
	v.allowance("driver_allowance", in.DriverAllowance)
	v.allowance("night_halt", in.NightHalt)
}

func (v *validator) allowance(field string, a *models.Allowance) {
	if a == nil {
		return
	}
	if a.Days < 0 {
		v.add(field+".days", a.Days, ErrNegativeAmount, "")
	}
	v.nonNegative(field+".per_day", a.PerDay)
}

func (v *validator) adjustments(in *models.InvoiceInput) {
	if in.GST != nil && in.IGST != nil {
		v.add("tax", "GST+IGST", ErrConflictingTax, "")
	}
	if in.GST != nil {
		v.nonNegative("gst.percentage", in.GST.Percentage)
	}
	if in.IGST != nil {
		v.nonNegative("igst.percentage", in.IGST.Percentage)
	}
	if in.Discount != nil {
		v.nonNegative("discount", *in.Discount)
	}
	v.nonNegative("advance", in.Advance)
}
