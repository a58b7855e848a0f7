package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceInput is the complete record a tax invoice is generated from.
// It is fully populated before computation; generation never mutates it.
type InvoiceInput struct {
	// InvoiceNumber is the externally minted, already formatted sequence number (e.g. "#00001").
	InvoiceNumber string `json:"invoice_number"`

	Customer Customer `json:"customer"`
	Trip     Trip     `json:"trip"`
	Rent     Rent     `json:"rent"`

	// Supplemental, non-taxable charges
	AdditionalCosts []AdditionalCost `json:"additional_costs,omitempty"`
	DriverAllowance *Allowance       `json:"driver_allowance,omitempty"` // printed as "Driver Beta"
	NightHalt       *Allowance       `json:"night_halt,omitempty"`

	// Adjustments. A nil pointer means the adjustment is disabled.
	Discount *decimal.Decimal `json:"discount,omitempty"`
	GST      *TaxRate         `json:"gst,omitempty"`
	IGST     *TaxRate         `json:"igst,omitempty"`
	Advance  decimal.Decimal  `json:"advance"`
}

// Customer holds the bill-to party. Every field may be empty except Name.
type Customer struct {
	Title   string `json:"title,omitempty"` // Mr, Mrs, Ms, Dr, M/S
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// DisplayName returns the name prefixed with the title, e.g. "Mr. Ravi".
func (c Customer) DisplayName() string {
	if c.Title == "" {
		return c.Name
	}
	return c.Title + ". " + c.Name
}

// Trip describes the vehicle, the route and the odometer/time readings.
type Trip struct {
	DriverName  string     `json:"driver_name,omitempty"`
	VehicleNo   string     `json:"vehicle_no,omitempty"`
	VehicleType string     `json:"vehicle_type,omitempty"`
	From        string     `json:"from,omitempty"`
	To          string     `json:"to,omitempty"`
	StartKm     int64      `json:"start_km"`
	EndKm       int64      `json:"end_km"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	FreeKm      int64      `json:"free_km"`
}

// Distances derives total, free and chargeable distance from the readings.
func (t Trip) Distances() Distances {
	return NewDistances(t.EndKm-t.StartKm, t.FreeKm)
}

// Distances are whole kilometres. Chargeable is never negative.
type Distances struct {
	Total      int64
	Free       int64
	Chargeable int64
}

// NewDistances clamps the chargeable distance at zero when the free allowance exceeds the trip.
func NewDistances(total, free int64) Distances {
	chargeable := total - free
	if chargeable < 0 {
		chargeable = 0
	}
	return Distances{Total: total, Free: free, Chargeable: chargeable}
}

// Rent carries exactly one pricing variant.
type Rent struct {
	Fixed  *FixedRent    `json:"fixed,omitempty"`
	Hourly *HourlyRent   `json:"hourly,omitempty"`
	Daily  *DailyRent    `json:"daily,omitempty"`
	PerKm  *DistanceRent `json:"per_km,omitempty"`
}

// RentType names the selected variant ("" when none or several are set).
type RentType string

const (
	RentFixed  RentType = "fixed"
	RentHourly RentType = "hour"
	RentDaily  RentType = "day"
	RentPerKm  RentType = "km"
)

// Type reports the single selected variant, or "" if the selection is invalid.
func (r Rent) Type() RentType {
	var selected []RentType
	if r.Fixed != nil {
		selected = append(selected, RentFixed)
	}
	if r.Hourly != nil {
		selected = append(selected, RentHourly)
	}
	if r.Daily != nil {
		selected = append(selected, RentDaily)
	}
	if r.PerKm != nil {
		selected = append(selected, RentPerKm)
	}
	if len(selected) != 1 {
		return ""
	}
	return selected[0]
}

// FixedRent is a flat amount plus an optional per-km charge on chargeable distance.
type FixedRent struct {
	Amount      decimal.Decimal `json:"amount"`
	ChargePerKm decimal.Decimal `json:"charge_per_km"`
}

// HourlyRent is hours × rate plus an optional per-km charge on chargeable distance.
type HourlyRent struct {
	Hours       decimal.Decimal `json:"hours"`
	RatePerHour decimal.Decimal `json:"rate_per_hour"`
	ChargePerKm decimal.Decimal `json:"charge_per_km"`
}

// DailyRent is days × rate plus an optional fuel charge per chargeable km.
type DailyRent struct {
	Days            decimal.Decimal `json:"days"`
	RatePerDay      decimal.Decimal `json:"rate_per_day"`
	FuelChargePerKm decimal.Decimal `json:"fuel_charge_per_km"`
}

// DistanceRent bills chargeable distance only.
type DistanceRent struct {
	RatePerKm decimal.Decimal `json:"rate_per_km"`
}

// AdditionalCost is a labelled incidental charge such as toll or parking.
type AdditionalCost struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Allowance is a per-diem charge (driver beta, night halt).
type Allowance struct {
	Days   int64           `json:"days"`
	PerDay decimal.Decimal `json:"per_day"`
}

// Total returns days × per-diem amount.
func (a Allowance) Total() decimal.Decimal {
	return a.PerDay.Mul(decimal.NewFromInt(a.Days))
}

// TaxRate is a percentage, e.g. 5 for 5%.
type TaxRate struct {
	Percentage decimal.Decimal `json:"percentage"`
}

// Category partitions line items for taxation. The partition is fixed by business rule.
type Category int

const (
	// Rental charges are taxable.
	Rental Category = iota
	// Supplement charges (additional costs, driver beta, night halt) are not.
	Supplement
)

// String returns "rental" or "supplement".
func (c Category) String() string {
	if c == Rental {
		return "rental"
	}
	return "supplement"
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// LineItem is one printed row of the items table.
type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
}

// EnableGST selects intra-state GST and disables IGST.
func (in *InvoiceInput) EnableGST(percentage decimal.Decimal) {
	in.GST = &TaxRate{Percentage: percentage}
	in.IGST = nil
}

// EnableIGST selects inter-state IGST and disables GST.
func (in *InvoiceInput) EnableIGST(percentage decimal.Decimal) {
	in.IGST = &TaxRate{Percentage: percentage}
	in.GST = nil
}
