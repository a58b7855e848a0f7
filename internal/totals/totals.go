// Package totals aggregates priced line items into the taxable/non-taxable
// subtotals, applies GST or IGST, discount and advance, and rounds the
// grand total to whole rupees with an explicit round-off line.
//
// The same computation backs both the on-screen quote and the printed
// invoice; there is no separate clamped preview formula.
package totals

import (
	"errors"

	"github.com/shopspring/decimal"
	"tripbill/pkg/models"
)

// ErrConflictingTax is returned when both GST and IGST are enabled.
var ErrConflictingTax = errors.New("GST and IGST cannot both be enabled")

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

// Params are the inputs of Compute. A nil pointer disables that adjustment.
type Params struct {
	Items    []models.LineItem
	Discount *decimal.Decimal
	GST      *models.TaxRate
	IGST     *models.TaxRate
	Advance  decimal.Decimal
}

// FromInput builds Params for an invoice record and its line items.
func FromInput(in *models.InvoiceInput, items []models.LineItem) Params {
	return Params{
		Items:    items,
		Discount: in.Discount,
		GST:      in.GST,
		IGST:     in.IGST,
		Advance:  in.Advance,
	}
}

// Compute produces the totals breakdown. Negative intermediate and final
// totals are kept as they are.
func Compute(p Params) (models.TotalsBreakdown, error) {
	var b models.TotalsBreakdown

	if p.GST != nil && p.IGST != nil {
		return b, ErrConflictingTax
	}

	for _, it := range p.Items {
		switch it.Category {
		case models.Rental:
			b.TaxableSubtotal = b.TaxableSubtotal.Add(it.Amount)
		default:
			b.NonTaxableSubtotal = b.NonTaxableSubtotal.Add(it.Amount)
		}
	}

	switch {
	case p.GST != nil:
		b.Tax = levy(models.TaxGST, p.GST.Percentage, b.TaxableSubtotal)
	case p.IGST != nil:
		b.Tax = levy(models.TaxIGST, p.IGST.Percentage, b.TaxableSubtotal)
	}

	if p.Discount != nil {
		b.Discount = *p.Discount
	}
	b.Advance = p.Advance

	// discount before advance
	b.Unrounded = b.TaxableSubtotal.
		Add(b.Tax.Amount).
		Add(b.NonTaxableSubtotal).
		Sub(b.Discount).
		Sub(b.Advance)
	b.GrandTotal = RoundRupee(b.Unrounded)
	b.RoundOff = b.GrandTotal.Sub(b.Unrounded)

	return b, nil
}

func levy(regime models.TaxRegime, percentage, base decimal.Decimal) models.Tax {
	return models.Tax{
		Regime:     regime,
		Percentage: percentage,
		Amount:     base.Mul(percentage).Div(hundred),
	}
}

// RoundRupee rounds to the nearest whole rupee, halves towards positive
// infinity (11.5 -> 12, -11.5 -> -11).
func RoundRupee(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}
