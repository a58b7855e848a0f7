package models

import "github.com/shopspring/decimal"

// TaxRegime identifies which of the mutually exclusive taxes applies.
type TaxRegime string

const (
	TaxNone TaxRegime = ""
	TaxGST  TaxRegime = "GST"
	TaxIGST TaxRegime = "IGST"
)

// Tax is the single tax computed on the taxable subtotal.
type Tax struct {
	Regime     TaxRegime       `json:"regime,omitempty"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// Half splits a GST amount and rate into its equal CGST/SGST display components.
func (t Tax) Half() (percentage, amount decimal.Decimal) {
	two := decimal.NewFromInt(2)
	return t.Percentage.Div(two), t.Amount.Div(two)
}

// TotalsBreakdown is the fully itemised result of the totals computation.
// GrandTotal = round(TaxableSubtotal + Tax.Amount + NonTaxableSubtotal - Discount - Advance)
// and RoundOff = GrandTotal - Unrounded.
type TotalsBreakdown struct {
	TaxableSubtotal    decimal.Decimal `json:"taxable_subtotal"`
	NonTaxableSubtotal decimal.Decimal `json:"non_taxable_subtotal"`
	Tax                Tax             `json:"tax"`
	Discount           decimal.Decimal `json:"discount"`
	Advance            decimal.Decimal `json:"advance"`
	Unrounded          decimal.Decimal `json:"unrounded"`
	RoundOff           decimal.Decimal `json:"round_off"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
}

// TaxedSubtotal is the taxable subtotal including its tax.
func (b TotalsBreakdown) TaxedSubtotal() decimal.Decimal {
	return b.TaxableSubtotal.Add(b.Tax.Amount)
}
