package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"tripbill/internal/config"
	"tripbill/internal/invoice"
	"tripbill/internal/logger"
	"tripbill/internal/payqr"
	"tripbill/internal/words"
	"tripbill/pkg/models"
)

var previewCmd = &cobra.Command{
	Use:   "preview [input.json]",
	Short: "Show the line items and totals of a trip without issuing an invoice",
	Long: `Price a trip record and print the line items and totals exactly as they
would appear on the invoice. No invoice number is consumed and no file is
written.`,
	Example: `  # Print the preview as a table
  tripbill preview trip.json

  # Print the preview as JSON
  tripbill preview trip.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Bool("json", false, "Output in JSON format")
}

// PreviewOutput is the JSON form of a preview.
type PreviewOutput struct {
	InvoiceNumber string                 `json:"invoice_number,omitempty"`
	Customer      string                 `json:"customer"`
	Items         []models.LineItem      `json:"items"`
	Totals        models.TotalsBreakdown `json:"totals"`
	AmountInWords string                 `json:"amount_in_words"`
	PaymentURI    string                 `json:"payment_uri,omitempty"`
}

func runPreview(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("preview")

	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	in, err := loadInput(args[0], log)
	if err != nil {
		return err
	}

	prepared, err := invoice.Prepare(in)
	if err != nil {
		return handleGenerateError(err, log)
	}

	out := PreviewOutput{
		InvoiceNumber: in.InvoiceNumber,
		Customer:      in.Customer.DisplayName(),
		Items:         prepared.Items,
		Totals:        prepared.Totals,
		AmountInWords: words.Rupees(prepared.Totals.GrandTotal),
	}
	if cfg.UPIHandle != "" && prepared.Totals.GrandTotal.IsPositive() {
		out.PaymentURI = payqr.URI(payqr.Payee{Handle: cfg.UPIHandle, Name: cfg.UPIPayeeName}, prepared.Totals.GrandTotal)
	}

	log.Debug().
		Int("items", len(out.Items)).
		Str("grand_total", out.Totals.GrandTotal.StringFixed(2)).
		Msg("Preview computed")

	if asJSON {
		return printJSON(out)
	}

	printPreview(os.Stdout, out)
	return nil
}

func printPreview(w io.Writer, out PreviewOutput) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintln(w, "                          INVOICE PREVIEW")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	if out.InvoiceNumber != "" {
		fmt.Fprintf(w, "Invoice No: %s\n", out.InvoiceNumber)
	}
	fmt.Fprintf(w, "Customer:   %s\n\n", out.Customer)

	fmt.Fprintf(w, "%-4s %-48s %15s\n", "#", "Description", "Amount")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for i, item := range out.Items {
		desc := item.Description
		if item.Category == models.Supplement {
			desc += " *"
		}
		fmt.Fprintf(w, "%-4d %-48s %15s\n", i+1, desc, item.Amount.StringFixed(2))
	}
	fmt.Fprintln(w, strings.Repeat("-", 70))

	t := out.Totals
	line := func(label string, v decimal.Decimal) {
		fmt.Fprintf(w, "%53s %15s\n", label, v.StringFixed(2))
	}
	line("Sub Total", t.TaxableSubtotal)
	switch t.Tax.Regime {
	case models.TaxGST:
		pct, amt := t.Tax.Half()
		line(fmt.Sprintf("CGST %s%%", pct.String()), amt)
		line(fmt.Sprintf("SGST %s%%", pct.String()), amt)
	case models.TaxIGST:
		line(fmt.Sprintf("IGST %s%%", t.Tax.Percentage.String()), t.Tax.Amount)
	}
	if !t.NonTaxableSubtotal.IsZero() {
		line("Non Taxable Sub Total *", t.NonTaxableSubtotal)
	}
	if !t.Discount.IsZero() {
		line("Discount", t.Discount.Neg())
	}
	if !t.Advance.IsZero() {
		line("Advance", t.Advance.Neg())
	}
	line("Round Off", t.RoundOff)
	fmt.Fprintln(w, strings.Repeat("-", 70))
	line("Grand Total", t.GrandTotal)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Amount in words: %s\n", out.AmountInWords)
	if out.PaymentURI != "" {
		fmt.Fprintf(w, "UPI payment:     %s\n", out.PaymentURI)
	}
	fmt.Fprintln(w, "* not taxable")
}
