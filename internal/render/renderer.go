package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"tripbill/internal/logger"
	"tripbill/internal/payqr"
	"tripbill/pkg/models"
)

// DefaultFilePrefix is prepended to every generated file name.
const DefaultFilePrefix = "INV"

var ErrIncompleteSheet = errors.New("sheet has no input")

// Sheet is everything printed on one invoice.
type Sheet struct {
	Input    *models.InvoiceInput
	Items    []models.LineItem
	Totals   models.TotalsBreakdown
	IssuedAt time.Time
}

// Document is a rendered invoice.
type Document struct {
	Bytes    []byte
	FileName string
	Pages    int
	HasQR    bool
}

// QRBuilder produces the payment code for a grand total.
type QRBuilder func(p payqr.Payee, amount decimal.Decimal) (*payqr.Code, error)

// Renderer lays invoices out on a fixed A4 grid.
type Renderer struct {
	letterhead Letterhead
	loc        *time.Location
	prefix     string
	qr         QRBuilder
	logger     zerolog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLocation sets the time zone dates are printed in.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithFilePrefix replaces DefaultFilePrefix.
func WithFilePrefix(prefix string) Option {
	return func(r *Renderer) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithQRBuilder replaces payqr.Build.
func WithQRBuilder(b QRBuilder) Option {
	return func(r *Renderer) { r.qr = b }
}

// NewRenderer creates a renderer printing under the given letterhead.
func NewRenderer(lh Letterhead, opts ...Option) *Renderer {
	r := &Renderer{
		letterhead: lh,
		loc:        time.UTC,
		prefix:     DefaultFilePrefix,
		qr:         payqr.Build,
		logger:     logger.WithComponent("render"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the PDF for a sheet. A payment code that cannot be built
// or embedded is logged and left out; the document is still produced.
func (r *Renderer) Render(s Sheet) (*Document, error) {
	const op = "render.Render"

	if s.Input == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrIncompleteSheet)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(s.IssuedAt)
	pdf.SetModificationDate(s.IssuedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Tax Invoice "+s.Input.InvoiceNumber, false)
	pdf.SetAuthor(r.letterhead.CompanyName, false)
	pdf.AddPage()

	p := newPage(pdf)
	v := newView(s, r.loc)

	c := p.header(r.letterhead, Cursor{})
	c = p.parties(v, c)
	c = p.trip(v, c)
	c = p.itemsTable(s.Items, c.Down(5))
	c = c.Down(10)

	if c.Y > totalsBreakY {
		pdf.AddPage()
		c = Cursor{Y: topOnNewPage}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%s: layout failed: %w", op, err)
	}

	code := r.paymentCode(s.Input.InvoiceNumber, s.Totals.GrandTotal)
	bankEnd := p.bank(r.letterhead, code, c)
	if code != nil && !pdf.Ok() {
		r.logger.Warn().
			Err(pdf.Error()).
			Str("invoice_number", s.Input.InvoiceNumber).
			Msg("Failed to embed payment QR code, continuing without it")
		pdf.ClearError()
		code = nil
	}
	totalsEnd := p.totals(v, c)

	p.grandTotal(s.Totals, Lowest(bankEnd, totalsEnd))
	p.footer(r.letterhead.FooterNote)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%s: layout failed: %w", op, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: failed to write PDF: %w", op, err)
	}

	doc := &Document{
		Bytes:    buf.Bytes(),
		FileName: FileName(r.prefix, s.Input.InvoiceNumber, s.Input.Customer.Name),
		Pages:    pdf.PageCount(),
		HasQR:    code != nil,
	}

	r.logger.Debug().
		Str("invoice_number", s.Input.InvoiceNumber).
		Str("file_name", doc.FileName).
		Int("pages", doc.Pages).
		Int("size_bytes", len(doc.Bytes)).
		Bool("has_qr", doc.HasQR).
		Msg("Invoice rendered")

	return doc, nil
}

func (r *Renderer) paymentCode(invoiceNumber string, amount decimal.Decimal) *payqr.Code {
	if r.qr == nil {
		return nil
	}
	code, err := r.qr(payqr.Payee{Handle: r.letterhead.UPIHandle, Name: r.letterhead.PayeeName}, amount)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("invoice_number", invoiceNumber).
			Str("amount", amount.StringFixed(2)).
			Msg("Payment QR code unavailable, rendering without it")
		return nil
	}
	return code
}
