// Package invoice issues trip-rental tax invoices.
//
// A Generator validates an InvoiceInput, prices the trip into line items,
// computes the GST/IGST totals, renders the PDF and optionally stores and
// registers it. Invoice numbers come from an injected services.Sequencer;
// IssueAndGenerate acquires one before generating.
//
// Preview and generation share one computation: Prepare is what Generate
// renders, so the on-screen figures and the document never disagree.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"tripbill/internal/logger"
	"tripbill/internal/rates"
	"tripbill/internal/render"
	"tripbill/internal/totals"
	"tripbill/pkg/models"
	"tripbill/pkg/services"
)

// DocumentRenderer turns a computed sheet into a PDF.
type DocumentRenderer interface {
	Render(s render.Sheet) (*render.Document, error)
}

// Prepared is the computed content of an invoice before rendering.
type Prepared struct {
	Items  []models.LineItem
	Totals models.TotalsBreakdown
}

// Result is a generated invoice.
type Result struct {
	RequestID     string
	InvoiceNumber string
	IssuedAt      time.Time
	Items         []models.LineItem
	Totals        models.TotalsBreakdown
	Document      *render.Document

	// Stored is set when the document was uploaded.
	Stored *services.StoredDocument
}

// Generator orchestrates invoice generation.
type Generator struct {
	renderer  DocumentRenderer
	sequencer services.Sequencer
	store     services.DocumentStore
	register  services.InvoiceRegister
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSequencer sets the invoice number source used by IssueAndGenerate.
func WithSequencer(s services.Sequencer) Option {
	return func(g *Generator) { g.sequencer = s }
}

// WithStore uploads every generated document.
func WithStore(s services.DocumentStore) Option {
	return func(g *Generator) { g.store = s }
}

// WithRegister appends every generated invoice to a register.
func WithRegister(r services.InvoiceRegister) Option {
	return func(g *Generator) { g.register = r }
}

// WithClock replaces time.Now for the issue date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a generator around a renderer.
func NewGenerator(r DocumentRenderer, opts ...Option) *Generator {
	g := &Generator{
		renderer: r,
		now:      time.Now,
		log:      logger.WithComponent("invoice-generator"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Prepare validates the input and computes its line items and totals.
// It does not require an invoice number.
func Prepare(in *models.InvoiceInput) (*Prepared, error) {
	const op = "Prepare"

	if err := Validate(in); err != nil {
		return nil, err
	}

	items := rates.LineItems(in)
	breakdown, err := totals.Compute(totals.FromInput(in, items))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Prepared{Items: items, Totals: breakdown}, nil
}

// IssueAndGenerate assigns the next invoice number and generates the
// invoice. The input is not modified. If no number can be acquired,
// ErrSequenceUnavailable is returned and nothing is rendered.
func (g *Generator) IssueAndGenerate(ctx context.Context, in *models.InvoiceInput) (*Result, error) {
	const op = "IssueAndGenerate"

	// reject bad input before consuming a number
	if err := Validate(in); err != nil {
		return nil, err
	}

	if g.sequencer == nil {
		return nil, fmt.Errorf("%s: %w: no sequencer configured", op, ErrSequenceUnavailable)
	}

	number, err := g.sequencer.Next(ctx)
	if err != nil {
		g.log.Error().Err(err).Msg("Failed to acquire invoice number")
		return nil, fmt.Errorf("%s: %w: %w", op, ErrSequenceUnavailable, err)
	}

	g.log.Info().Str("invoice_number", number).Msg("Invoice number assigned")

	issued := *in
	issued.InvoiceNumber = number
	return g.Generate(ctx, &issued)
}

// Generate renders an input that already carries its invoice number, then
// uploads and registers it when a store and register are configured.
// A store or register failure returns the Result with the rendered
// document alongside a *GenerationError.
func (g *Generator) Generate(ctx context.Context, in *models.InvoiceInput) (*Result, error) {
	requestID := uuid.New().String()
	log := g.log.With().
		Str("request_id", requestID).
		Str("invoice_number", in.InvoiceNumber).
		Logger()

	if err := ValidateForIssue(in); err != nil {
		log.Warn().Err(err).Msg("Invoice input rejected")
		return nil, err
	}

	prepared, err := Prepare(in)
	if err != nil {
		return nil, WrapGenerationError("compute", in.InvoiceNumber, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, WrapGenerationError("render", in.InvoiceNumber, err)
	}

	issuedAt := g.now()
	doc, err := g.renderer.Render(render.Sheet{
		Input:    in,
		Items:    prepared.Items,
		Totals:   prepared.Totals,
		IssuedAt: issuedAt,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to render invoice")
		return nil, WrapGenerationError("render", in.InvoiceNumber, err)
	}

	res := &Result{
		RequestID:     requestID,
		InvoiceNumber: in.InvoiceNumber,
		IssuedAt:      issuedAt,
		Items:         prepared.Items,
		Totals:        prepared.Totals,
		Document:      doc,
	}

	log.Info().
		Str("file_name", doc.FileName).
		Int("pages", doc.Pages).
		Bool("has_qr", doc.HasQR).
		Str("grand_total", prepared.Totals.GrandTotal.StringFixed(2)).
		Msg("Invoice generated")

	if g.store != nil {
		stored, err := g.store.Upload(ctx, doc.FileName, doc.Bytes)
		if err != nil {
			log.Error().Err(err).Msg("Failed to upload invoice")
			return res, WrapGenerationError("store", in.InvoiceNumber, err)
		}
		res.Stored = stored
		log.Info().Str("document_id", stored.ID).Msg("Invoice uploaded")
	}

	if g.register != nil {
		if err := g.register.Append(ctx, registerEntry(in, res)); err != nil {
			log.Error().Err(err).Msg("Failed to register invoice")
			return res, WrapGenerationError("register", in.InvoiceNumber, err)
		}
		log.Debug().Msg("Invoice registered")
	}

	return res, nil
}

func registerEntry(in *models.InvoiceInput, res *Result) services.RegisterEntry {
	t := res.Totals
	entry := services.RegisterEntry{
		InvoiceNumber: res.InvoiceNumber,
		IssuedAt:      res.IssuedAt,
		Customer:      in.Customer.DisplayName(),
		Company:       in.Customer.Company,
		VehicleNo:     in.Trip.VehicleNo,
		TaxRegime:     string(t.Tax.Regime),
		Taxable:       t.TaxableSubtotal,
		Tax:           t.Tax.Amount,
		NonTaxable:    t.NonTaxableSubtotal,
		Discount:      t.Discount,
		Advance:       t.Advance,
		GrandTotal:    t.GrandTotal,
		FileName:      res.Document.FileName,
	}
	if res.Stored != nil {
		entry.DocumentID = res.Stored.ID
		entry.DocumentLink = res.Stored.ViewLink
	}
	return entry
}
