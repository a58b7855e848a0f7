// Package sheets keeps the invoice register: one Google Sheets row per
// issued invoice.
package sheets

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"tripbill/internal/gcp"
	"tripbill/internal/logger"
	"tripbill/pkg/services"
)

// DefaultWorksheet is used when no worksheet name is configured.
const DefaultWorksheet = "Invoices"

var headers = []interface{}{
	"Invoice No", "Date", "Customer", "Company", "Vehicle No", "Tax",
	"Taxable", "Tax Amount", "Non Taxable", "Discount", "Advance",
	"Grand Total", "File", "Drive ID", "Link", "Recorded At",
}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// Service appends register rows to one worksheet.
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	worksheet     string
	loc           *time.Location
	log           zerolog.Logger

	mu    sync.Mutex
	ready bool
}

var _ services.InvoiceRegister = (*Service)(nil)

// NewSheetsService creates a register for the spreadsheet at sheetURL.
func NewSheetsService(ctx context.Context, sheetURL, worksheet string, loc *time.Location) (*Service, error) {
	const op = "NewSheetsService"

	log := logger.WithComponent("sheets")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to extract spreadsheet ID: %w", op, err)
	}

	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Extracted spreadsheet ID")

	client, err := gcp.HTTPClient(ctx, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	if worksheet == "" {
		worksheet = DefaultWorksheet
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		loc:           loc,
		log:           log,
	}, nil
}

func extractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}
	return matches[1], nil
}

// Append writes one register row, creating the worksheet and its header
// row on first use.
func (s *Service) Append(ctx context.Context, entry services.RegisterEntry) error {
	const op = "Append"

	if err := s.ensureReady(ctx); err != nil {
		return fmt.Errorf("%s: failed to ensure sheet exists: %w", op, err)
	}

	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{rowValues(entry, s.loc, time.Now())},
	}

	_, err := s.sheetsService.Spreadsheets.Values.Append(
		s.spreadsheetID,
		columnRange(s.worksheet),
		valueRange,
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to append values to sheet: %w", op, err)
	}

	s.log.Info().
		Str("invoice_number", entry.InvoiceNumber).
		Str("sheet", s.worksheet).
		Msg("Invoice registered")

	return nil
}

func (s *Service) ensureReady(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := s.ensureSheetWithHeaders(ctx); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *Service) ensureSheetWithHeaders(ctx context.Context) error {
	const op = "ensureSheetWithHeaders"

	spreadsheet, err := s.sheetsService.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get spreadsheet: %w", op, err)
	}

	var sheetExists bool
	var sheetID int64
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == s.worksheet {
			sheetExists = true
			sheetID = sheet.Properties.SheetId
			break
		}
	}

	if !sheetExists {
		s.log.Info().Str("sheet", s.worksheet).Msg("Creating new sheet")

		batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				{AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: s.worksheet}}},
			},
		}

		resp, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%s: failed to create sheet: %w", op, err)
		}
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	headerRange := fmt.Sprintf("%s!A1:%s1", s.worksheet, lastColumn())
	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get headers: %w", op, err)
	}

	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	s.log.Info().Str("sheet", s.worksheet).Msg("Adding headers to sheet")

	_, err = s.sheetsService.Spreadsheets.Values.Update(
		s.spreadsheetID,
		headerRange,
		&sheets.ValueRange{Values: [][]interface{}{headers}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to add headers: %w", op, err)
	}

	if err := s.formatHeaders(ctx, sheetID); err != nil {
		s.log.Warn().Err(err).Msg("Failed to format headers, continuing anyway")
	}

	return nil
}

// formatHeaders bolds and shades the header row and fits the columns.
func (s *Service) formatHeaders(ctx context.Context, sheetID int64) error {
	const op = "formatHeaders"

	width := int64(len(headers))
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   width,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat:      &sheets.TextFormat{Bold: true},
						BackgroundColor: &sheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9},
					},
				},
				Fields: "userEnteredFormat(textFormat,backgroundColor)",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   width,
				},
			},
		},
	}

	_, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to format headers: %w", op, err)
	}
	return nil
}

// rowValues lays an entry out in header order. Amounts are written as
// plain numbers so the sheet can sum them.
func rowValues(e services.RegisterEntry, loc *time.Location, recordedAt time.Time) []interface{} {
	return []interface{}{
		e.InvoiceNumber,
		e.IssuedAt.In(loc).Format("02/01/2006"),
		e.Customer,
		e.Company,
		e.VehicleNo,
		taxLabel(e.TaxRegime),
		amount(e.Taxable),
		amount(e.Tax),
		amount(e.NonTaxable),
		amount(e.Discount),
		amount(e.Advance),
		amount(e.GrandTotal),
		e.FileName,
		e.DocumentID,
		e.DocumentLink,
		recordedAt.In(loc).Format("02/01/2006 15:04:05"),
	}
}

func taxLabel(regime string) string {
	if regime == "" {
		return "None"
	}
	return regime
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func lastColumn() string {
	return string(rune('A' + len(headers) - 1))
}

func columnRange(worksheet string) string {
	return fmt.Sprintf("%s!A:%s", worksheet, lastColumn())
}
