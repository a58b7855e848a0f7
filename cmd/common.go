package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"tripbill/internal/config"
	"tripbill/internal/drive"
	"tripbill/internal/gcp"
	"tripbill/internal/invoice"
	"tripbill/internal/render"
	"tripbill/internal/sequence"
	"tripbill/internal/sheets"
	"tripbill/pkg/models"
)

// maxInputBytes bounds a single JSON invoice record.
const maxInputBytes = 1 << 20

// generatorOptions selects which collaborators a command wires in.
type generatorOptions struct {
	upload   bool
	register bool
	sequence bool
}

// createInvoiceContext creates a context with timeout and signal handling
func createInvoiceContext(timeout time.Duration, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// loadInput reads one invoice record from a JSON file.
func loadInput(path string, log zerolog.Logger) (*models.InvoiceInput, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", path).Msg("Invoice input file not found")
			return nil, fmt.Errorf("invoice input file not found: %s", path)
		}
		return nil, fmt.Errorf("error accessing input file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("path is not a regular file: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("input file is empty: %s", path)
	}
	if info.Size() > maxInputBytes {
		return nil, fmt.Errorf("input file too large (%d bytes), maximum is %d bytes", info.Size(), maxInputBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var in models.InvoiceInput
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("invalid invoice JSON in %s: %w", filepath.Base(path), err)
	}
	return &in, nil
}

// newRenderer builds the renderer from the configured letterhead.
func newRenderer(cfg *config.Config) *render.Renderer {
	return render.NewRenderer(cfg.Letterhead(),
		render.WithLocation(cfg.TimeLocation()),
		render.WithFilePrefix(cfg.FilePrefix),
	)
}

// createGenerator wires the generator with the collaborators opts asks for.
// The returned cleanup releases any open clients.
func createGenerator(ctx context.Context, cfg *config.Config, opts generatorOptions, log zerolog.Logger) (*invoice.Generator, func(), error) {
	var genOpts []invoice.Option
	cleanup := func() {}

	if opts.sequence {
		if err := cfg.RequireIssuing(); err != nil {
			return nil, cleanup, err
		}
		seq, err := sequence.NewFirestoreSequencer(ctx, cfg.FirestoreProject, cfg.CounterCollection, cfg.CounterDocument)
		if err != nil {
			return nil, cleanup, credentialsHint(err)
		}
		cleanup = func() {
			if err := seq.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Firestore client")
			}
		}
		genOpts = append(genOpts, invoice.WithSequencer(seq))
	}

	if opts.upload {
		if err := cfg.RequireDrive(); err != nil {
			return nil, cleanup, err
		}
		store, err := drive.NewDriveService(ctx, cfg.DriveFolderID)
		if err != nil {
			return nil, cleanup, credentialsHint(err)
		}
		genOpts = append(genOpts, invoice.WithStore(store))
	}

	if opts.register {
		if cfg.GoogleSheetURL == "" {
			return nil, cleanup, fmt.Errorf("GOOGLE_SHEET_URL is required to register invoices")
		}
		reg, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL, cfg.GoogleSheetWorksheet, cfg.TimeLocation())
		if err != nil {
			return nil, cleanup, credentialsHint(err)
		}
		genOpts = append(genOpts, invoice.WithRegister(reg))
	}

	log.Debug().
		Bool("sequence", opts.sequence).
		Bool("upload", opts.upload).
		Bool("register", opts.register).
		Msg("Invoice generator created")

	return invoice.NewGenerator(newRenderer(cfg), genOpts...), cleanup, nil
}

func credentialsHint(err error) error {
	if errors.Is(err, gcp.ErrMissingCredentials) {
		return fmt.Errorf("missing Google Cloud credentials. Please set one of:\n" +
			"  GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n" +
			"  GOOGLE_CREDENTIALS='<json-credentials>'\n" +
			"Original error: %w", err)
	}
	return err
}

// handleGenerateError turns generation failures into user-facing messages.
func handleGenerateError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice generation failed")

	var ve *invoice.ValidationError
	var genErr *invoice.GenerationError

	switch {
	case errors.As(err, &ve):
		return fmt.Errorf("invoice input is invalid:\n%s", indentLines(err.Error()))
	case errors.Is(err, invoice.ErrSequenceUnavailable):
		return fmt.Errorf("could not get the next invoice number, no invoice was generated: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("invoice generation timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("invoice generation was canceled")
	case errors.As(err, &genErr) && genErr.Op == "store":
		return fmt.Errorf("invoice %s was generated but could not be uploaded to Drive: %w", genErr.InvoiceNumber, genErr.Err)
	case errors.As(err, &genErr) && genErr.Op == "register":
		return fmt.Errorf("invoice %s was generated but could not be added to the register: %w", genErr.InvoiceNumber, genErr.Err)
	default:
		return fmt.Errorf("invoice generation failed: %w", err)
	}
}

func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  - " + l
	}
	return strings.Join(lines, "\n")
}

// writeDocument saves a rendered PDF into dir and returns its path.
func writeDocument(dir string, doc *render.Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, doc.FileName)
	if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Println()
	return nil
}
