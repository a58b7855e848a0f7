package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"tripbill/internal/config"
	"tripbill/internal/invoice"
	"tripbill/internal/logger"
)

var batchCmd = &cobra.Command{
	Use:   "batch [folder-path]",
	Short: "Issue invoices for every trip record in a folder",
	Long: `Issue tax invoices for all JSON trip records in a folder.

Records are processed by a pool of parallel workers. A record that already
carries an invoice_number is rendered with that number; every other record
takes the next number from the Firestore counter. Invoice numbers are only
consumed for records that pass validation.

Required environment variables:
  COMPANY_NAME - Company name printed on the letterhead
  FIRESTORE_PROJECT_ID - Project holding the invoice counter
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string

Optional environment variables:
  BATCH_WORKERS - Number of parallel workers (default: 12)
  GOOGLE_DRIVE_FOLDER_ID - Drive folder for --upload
  GOOGLE_SHEET_URL - Register spreadsheet for --register`,
	Example: `  # Issue invoices for all trips in a folder
  tripbill batch ./trips -o ./invoices

  # Check every record and print totals without issuing numbers
  tripbill batch ./trips --dry-run

  # Issue, upload and register with detailed logging
  tripbill batch ./trips --upload --register --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

// BatchResult is the outcome of processing one trip record.
type BatchResult struct {
	Filename      string
	InvoiceNumber string
	OutputPath    string
	GrandTotal    decimal.Decimal
	Error         error
	Status        string // "success", "warning", "error"
	Index         int    // Original order index
}

// WorkerJob is one trip record queued for a worker.
type WorkerJob struct {
	FilePath string
	Index    int
}

type batchRunner struct {
	gen       *invoice.Generator
	outputDir string
	dryRun    bool
	verbose   bool
	log       zerolog.Logger
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("output-dir", "o", ".", "Directory to write the PDFs into")
	batchCmd.Flags().Bool("dry-run", false, "Validate and price records without issuing invoices")
	batchCmd.Flags().Bool("upload", false, "Upload each PDF to Google Drive")
	batchCmd.Flags().Bool("register", false, "Append each invoice to the Google Sheets register")
	batchCmd.Flags().Bool("verbose", false, "Show detailed processing information")
	batchCmd.Flags().Int("timeout", 1800, "Timeout in seconds for the whole batch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("batch")

	folderPath := args[0]
	outputDir, _ := cmd.Flags().GetString("output-dir")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	upload, _ := cmd.Flags().GetBool("upload")
	register, _ := cmd.Flags().GetBool("register")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	folderInfo, err := os.Stat(folderPath)
	if err != nil {
		return fmt.Errorf("folder not found: %s", folderPath)
	}
	if !folderInfo.IsDir() {
		return fmt.Errorf("path is not a directory: %s", folderPath)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log.Info().
		Str("folder", folderPath).
		Str("output_dir", outputDir).
		Bool("dry_run", dryRun).
		Bool("upload", upload).
		Bool("register", register).
		Int("workers", cfg.BatchWorkers).
		Msg("Starting batch invoice generation")

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("                         BATCH INVOICE GENERATION")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Folder: %s\n", folderPath)
	if dryRun {
		fmt.Println("Mode: dry run (no invoice numbers issued, no files written)")
	} else {
		fmt.Printf("Output: %s\n", outputDir)
	}
	fmt.Println()

	files, err := findInputFiles(folderPath)
	if err != nil {
		return fmt.Errorf("failed to find input files: %w", err)
	}
	if len(files) == 0 {
		fmt.Println("No JSON trip records found in folder.")
		return nil
	}

	ctx, cancel := createInvoiceContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	runner := &batchRunner{
		outputDir: outputDir,
		dryRun:    dryRun,
		verbose:   verbose,
		log:       log,
	}
	if !dryRun {
		gen, cleanup, err := createGenerator(ctx, cfg, generatorOptions{
			upload:   upload,
			register: register,
			sequence: true,
		}, log)
		defer cleanup()
		if err != nil {
			return err
		}
		runner.gen = gen
	}

	fmt.Printf("Processing %d records with %d parallel workers...\n\n", len(files), cfg.BatchWorkers)

	results := runner.processInParallel(ctx, files, cfg.BatchWorkers)

	successCount, warningCount, errorCount := 0, 0, 0
	total := decimal.Zero
	for _, result := range results {
		switch result.Status {
		case "success":
			successCount++
		case "warning":
			warningCount++
		case "error":
			errorCount++
		}
		if result.Status != "error" {
			total = total.Add(result.GrandTotal)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("                 RESULT")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Succeeded: %d\n", successCount)
	if warningCount > 0 {
		fmt.Printf("With warnings: %d\n", warningCount)
	}
	if errorCount > 0 {
		fmt.Printf("Failed: %d\n", errorCount)
	}
	fmt.Printf("Total billed: Rs. %s\n", total.StringFixed(2))
	fmt.Println(strings.Repeat("=", 80))

	log.Info().
		Int("total", len(files)).
		Int("success", successCount).
		Int("warnings", warningCount).
		Int("errors", errorCount).
		Str("billed", total.StringFixed(2)).
		Msg("Batch invoice generation completed")

	if errorCount > 0 {
		return fmt.Errorf("%d of %d records failed", errorCount, len(files))
	}
	return nil
}

// findInputFiles returns the JSON files in folderPath in name order.
func findInputFiles(folderPath string) ([]string, error) {
	var files []string

	err := filepath.Walk(folderPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".json") {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files, err
}

// processOne prices, and unless dry-running issues, a single trip record.
func (r *batchRunner) processOne(ctx context.Context, path string) BatchResult {
	result := BatchResult{Status: "error"}

	in, err := loadInput(path, r.log)
	if err != nil {
		result.Error = err
		return result
	}

	if r.dryRun {
		prepared, err := invoice.Prepare(in)
		if err != nil {
			result.Error = err
			return result
		}
		result.InvoiceNumber = in.InvoiceNumber
		result.GrandTotal = prepared.Totals.GrandTotal
		result.Status = "success"
		if !prepared.Totals.GrandTotal.IsPositive() {
			result.Status = "warning"
		}
		return result
	}

	var res *invoice.Result
	if in.InvoiceNumber != "" {
		res, err = r.gen.Generate(ctx, in)
	} else {
		res, err = r.gen.IssueAndGenerate(ctx, in)
	}

	if res != nil && res.Document != nil {
		result.InvoiceNumber = res.InvoiceNumber
		result.GrandTotal = res.Totals.GrandTotal
		out, writeErr := writeDocument(r.outputDir, res.Document)
		if writeErr != nil {
			result.Error = writeErr
			return result
		}
		result.OutputPath = out
	}

	var genErr *invoice.GenerationError
	switch {
	case err == nil:
		result.Status = "success"
		if !res.Document.HasQR {
			result.Status = "warning"
		}
	case errors.As(err, &genErr) && res != nil:
		// rendered and saved locally, but upload or register failed
		result.Status = "warning"
		result.Error = err
	default:
		result.Error = err
		return result
	}

	if r.verbose {
		r.log.Info().
			Str("file", filepath.Base(path)).
			Str("invoice_number", res.InvoiceNumber).
			Str("customer", in.Customer.DisplayName()).
			Str("grand_total", res.Totals.GrandTotal.StringFixed(2)).
			Int("pages", res.Document.Pages).
			Msg("Trip record processed")
	}

	return result
}

// processInParallel runs the records through a worker pool.
func (r *batchRunner) processInParallel(ctx context.Context, files []string, numWorkers int) []BatchResult {
	jobs := make(chan WorkerJob, len(files))
	results := make([]BatchResult, len(files))

	var processedCount int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for job := range jobs {
				r.log.Debug().
					Int("worker", workerID).
					Str("file", job.FilePath).
					Int("index", job.Index+1).
					Msg("Worker processing trip record")

				result := r.processOne(ctx, job.FilePath)
				result.Index = job.Index
				result.Filename = filepath.Base(job.FilePath)

				results[job.Index] = result

				mu.Lock()
				processedCount++
				fmt.Printf("[%d/%d] %s - %s", processedCount, len(files), result.Filename, statusLabel(result.Status))
				if result.InvoiceNumber != "" {
					fmt.Printf(" %s", result.InvoiceNumber)
				}
				if result.Error != nil {
					fmt.Printf(" (%s)", firstLine(result.Error.Error()))
				} else {
					fmt.Printf(" (Rs. %s)", result.GrandTotal.StringFixed(2))
				}
				fmt.Println()
				mu.Unlock()
			}
		}(w)
	}

	for i, f := range files {
		jobs <- WorkerJob{FilePath: f, Index: i}
	}
	close(jobs)

	wg.Wait()

	return results
}

func statusLabel(status string) string {
	switch status {
	case "success":
		return "OK"
	case "warning":
		return "WARN"
	default:
		return "FAIL"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
