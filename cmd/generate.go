package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"tripbill/internal/config"
	"tripbill/internal/invoice"
	"tripbill/internal/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate [input.json]",
	Short: "Issue a tax invoice PDF from a trip record",
	Long: `Issue a GST tax invoice for one trip.

The trip record is read from a JSON file. The next invoice number is taken
from the Firestore counter unless --number is given, the PDF is written to
the output directory, and it is optionally uploaded to Google Drive and
recorded in the Google Sheets register.

Required environment variables:
  COMPANY_NAME - Company name printed on the letterhead
  FIRESTORE_PROJECT_ID - Project holding the invoice counter (unless --number)
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string

Optional environment variables:
  GOOGLE_DRIVE_FOLDER_ID - Drive folder for --upload
  GOOGLE_SHEET_URL - Register spreadsheet for --register
  UPI_ID - UPI handle encoded in the payment QR code
  LOCATION - Time zone for printed dates (default: Asia/Kolkata)`,
	Example: `  # Issue the next invoice and save it in the current directory
  tripbill generate trip.json

  # Issue, upload to Drive and record in the register
  tripbill generate trip.json --upload --register

  # Re-render with a known number, without touching the counter
  tripbill generate trip.json --number "#00042" -o ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output-dir", "o", ".", "Directory to write the PDF into")
	generateCmd.Flags().String("number", "", "Use this invoice number instead of the next counter value")
	generateCmd.Flags().Bool("upload", false, "Upload the PDF to Google Drive")
	generateCmd.Flags().Bool("register", false, "Append the invoice to the Google Sheets register")
	generateCmd.Flags().Bool("json", false, "Print the result as JSON")
	generateCmd.Flags().Int("timeout", 60, "Timeout in seconds")
}

// GenerateOutput is the JSON summary of an issued invoice.
type GenerateOutput struct {
	RequestID     string `json:"request_id"`
	InvoiceNumber string `json:"invoice_number"`
	FileName      string `json:"file_name"`
	Path          string `json:"path"`
	Pages         int    `json:"pages"`
	HasQR         bool   `json:"has_qr"`
	GrandTotal    string `json:"grand_total"`
	DriveID       string `json:"drive_id,omitempty"`
	DriveLink     string `json:"drive_link,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	outputDir, _ := cmd.Flags().GetString("output-dir")
	number, _ := cmd.Flags().GetString("number")
	upload, _ := cmd.Flags().GetBool("upload")
	register, _ := cmd.Flags().GetBool("register")
	asJSON, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	inputPath := args[0]

	log.Info().
		Str("file", inputPath).
		Str("output_dir", outputDir).
		Str("number", number).
		Bool("upload", upload).
		Bool("register", register).
		Msg("Starting invoice generation")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	in, err := loadInput(inputPath, log)
	if err != nil {
		return err
	}

	ctx, cancel := createInvoiceContext(time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	gen, cleanup, err := createGenerator(ctx, cfg, generatorOptions{
		upload:   upload,
		register: register,
		sequence: number == "",
	}, log)
	defer cleanup()
	if err != nil {
		return err
	}

	var res *invoice.Result
	if number != "" {
		in.InvoiceNumber = number
		res, err = gen.Generate(ctx, in)
	} else {
		res, err = gen.IssueAndGenerate(ctx, in)
	}

	// a store or register failure still leaves a rendered document to save
	var path string
	if res != nil && res.Document != nil {
		var writeErr error
		path, writeErr = writeDocument(outputDir, res.Document)
		if writeErr != nil {
			return writeErr
		}
		log.Info().Str("path", path).Msg("Invoice written")
	}
	if err != nil {
		return handleGenerateError(err, log)
	}

	out := GenerateOutput{
		RequestID:     res.RequestID,
		InvoiceNumber: res.InvoiceNumber,
		FileName:      res.Document.FileName,
		Path:          path,
		Pages:         res.Document.Pages,
		HasQR:         res.Document.HasQR,
		GrandTotal:    res.Totals.GrandTotal.StringFixed(2),
	}
	if res.Stored != nil {
		out.DriveID = res.Stored.ID
		out.DriveLink = res.Stored.ViewLink
	}

	if asJSON {
		return printJSON(out)
	}

	fmt.Printf("Invoice %s issued\n", out.InvoiceNumber)
	fmt.Printf("  File:        %s\n", out.Path)
	fmt.Printf("  Pages:       %d\n", out.Pages)
	fmt.Printf("  Grand total: Rs. %s\n", out.GrandTotal)
	if !out.HasQR {
		fmt.Println("  Payment QR:  not included")
	}
	if out.DriveLink != "" {
		fmt.Printf("  Drive:       %s\n", out.DriveLink)
	}
	return nil
}
