package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"tripbill/internal/config"
	"tripbill/internal/drive"
	"tripbill/internal/logger"
	"tripbill/pkg/services"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoice PDFs stored in Google Drive",
	Long: `List the invoice PDFs in the configured Google Drive folder, newest first.

Required environment variables:
  GOOGLE_DRIVE_FOLDER_ID - Drive folder holding the invoices
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # List the latest invoices
  tripbill list

  # Find invoices for a customer
  tripbill list --search Ravi

  # Fetch the next page as JSON
  tripbill list --page-size 20 --page-token <token> --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("search", "", "Only list files whose name contains this text")
	listCmd.Flags().Int64("page-size", drive.DefaultPageSize, "Number of files per page")
	listCmd.Flags().String("page-token", "", "Token of the page to fetch")
	listCmd.Flags().Bool("json", false, "Output in JSON format")
	listCmd.Flags().Int("timeout", 30, "Timeout in seconds")
}

// ListedDocument is the JSON form of a stored invoice.
type ListedDocument struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Size         string    `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
	ViewLink     string    `json:"view_link,omitempty"`
	DownloadLink string    `json:"download_link,omitempty"`
}

// ListOutput is the JSON form of one page of stored invoices.
type ListOutput struct {
	Documents     []ListedDocument `json:"documents"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("list")

	search, _ := cmd.Flags().GetString("search")
	pageSize, _ := cmd.Flags().GetInt64("page-size")
	pageToken, _ := cmd.Flags().GetString("page-token")
	asJSON, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireDrive(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	store, err := drive.NewDriveService(ctx, cfg.DriveFolderID)
	if err != nil {
		return credentialsHint(err)
	}

	res, err := store.List(ctx, services.ListQuery{
		Search:    search,
		PageSize:  pageSize,
		PageToken: pageToken,
	})
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	log.Debug().
		Int("count", len(res.Documents)).
		Bool("has_more", res.NextPageToken != "").
		Msg("Listed stored invoices")

	out := ListOutput{
		Documents:     make([]ListedDocument, 0, len(res.Documents)),
		NextPageToken: res.NextPageToken,
	}
	for _, d := range res.Documents {
		out.Documents = append(out.Documents, ListedDocument{
			ID:           d.ID,
			Name:         d.Name,
			Size:         drive.FormatFileSize(d.Size),
			CreatedAt:    d.CreatedAt,
			ModifiedAt:   d.ModifiedAt,
			ViewLink:     d.ViewLink,
			DownloadLink: d.DownloadURL,
		})
	}

	if asJSON {
		return printJSON(out)
	}

	if len(out.Documents) == 0 {
		fmt.Println("No invoices found.")
		return nil
	}

	loc := cfg.TimeLocation()
	fmt.Printf("%-44s %-36s %10s  %s\n", "ID", "Name", "Size", "Modified")
	fmt.Println(strings.Repeat("-", 110))
	for _, d := range out.Documents {
		fmt.Printf("%-44s %-36s %10s  %s\n", d.ID, truncate(d.Name, 36), d.Size, d.ModifiedAt.In(loc).Format("02/01/2006 15:04"))
	}
	if out.NextPageToken != "" {
		fmt.Printf("\nMore results: --page-token %s\n", out.NextPageToken)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
