package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"tripbill/internal/config"
	"tripbill/internal/drive"
	"tripbill/internal/logger"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [file-id]",
	Short: "Delete an invoice PDF from Google Drive",
	Long: `Delete one invoice PDF from the configured Google Drive folder.

The file is looked up first and its name is shown before deletion. Deleting
a file does not release its invoice number.`,
	Example: `  # Delete after confirmation
  tripbill delete 1AbCdEf

  # Delete without asking
  tripbill delete 1AbCdEf --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	deleteCmd.Flags().Int("timeout", 30, "Timeout in seconds")
}

func runDelete(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("delete")

	fileID := args[0]
	yes, _ := cmd.Flags().GetBool("yes")
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

	doc, err := store.Get(ctx, fileID)
	if err != nil {
		return fmt.Errorf("invoice %s not found: %w", fileID, err)
	}

	if !yes {
		fmt.Printf("Delete %s (%s)? [y/N]: ", doc.Name, drive.FormatFileSize(doc.Size))
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete %s: %w", doc.Name, err)
	}

	log.Info().Str("file_id", fileID).Str("name", doc.Name).Msg("Invoice deleted")
	fmt.Printf("Deleted %s\n", doc.Name)
	return nil
}
