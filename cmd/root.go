package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tripbill/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "tripbill",
	Short: "Tripbill - GST tax invoices for vehicle rental trips",
	Long: `Tripbill prices vehicle rental trips and issues GST tax invoices as PDF.

Each invoice gets the next number from a Firestore counter, carries a UPI
payment QR code, and can be uploaded to Google Drive and recorded in a
Google Sheets register.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
