package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"tripbill/internal/logger"
	"tripbill/internal/render"
)

type Config struct {
	// Company letterhead
	CompanyName     string
	CompanyAddress  string
	CompanyPhones   string
	CompanyEmail    string
	CompanyTagline  string
	CompanyGSTIN    string
	CompanyPAN      string
	StateName       string
	StateCode       string
	ChequeFavouring string
	FooterNote      string

	// Bank details
	BankName      string
	BankAccountNo string
	BankBranch    string
	BankIFSC      string

	// UPI payment QR
	UPIHandle    string
	UPIPayeeName string

	// Invoice output
	FilePrefix string
	Location   string

	// Google Drive
	DriveFolderID string

	// Firestore invoice counter
	FirestoreProject  string
	CounterCollection string
	CounterDocument   string

	// Google Sheets register
	GoogleSheetURL       string
	GoogleSheetWorksheet string

	// Batch processing
	BatchWorkers int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		CompanyName:          getEnv("COMPANY_NAME", ""),
		CompanyAddress:       getEnv("COMPANY_ADDRESS", ""),
		CompanyPhones:        getEnv("COMPANY_PHONES", ""),
		CompanyEmail:         getEnv("COMPANY_EMAIL", ""),
		CompanyTagline:       getEnv("COMPANY_TAGLINE", ""),
		CompanyGSTIN:         getEnv("COMPANY_GSTIN", ""),
		CompanyPAN:           getEnv("COMPANY_PAN", ""),
		StateName:            getEnv("COMPANY_STATE_NAME", ""),
		StateCode:            getEnv("COMPANY_STATE_CODE", ""),
		ChequeFavouring:      getEnv("CHEQUE_FAVOURING", ""),
		FooterNote:           getEnv("INVOICE_FOOTER_NOTE", "This is a computer generated invoice."),
		BankName:             getEnv("BANK_NAME", ""),
		BankAccountNo:        getEnv("BANK_ACCOUNT_NO", ""),
		BankBranch:           getEnv("BANK_BRANCH", ""),
		BankIFSC:             getEnv("BANK_IFSC", ""),
		UPIHandle:            getEnv("UPI_ID", ""),
		UPIPayeeName:         getEnv("UPI_PAYEE_NAME", ""),
		FilePrefix:           getEnv("INVOICE_FILE_PREFIX", render.DefaultFilePrefix),
		Location:             getEnv("LOCATION", "Asia/Kolkata"),
		DriveFolderID:        getEnv("GOOGLE_DRIVE_FOLDER_ID", ""),
		FirestoreProject:     getEnv("FIRESTORE_PROJECT_ID", getEnv("GOOGLE_CLOUD_PROJECT", "")),
		CounterCollection:    getEnv("COUNTER_COLLECTION", "counters"),
		CounterDocument:      getEnv("COUNTER_DOCUMENT", "invoiceNumber"),
		GoogleSheetURL:       getEnv("GOOGLE_SHEET_URL", ""),
		GoogleSheetWorksheet: getEnv("GOOGLE_SHEET_WORKSHEET", "Invoices"),
		BatchWorkers:         getEnvInt("BATCH_WORKERS", 12),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:        getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:            getEnv("LOG_OUTPUT", "stderr"),
	}

	if config.UPIPayeeName == "" {
		config.UPIPayeeName = config.CompanyName
	}
	if config.ChequeFavouring == "" {
		config.ChequeFavouring = config.CompanyName
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.CompanyName == "" {
		return fmt.Errorf("COMPANY_NAME is required")
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("BATCH_WORKERS must be at least 1")
	}
	if _, err := time.LoadLocation(c.Location); err != nil {
		return fmt.Errorf("LOCATION %q is not a valid time zone: %w", c.Location, err)
	}
	return nil
}

// RequireIssuing checks the settings needed to assign numbers and store invoices.
func (c *Config) RequireIssuing() error {
	if c.FirestoreProject == "" {
		return fmt.Errorf("FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT is required")
	}
	return nil
}

// RequireDrive checks the settings needed for the Drive document store.
func (c *Config) RequireDrive() error {
	if c.DriveFolderID == "" {
		return fmt.Errorf("GOOGLE_DRIVE_FOLDER_ID is required")
	}
	return nil
}

// Letterhead returns the company identity printed on every invoice.
func (c *Config) Letterhead() render.Letterhead {
	return render.Letterhead{
		CompanyName: c.CompanyName,
		Address:     c.CompanyAddress,
		Phones:      c.CompanyPhones,
		Email:       c.CompanyEmail,
		Tagline:     c.CompanyTagline,
		GSTIN:       c.CompanyGSTIN,
		PAN:         c.CompanyPAN,
		StateName:   c.StateName,
		StateCode:   c.StateCode,
		Bank: render.BankDetails{
			Name:      c.BankName,
			AccountNo: c.BankAccountNo,
			Branch:    c.BankBranch,
			IFSC:      c.BankIFSC,
		},
		UPIHandle:       c.UPIHandle,
		PayeeName:       c.UPIPayeeName,
		ChequeFavouring: c.ChequeFavouring,
		FooterNote:      c.FooterNote,
	}
}

// TimeLocation returns the zone dates are printed in. Load has already
// validated it.
func (c *Config) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
