package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripbill/pkg/services"
)

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-def_GHI/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-def_GHI", id)

	_, err = extractSpreadsheetID("https://example.com/not-a-sheet")
	assert.Error(t, err)
}

func TestRowValues(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	entry := services.RegisterEntry{
		InvoiceNumber: "#00012",
		IssuedAt:      time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC),
		Customer:      "Mr. Ravi",
		VehicleNo:     "TN 38 AB 1234",
		Taxable:       decimal.RequireFromString("12525"),
		Tax:           decimal.RequireFromString("626.25"),
		GrandTotal:    decimal.RequireFromString("11951"),
		FileName:      "INV-00012_Ravi.pdf",
	}

	row := rowValues(entry, ist, time.Date(2025, 3, 31, 20, 5, 0, 0, time.UTC))

	require.Len(t, row, len(headers))
	assert.Equal(t, "#00012", row[0])
	assert.Equal(t, "01/04/2025", row[1], "date is printed in the configured zone")
	assert.Equal(t, "None", row[5])
	assert.Equal(t, "626.25", row[7])
	assert.Equal(t, "0.00", row[9])
	assert.Equal(t, "11951.00", row[11])
	assert.Equal(t, "01/04/2025 01:35:00", row[15])
}

func TestColumnRange(t *testing.T) {
	assert.Equal(t, "P", lastColumn())
	assert.Equal(t, "Invoices!A:P", columnRange(DefaultWorksheet))
}
