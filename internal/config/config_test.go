package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COMPANY_NAME", "Sri Murugan Travels")
	t.Setenv("UPI_ID", "travels@okbank")
	t.Setenv("BANK_IFSC", "SBIN0000001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.BatchWorkers)
	assert.Equal(t, "Asia/Kolkata", cfg.Location)
	assert.Equal(t, "counters", cfg.CounterCollection)
	assert.Equal(t, "invoiceNumber", cfg.CounterDocument)
	assert.Equal(t, "INV", cfg.FilePrefix)

	lh := cfg.Letterhead()
	assert.Equal(t, "Sri Murugan Travels", lh.CompanyName)
	assert.Equal(t, "Sri Murugan Travels", lh.PayeeName, "payee defaults to company name")
	assert.Equal(t, "Sri Murugan Travels", lh.ChequeFavouring)
	assert.Equal(t, "travels@okbank", lh.UPIHandle)
	assert.Equal(t, "SBIN0000001", lh.Bank.IFSC)

	assert.Equal(t, "Asia/Kolkata", cfg.TimeLocation().String())
}

func TestLoadRequiresCompanyName(t *testing.T) {
	t.Setenv("COMPANY_NAME", "")

	_, err := Load()
	assert.ErrorContains(t, err, "COMPANY_NAME")
}

func TestLoadRejectsBadLocation(t *testing.T) {
	t.Setenv("COMPANY_NAME", "Test")
	t.Setenv("LOCATION", "Mars/Olympus")

	_, err := Load()
	assert.ErrorContains(t, err, "LOCATION")
}

func TestBatchWorkersFallsBackOnGarbage(t *testing.T) {
	t.Setenv("COMPANY_NAME", "Test")
	t.Setenv("BATCH_WORKERS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BatchWorkers)
}

func TestRequireIssuing(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireIssuing())
	assert.Error(t, cfg.RequireDrive())

	cfg.FirestoreProject = "demo"
	cfg.DriveFolderID = "folder"
	assert.NoError(t, cfg.RequireIssuing())
	assert.NoError(t, cfg.RequireDrive())
}
