package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripbill/internal/render"
)

const tripJSON = `{
  "customer": {"title": "Mr", "name": "Ravi Kumar"},
  "trip": {"vehicle_no": "TN 38 AB 1234", "start_km": 1000, "end_km": 1250, "free_km": 50},
  "rent": {"per_km": {"rate_per_km": "12"}},
  "gst": {"percentage": "5"},
  "advance": "500"
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInput(t *testing.T) {
	path := writeFile(t, t.TempDir(), "trip.json", tripJSON)

	in, err := loadInput(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "Mr. Ravi Kumar", in.Customer.DisplayName())
	assert.Equal(t, int64(200), in.Trip.Distances().Chargeable)
	require.NotNil(t, in.Rent.PerKm)
	assert.True(t, in.Rent.PerKm.RatePerKm.Equal(decimal.NewFromInt(12)))
	require.NotNil(t, in.GST)
	assert.Nil(t, in.IGST)
	assert.True(t, in.Advance.Equal(decimal.NewFromInt(500)))
}

func TestLoadInputErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"missing file", filepath.Join(dir, "nope.json"), "not found"},
		{"directory", dir, "not a regular file"},
		{"empty file", writeFile(t, dir, "empty.json", ""), "empty"},
		{"unknown field", writeFile(t, dir, "extra.json", `{"customer": {"name": "A"}, "tip": 5}`), "invalid invoice JSON"},
		{"malformed", writeFile(t, dir, "bad.json", `{"customer":`), "invalid invoice JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadInput(tt.path, zerolog.Nop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindInputFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", tripJSON)
	writeFile(t, dir, "a.JSON", tripJSON)
	writeFile(t, dir, "notes.txt", "ignore me")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub"), "c.json", tripJSON)

	files, err := findInputFiles(dir)
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.Equal(t, "a.JSON", filepath.Base(files[0]))
	assert.Equal(t, "b.json", filepath.Base(files[1]))
	assert.Equal(t, filepath.Join(dir, "sub", "c.json"), files[2])
}

func TestWriteDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	doc := &render.Document{Bytes: []byte("%PDF-1.3"), FileName: "INV-00001_Ravi.pdf"}

	path, err := writeDocument(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV-00001_Ravi.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Bytes, data)
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "  - a\n  - b", indentLines("a\nb"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "INV-000...", truncate("INV-00001_Ravi_Kumar.pdf", 10))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", firstLine("one"))
	assert.Equal(t, "one ...", firstLine("one\ntwo"))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "OK", statusLabel("success"))
	assert.Equal(t, "WARN", statusLabel("warning"))
	assert.Equal(t, "FAIL", statusLabel("error"))
}
