package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripbill/internal/invoice"
	"tripbill/internal/words"
)

func TestPrintPreviewAlwaysShowsRoundOff(t *testing.T) {
	in, err := loadInput(writeFile(t, t.TempDir(), "trip.json", tripJSON), zerolog.Nop())
	require.NoError(t, err)

	prepared, err := invoice.Prepare(in)
	require.NoError(t, err)
	require.True(t, prepared.Totals.RoundOff.IsZero())

	var buf bytes.Buffer
	printPreview(&buf, PreviewOutput{
		Customer:      in.Customer.DisplayName(),
		Items:         prepared.Items,
		Totals:        prepared.Totals,
		AmountInWords: words.Rupees(prepared.Totals.GrandTotal),
	})
	out := buf.String()

	var roundOff string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "Round Off") {
			roundOff = l
		}
	}
	require.NotEmpty(t, roundOff)
	assert.True(t, strings.HasSuffix(roundOff, " 0.00"))

	assert.Contains(t, out, "CGST 2.5%")
	assert.Contains(t, out, "Advance")
	assert.Contains(t, out, "2020.00")
	assert.NotContains(t, out, "Discount")
}
