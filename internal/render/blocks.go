package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"tripbill/internal/payqr"
	"tripbill/internal/words"
	"tripbill/pkg/models"
)

const (
	qrImageName = "upi-qr"
	qrSize      = 30.0

	totalsLabelX = 115.0
	totalsValueX = 190.0

	descWidth   = 135.0
	amountWidth = 45.0
	cellPad     = 2.0
	rowLine     = 4.0
)

// header prints the tax-id bar, the letterhead and the "TAX INVOICE" title.
func (p *page) header(lh Letterhead, c Cursor) Cursor {
	y := c.Y + 15
	p.font("", 8, darkGray)
	p.text(15, y, "GSTIN : "+lh.GSTIN)
	p.text(70, y, "PAN No. : "+lh.PAN)
	p.text(125, y, "State Name : "+lh.StateName)
	p.text(180, y, "Code : "+lh.StateCode)

	p.font("B", 20, maroon)
	p.textCenter(centerX, c.Y+25, lh.CompanyName)

	p.font("", 9, black)
	p.textCenter(centerX, c.Y+32, lh.Address)

	p.font("B", 8, blue)
	p.textCenter(centerX, c.Y+37, "Cell : "+lh.Phones)

	p.font("", 8, black)
	p.textCenter(centerX, c.Y+42, "E-mail : "+lh.Email)

	p.font("B", 8, maroon)
	p.textCenter(centerX, c.Y+48, lh.Tagline)

	p.hrule(c.Y+51, 0.5, black)

	p.font("B", 14, black)
	p.textCenter(centerX, c.Y+58, "TAX INVOICE")

	return c.Down(66)
}

// rows prints the visible specs of one column from y and returns where it stopped.
func (p *page) rows(v *view, col column, y float64, specs []rowSpec) float64 {
	for i := range specs {
		spec := &specs[i]
		if !spec.visible(v) {
			continue
		}
		y += p.row(v, col, y, spec)
	}
	return y
}

// row prints a single spec and returns the height it used.
func (p *page) row(v *view, col column, y float64, spec *rowSpec) float64 {
	style := ""
	if spec.bold {
		style = "B"
	}
	p.font(style, 10, black)
	defer p.font("", 10, black)

	value := spec.value(v)
	if spec.wrap > 0 {
		p.text(col.label, y, spec.label)
		p.text(col.colon, y, ":")
		return p.textLines(col.value, y, p.wrap(value, spec.wrap), lineHeight)
	}
	p.field(col, y, spec.label, value)
	return lineHeight
}

func (p *page) heading(x, y float64, title string, size float64) {
	p.font("B", size, blue)
	p.text(x, y, title)
	p.font("", size, black)
}

// parties prints "Bill To" and "Invoice Details" side by side.
func (p *page) parties(v *view, c Cursor) Cursor {
	p.heading(leftColumn.label, c.Y, "Bill To:", 10)
	left := p.rows(v, leftColumn, c.Y+6, billToRows)

	p.heading(rightColumn.label, c.Y, "Invoice Details:", 10)
	right := p.rows(v, rightColumn, c.Y+6, invoiceDetailRows)

	return Lowest(Cursor{Y: left + 5}, Cursor{Y: right + 5}, c.Down(19))
}

// trip prints the two-column trip details, including the bold chargeable
// distance row when part of the trip was free.
func (p *page) trip(v *view, c Cursor) Cursor {
	p.heading(leftColumn.label, c.Y, "Trip Details:", 10)

	y := c.Y + 5
	for _, pr := range tripRows {
		if pr.when != nil && !pr.when(v) {
			continue
		}
		if pr.left.visible(v) {
			p.row(v, leftColumn, y, pr.left)
		}
		if pr.right.visible(v) {
			p.row(v, rightColumn, y, pr.right)
		}
		y += lineHeight
	}
	return Cursor{Y: y}
}

// itemsTable prints the description/amount table. Rows that would cross
// the bottom of the page continue on a new page under a repeated head.
func (p *page) itemsTable(items []models.LineItem, c Cursor) Cursor {
	y := p.tableHead(c.Y)

	p.font("", 9, black)
	for _, it := range items {
		lines := p.wrap(it.Description, descWidth-2*cellPad)
		h := float64(len(lines))*rowLine + 2*cellPad

		if y+h > tableBottom {
			p.pdf.AddPage()
			y = p.tableHead(topOnNewPage)
			p.font("", 9, black)
		}

		p.pdf.SetLineWidth(0.1)
		p.pdf.SetDrawColor(rule.r, rule.g, rule.b)
		p.pdf.Rect(marginLeft, y, descWidth, h, "D")
		p.pdf.Rect(marginLeft+descWidth, y, amountWidth, h, "D")

		baseline := y + cellPad + 3
		p.textLines(marginLeft+cellPad, baseline, lines, rowLine)
		p.textRight(marginRight-cellPad, baseline, money(it.Amount))

		y += h
	}
	return Cursor{Y: y}
}

func (p *page) tableHead(y float64) float64 {
	const h = 8.0
	p.pdf.SetLineWidth(0.5)
	p.pdf.SetDrawColor(black.r, black.g, black.b)
	p.pdf.Rect(marginLeft, y, descWidth, h, "D")
	p.pdf.Rect(marginLeft+descWidth, y, amountWidth, h, "D")

	p.font("B", 10, black)
	p.text(marginLeft+cellPad, y+5.5, "Description")
	p.textRight(marginRight-cellPad, y+5.5, "Amount (Rs)")
	return y + h
}

// bank prints bank details, the cheque line and the payment QR code in the
// left column. A nil code leaves the QR space empty.
func (p *page) bank(lh Letterhead, code *payqr.Code, c Cursor) Cursor {
	p.heading(marginLeft, c.Y, "Bank Details :", 9)
	p.pdf.SetTextColor(black.r, black.g, black.b)

	y := c.Y + 6
	p.font("B", 8, black)
	for _, line := range []string{
		"Name : " + lh.Bank.Name,
		"A/c. No. : " + lh.Bank.AccountNo,
		"Branch : " + lh.Bank.Branch,
		"IFSC Code : " + lh.Bank.IFSC,
		"UPI ID : " + lh.UPIHandle,
	} {
		p.text(marginLeft, y, line)
		y += 5
	}

	p.font("B", 9, black)
	p.text(marginLeft, y, fmt.Sprintf("CHEQUES / DD Favouring %q Only", lh.ChequeFavouring))
	y += 7

	qrY := y
	if code != nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		p.pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(code.PNG))
		p.pdf.ImageOptions(qrImageName, marginLeft, qrY, qrSize, qrSize, false, opts, 0, code.URI)

		// the caller clears a failed embed; no caption without an image
		if p.pdf.Ok() {
			p.font("I", 7, gray)
			p.textCenter(marginLeft+qrSize/2, qrY+qrSize+2, "Scan this QR code to pay")
		}
	}

	return Cursor{Y: qrY + qrSize + 2 + 5}
}

// totals prints the right-hand totals column.
func (p *page) totals(v *view, c Cursor) Cursor {
	p.font("", 9, black)
	y := c.Y
	for _, row := range visibleTotals(v) {
		p.text(totalsLabelX, y, row.label(v))
		p.textRight(totalsValueX, y, row.amount(v))
		if row.gap > 0 {
			y += row.gap
		} else {
			y += 6
		}
	}
	return Cursor{Y: y}
}

// grandTotal prints the amount in words beside the grand total between two rules.
func (p *page) grandTotal(t models.TotalsBreakdown, c Cursor) Cursor {
	bottom := c.Y + 7
	p.hrule(bottom-3, 0.5, black)

	p.font("I", 8, black)
	p.text(marginLeft, bottom+2, "In words:")

	p.font("B", 8, black)
	lines := p.wrap(words.Rupees(t.GrandTotal), 90)
	p.textLines(28, bottom+2, lines, 3.5)

	p.font("B", 12, black)
	p.text(totalsLabelX, bottom+2, "GRAND TOTAL")
	p.textRight(totalsValueX, bottom+2, "Rs. "+money(t.GrandTotal))

	end := bottom + 8 + float64(len(lines))*lineHeight
	p.hrule(end-7, 0.5, black)
	return Cursor{Y: end}
}

// footer prints the disclaimer at the bottom of the current page.
func (p *page) footer(note string) {
	p.font("I", 6, gray)
	p.textCenter(centerX, pageHeight-10, note)
}
