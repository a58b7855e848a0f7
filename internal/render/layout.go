package render

import (
	"github.com/jung-kurt/gofpdf"
)

// A4 portrait grid, millimetres from the page origin.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 195.0
	centerX      = 105.0
	topOnNewPage = 20.0

	// totalsBreakY is the cursor limit past which the totals block moves to a new page.
	totalsBreakY = 200.0
	// tableBottom is where item rows stop and continue on the next page.
	tableBottom = 280.0

	lineHeight = 4.0
	fontFamily = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	black    = rgb{0, 0, 0}
	blue     = rgb{41, 128, 185}
	maroon   = rgb{139, 0, 0}
	darkGray = rgb{60, 60, 60}
	gray     = rgb{100, 100, 100}
	rule     = rgb{200, 200, 200}
)

// Cursor is the vertical layout position threaded through the blocks.
// Every block starts at a cursor and returns the cursor it ends at.
type Cursor struct {
	Y float64
}

// Down advances the cursor.
func (c Cursor) Down(dy float64) Cursor {
	return Cursor{Y: c.Y + dy}
}

// Lowest returns the cursor furthest down the page.
func Lowest(cursors ...Cursor) Cursor {
	low := Cursor{}
	for i, c := range cursors {
		if i == 0 || c.Y > low.Y {
			low = c
		}
	}
	return low
}

// column is a label/colon/value triple of x offsets.
type column struct {
	label, colon, value float64
}

var (
	leftColumn  = column{label: 15, colon: 55, value: 58}
	rightColumn = column{label: 130, colon: 155, value: 158}
)

// page wraps the PDF with absolute-position text helpers.
type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPage(pdf *gofpdf.Fpdf) *page {
	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *page) font(style string, size float64, color rgb) {
	p.pdf.SetFont(fontFamily, style, size)
	p.pdf.SetTextColor(color.r, color.g, color.b)
}

func (p *page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(latin1(s)))
}

func (p *page) textRight(x, y float64, s string) {
	s = p.tr(latin1(s))
	p.pdf.Text(x-p.pdf.GetStringWidth(s), y, s)
}

func (p *page) textCenter(x, y float64, s string) {
	s = p.tr(latin1(s))
	p.pdf.Text(x-p.pdf.GetStringWidth(s)/2, y, s)
}

// wrap splits s to fit width at the current font; it always returns at least one line.
func (p *page) wrap(s string, width float64) []string {
	lines := p.pdf.SplitText(latin1(s), width)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// textLines prints lines downwards from y and returns the height used.
func (p *page) textLines(x, y float64, lines []string, step float64) float64 {
	for i, line := range lines {
		p.text(x, y+float64(i)*step, line)
	}
	return float64(len(lines)) * step
}

func (p *page) hrule(y, width float64, color rgb) {
	p.pdf.SetLineWidth(width)
	p.pdf.SetDrawColor(color.r, color.g, color.b)
	p.pdf.Line(marginLeft, y, marginRight, y)
}

// field prints "label : value" in a column at y.
func (p *page) field(col column, y float64, label, value string) {
	p.text(col.label, y, label)
	p.text(col.colon, y, ":")
	p.text(col.value, y, value)
}
