package export

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

const generatedLayout = "2006-01-02 15:04:05"

// PDFRenderer paginates report rows onto fixed-layout pages
type PDFRenderer struct {
	layout Layout
	now    func() time.Time
	loc    *time.Location
	author string
}

// PDFOption is a functional option for PDFRenderer configuration
type PDFOption func(*PDFRenderer)

// WithLayout replaces the page layout
func WithLayout(l Layout) PDFOption {
	return func(r *PDFRenderer) {
		r.layout = l
	}
}

// WithRepeatColumnHeader draws the column header on continuation pages
func WithRepeatColumnHeader(enabled bool) PDFOption {
	return func(r *PDFRenderer) {
		r.layout.RepeatColumnHeader = enabled
	}
}

// WithClock sets the source of the "generated at" timestamp
func WithClock(now func() time.Time) PDFOption {
	return func(r *PDFRenderer) {
		r.now = now
	}
}

// WithLocation sets the time zone of the "generated at" timestamp
func WithLocation(loc *time.Location) PDFOption {
	return func(r *PDFRenderer) {
		r.loc = loc
	}
}

// WithAuthor sets the document author metadata
func WithAuthor(author string) PDFOption {
	return func(r *PDFRenderer) {
		r.author = author
	}
}

// NewPDFRenderer creates a PDFRenderer on letter paper
func NewPDFRenderer(opts ...PDFOption) *PDFRenderer {
	r := &PDFRenderer{
		layout: LetterLayout(),
		now:    time.Now,
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Layout returns the page layout in use
func (r *PDFRenderer) Layout() Layout {
	return r.layout
}

// Render draws every row and the summary line, then writes the document to w
func (r *PDFRenderer) Render(w io.Writer, rows iter.Seq[report.Row]) error {
	generated := r.now().In(r.loc)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: r.layout.PageWidth, Ht: r.layout.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(r.layout.Title, true)
	if r.author != "" {
		pdf.SetAuthor(r.author, true)
	}
	pdf.SetCreationDate(generated)
	pdf.SetModificationDate(generated)

	r.draw(newFpdfCanvas(pdf, r.layout.PageHeight), generated, rows)

	if pdf.Err() {
		return fmt.Errorf("draw pdf report: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

// draw lays out the report and returns the number of rows drawn
func (r *PDFRenderer) draw(c canvas, generated time.Time, rows iter.Seq[report.Row]) int {
	l := r.layout

	c.AddPage()
	c.SetFont(fontBold, 16)
	c.Text(l.Margin, l.titleY(), l.Title)
	c.SetFont(fontRegular, 10)
	c.Text(l.Margin, l.generatedY(), "Generado: "+generated.Format(generatedLayout))
	r.drawColumnHeader(c)

	c.SetFont(fontRegular, 8)
	y := l.bodyTop()
	count := 0
	for row := range rows {
		if l.needsBreak(y) {
			r.newPage(c)
			c.SetFont(fontRegular, 8)
			// Rows restart at the first page's body top so every page holds
			// RowsPerPage rows. The title and column header band above stays
			// blank unless RepeatColumnHeader is set.
			y = l.bodyTop()
		}
		r.drawRow(c, y, row)
		y -= l.RowHeight
		count++
	}

	c.SetFont(fontBold, 10)
	if y < l.SummaryReserve {
		r.newPage(c)
		c.SetFont(fontBold, 10)
		y = l.bodyTop()
	}
	y -= l.SummaryGap
	c.Text(l.Margin, y, "Total de ventas: "+strconv.Itoa(count))

	return count
}

func (r *PDFRenderer) newPage(c canvas) {
	c.AddPage()
	if r.layout.RepeatColumnHeader {
		r.drawColumnHeader(c)
	}
}

func (r *PDFRenderer) drawColumnHeader(c canvas) {
	l := r.layout
	c.SetFont(fontBold, 9)
	for _, col := range l.Columns {
		c.Text(col.X, l.headerY(), col.Title)
	}
	c.Line(l.RuleStart, l.ruleY(), l.RuleEnd, l.ruleY())
}

func (r *PDFRenderer) drawRow(c canvas, y float64, row report.Row) {
	values := pdfCells(row, r.layout)
	for i, col := range r.layout.Columns {
		if i < len(values) {
			c.Text(col.X, y, values[i])
		}
	}
}

// pdfCells returns the drawn values in column order
func pdfCells(row report.Row, l Layout) []string {
	return []string{
		strconv.FormatInt(row.ID, 10),
		row.Day(),
		truncateRunes(row.CustomerName, l.NameWidth),
		row.TotalAmount.Currency(),
		truncateRunes(row.Status, l.StatusWidth),
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// fpdfCanvas draws on an fpdf document, flipping y to fpdf's top-left origin.
// Text is encoded to cp1252, the encoding of the core Helvetica font.
type fpdfCanvas struct {
	pdf     *fpdf.Fpdf
	height  float64
	encoder *encoding.Encoder
}

func newFpdfCanvas(pdf *fpdf.Fpdf, height float64) *fpdfCanvas {
	return &fpdfCanvas{
		pdf:     pdf,
		height:  height,
		encoder: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
}

func (c *fpdfCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *fpdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *fpdfCanvas) Text(x, y float64, s string) {
	c.pdf.Text(x, c.height-y, c.encode(s))
}

func (c *fpdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.height-y1, x2, c.height-y2)
}

func (c *fpdfCanvas) encode(s string) string {
	out, err := c.encoder.String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "?")
	}
	return out
}
