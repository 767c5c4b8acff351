package export

// Units are PDF points. Vertical positions are measured from the bottom edge
// of the page, the way the layout is specified on paper.
const inch = 72.0

const (
	fontRegular = ""
	fontBold    = "B"
)

// Column is one labelled column of the PDF table
type Column struct {
	Title string
	X     float64
}

// Layout is the fixed geometry of the PDF report
type Layout struct {
	PageWidth  float64
	PageHeight float64
	// Margin is the left margin and the bottom limit of the row area
	Margin    float64
	RowHeight float64
	Title     string
	Columns   []Column
	// RuleStart and RuleEnd bound the line under the column header
	RuleStart float64
	RuleEnd   float64
	// SummaryReserve is the space needed below the last row for the summary
	SummaryReserve float64
	SummaryGap     float64
	// NameWidth and StatusWidth cap the characters drawn for those columns
	NameWidth   int
	StatusWidth int
	// RepeatColumnHeader redraws the column header on continuation pages
	RepeatColumnHeader bool
}

// LetterLayout is the report layout on US letter paper
func LetterLayout() Layout {
	return Layout{
		PageWidth:  8.5 * inch,
		PageHeight: 11 * inch,
		Margin:     inch,
		RowHeight:  0.25 * inch,
		Title:      "REPORTE DE VENTAS",
		Columns: []Column{
			{Title: "ID", X: 0.5 * inch},
			{Title: "Fecha", X: 1 * inch},
			{Title: "Cliente", X: 2.5 * inch},
			{Title: "Monto", X: 4.5 * inch},
			{Title: "Estado", X: 5.8 * inch},
		},
		RuleStart:      0.5 * inch,
		RuleEnd:        7.5 * inch,
		SummaryReserve: 1.5 * inch,
		SummaryGap:     0.3 * inch,
		NameWidth:      20,
		StatusWidth:    15,
	}
}

func (l Layout) titleY() float64 {
	return l.PageHeight - l.Margin
}

func (l Layout) generatedY() float64 {
	return l.PageHeight - 1.3*inch
}

func (l Layout) headerY() float64 {
	return l.PageHeight - 1.8*inch
}

func (l Layout) ruleY() float64 {
	return l.headerY() - 0.1*inch
}

// bodyTop is where the first row of every page is drawn
func (l Layout) bodyTop() float64 {
	return l.headerY() - 0.3*inch
}

// needsBreak reports whether a row drawn at y would fall into the bottom margin
func (l Layout) needsBreak(y float64) bool {
	return y < l.Margin
}

// RowsPerPage is the number of data rows one page holds
func (l Layout) RowsPerPage() int {
	n := 0
	for y := l.bodyTop(); !l.needsBreak(y); y -= l.RowHeight {
		n++
	}
	return n
}

// canvas is the drawing surface the paginator writes to
type canvas interface {
	AddPage()
	SetFont(style string, size float64)
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
}
