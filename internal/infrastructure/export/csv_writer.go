package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/ecommerce/backoffice/internal/domain/report"
)

// CSVHeader is the column order of the CSV report
var CSVHeader = []string{
	"ID_Venta",
	"Fecha",
	"Cliente",
	"Email",
	"Monto_Total",
	"Estado",
	"Detalle_Productos",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVRenderer writes report rows as CSV
type CSVRenderer struct {
	delimiter rune
	bom       bool
}

// CSVOption is a functional option for CSVRenderer configuration
type CSVOption func(*CSVRenderer)

// WithCSVDelimiter sets the field delimiter (default is comma)
func WithCSVDelimiter(d rune) CSVOption {
	return func(r *CSVRenderer) {
		r.delimiter = d
	}
}

// WithUTF8BOM prefixes the output with a byte order mark for spreadsheet tools
func WithUTF8BOM(enabled bool) CSVOption {
	return func(r *CSVRenderer) {
		r.bom = enabled
	}
}

// NewCSVRenderer creates a CSVRenderer
func NewCSVRenderer(opts ...CSVOption) *CSVRenderer {
	r := &CSVRenderer{delimiter: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render streams the header and one record per row into w
func (r *CSVRenderer) Render(w io.Writer, rows iter.Seq[report.Row]) error {
	if r.bom {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("write csv bom: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	cw.Comma = r.delimiter

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for row := range rows {
		if err := cw.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvRecord(row report.Row) []string {
	return []string{
		strconv.FormatInt(row.ID, 10),
		row.Timestamp(),
		row.CustomerName,
		row.CustomerEmail,
		row.TotalAmount.Fixed(),
		row.Status,
		row.ProductSummary,
	}
}
