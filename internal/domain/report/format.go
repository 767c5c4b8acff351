package report

import (
	"strings"

	"github.com/ecommerce/backoffice/internal/domain/shared"
)

// Format is an export serialization
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// DefaultFormat is used when the caller does not pick one
const DefaultFormat = FormatCSV

// ParseFormat lower-cases raw and checks it against the supported formats.
// An empty value selects DefaultFormat.
func ParseFormat(raw string) (Format, error) {
	if raw == "" {
		return DefaultFormat, nil
	}
	switch f := Format(strings.ToLower(raw)); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", shared.ErrUnsupportedFormat
	}
}

// ContentType returns the MIME type of the payload
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Filename returns the attachment filename of the payload
func (f Format) Filename() string {
	if f == FormatPDF {
		return "reporte_ventas.pdf"
	}
	return "reporte_ventas_filtrado.csv"
}
