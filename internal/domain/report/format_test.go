package report

import (
	"errors"
	"testing"

	"github.com/ecommerce/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Run("defaults to csv", func(t *testing.T) {
		f, err := ParseFormat("")
		require.NoError(t, err)
		assert.Equal(t, FormatCSV, f)
	})

	t.Run("is case insensitive", func(t *testing.T) {
		f, err := ParseFormat("PDF")
		require.NoError(t, err)
		assert.Equal(t, FormatPDF, f)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		_, err := ParseFormat("xml")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrUnsupportedFormat))
		assert.Equal(t, "Formato no soportado. Usa format=csv o format=pdf.", err.Error())
	})
}

func TestFormat_Metadata(t *testing.T) {
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t, "reporte_ventas_filtrado.csv", FormatCSV.Filename())
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "reporte_ventas.pdf", FormatPDF.Filename())
}
