package export

import (
	"bytes"
	"encoding/csv"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triple struct {
	id, total, status string
}

func TestFormatParity(t *testing.T) {
	rows := append(sampleRows(), makeRows(40)...)

	var buf bytes.Buffer
	require.NoError(t, NewCSVRenderer().Render(&buf, slices.Values(rows)))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	var fromCSV []triple
	for _, rec := range records[1:] {
		fromCSV = append(fromCSV, triple{id: rec[0], total: rec[4], status: rec[5]})
	}

	c := newRecordingCanvas()
	layout := LetterLayout()
	count := NewPDFRenderer().draw(c, fixedNow, slices.Values(rows))

	// group drawn cells by page and baseline to rebuild the table rows
	type key struct {
		page int
		y    float64
	}
	cells := map[key]map[float64]string{}
	var order []key
	for _, op := range c.texts {
		if op.size != 8 {
			continue
		}
		k := key{op.page, op.y}
		if cells[k] == nil {
			cells[k] = map[float64]string{}
			order = append(order, k)
		}
		cells[k][op.x] = op.text
	}

	var fromPDF []triple
	for _, k := range order {
		row := cells[k]
		fromPDF = append(fromPDF, triple{
			id:     row[layout.Columns[0].X],
			total:  strings.TrimPrefix(row[layout.Columns[3].X], "$"),
			status: row[layout.Columns[4].X],
		})
	}

	assert.Equal(t, len(records)-1, count)
	assert.Equal(t, fromCSV, fromPDF)
}
