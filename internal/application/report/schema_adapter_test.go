package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSchemaAdapter_Normalize(t *testing.T) {
	a := NewSchemaAdapter(time.UTC, zap.NewNop())
	fixture := salesFixture()

	t.Run("detailed sale", func(t *testing.T) {
		row := a.Normalize(&fixture[0])

		assert.Equal(t, int64(1), row.ID)
		assert.Equal(t, "2024-01-05 12:00:00", row.Timestamp())
		assert.Equal(t, "Ana Torres", row.CustomerName)
		assert.Equal(t, "ana@example.com", row.CustomerEmail)
		assert.Equal(t, "100.00", row.TotalAmount.Fixed())
		assert.Equal(t, "paid", row.Status)
		assert.Equal(t, "Blue Shirt (2x), Red Shirt (1x)", row.ProductSummary)
	})

	t.Run("single product sale", func(t *testing.T) {
		row := a.Normalize(&fixture[1])
		assert.Equal(t, "Coffee Mug (3x)", row.ProductSummary)
		assert.Equal(t, "250.50", row.TotalAmount.Fixed())
	})

	t.Run("legacy total is used when the primary field is missing", func(t *testing.T) {
		row := a.Normalize(&fixture[2])
		assert.Equal(t, "99.99", row.TotalAmount.Fixed())
		assert.Equal(t, report.NotAvailable, row.ProductSummary)
	})

	t.Run("absent customer and unusable money degrade to sentinels", func(t *testing.T) {
		row := a.Normalize(&fixture[3])
		assert.Equal(t, report.NotAvailable, row.CustomerName)
		assert.Equal(t, report.NotAvailable, row.CustomerEmail)
		assert.Equal(t, report.NotAvailable, row.TotalAmount.Fixed())
		assert.False(t, row.TotalAmount.Valid())
	})

	t.Run("primary field wins over the legacy one", func(t *testing.T) {
		row := a.Normalize(&sales.Sale{ID: 9, TotalAmount: json.Number("5"), Total: "7"})
		assert.Equal(t, "5.00", row.TotalAmount.Fixed())
	})

	t.Run("non numeric primary falls back to legacy", func(t *testing.T) {
		row := a.Normalize(&sales.Sale{ID: 9, TotalAmount: "N/A", Total: int64(7)})
		assert.Equal(t, "7.00", row.TotalAmount.Fixed())
	})

	t.Run("empty record", func(t *testing.T) {
		row := a.Normalize(&sales.Sale{})
		assert.Equal(t, report.Row{
			CustomerName:   report.NotAvailable,
			CustomerEmail:  report.NotAvailable,
			TotalAmount:    report.UnavailableAmount(),
			Status:         report.NotAvailable,
			ProductSummary: report.NotAvailable,
		}, row)
		assert.Equal(t, report.NotAvailable, row.Timestamp())
	})

	t.Run("partial customer", func(t *testing.T) {
		row := a.Normalize(&sales.Sale{Customer: &sales.Customer{LastName: "Solo"}})
		assert.Equal(t, "Solo", row.CustomerName)
		assert.Equal(t, report.NotAvailable, row.CustomerEmail)

		row = a.Normalize(&sales.Sale{Customer: &sales.Customer{}})
		assert.Equal(t, report.NotAvailable, row.CustomerName)
	})

	t.Run("empty or incomplete line items", func(t *testing.T) {
		row := a.Normalize(&sales.Sale{Details: []sales.LineItem{}})
		assert.Equal(t, report.NotAvailable, row.ProductSummary)

		row = a.Normalize(&sales.Sale{Details: []sales.LineItem{{Quantity: 2}}})
		assert.Equal(t, "N/A (2x)", row.ProductSummary)
	})
}

func TestSchemaAdapter_RendersDatesInLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	a := NewSchemaAdapter(loc, nil)

	row := a.Normalize(&sales.Sale{CreatedAt: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)})
	assert.Equal(t, "2023-12-31 22:00:00", row.Timestamp())
}

func TestSchemaAdapter_LogsFallbacks(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	a := NewSchemaAdapter(time.UTC, zap.New(core))

	a.Normalize(&sales.Sale{ID: 42, CreatedAt: day(2024, time.May, 1)})

	fields := make([]string, 0)
	for _, entry := range logs.All() {
		assert.Equal(t, int64(42), entry.ContextMap()["sale_id"])
		fields = append(fields, entry.ContextMap()["field"].(string))
	}
	assert.ElementsMatch(t, []string{"customer", "total_amount"}, fields)
}

func TestSchemaAdapter_RowsIsLazy(t *testing.T) {
	a := NewSchemaAdapter(time.UTC, nil)
	fixture := salesFixture()

	var got []int64
	for row := range a.Rows(fixture) {
		got = append(got, row.ID)
		if len(got) == 2 {
			break
		}
	}
	require.Len(t, got, 2)
	assert.Equal(t, []int64{1, 2}, got)
}
