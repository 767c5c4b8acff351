package report

import (
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/domain/sales"
	"go.uber.org/zap"
)

// SchemaAdapter normalizes sale records of either shape into report rows.
// Normalization never fails; missing values become report.NotAvailable.
type SchemaAdapter struct {
	loc    *time.Location
	logger *zap.Logger
}

// NewSchemaAdapter creates a SchemaAdapter rendering dates in loc
func NewSchemaAdapter(loc *time.Location, logger *zap.Logger) *SchemaAdapter {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaAdapter{loc: loc, logger: logger}
}

// Normalize builds the report row of one sale
func (a *SchemaAdapter) Normalize(sale *sales.Sale) report.Row {
	shape := sale.ResolveShape()
	name, email := a.resolveCustomer(sale)

	row := report.Row{
		ID:             sale.ID,
		CustomerName:   name,
		CustomerEmail:  email,
		TotalAmount:    resolveTotal(sale),
		Status:         orNotAvailable(sale.Status),
		ProductSummary: summarizeProducts(shape),
	}
	if !sale.CreatedAt.IsZero() {
		row.Date = sale.CreatedAt.In(a.loc)
	} else {
		a.fallback(sale, "created_at")
	}
	if !row.TotalAmount.Valid() {
		a.fallback(sale, "total_amount")
	}
	return row
}

// Rows lazily normalizes records in order. Each row is built when the
// consumer asks for it and is not retained.
func (a *SchemaAdapter) Rows(records []sales.Sale) iter.Seq[report.Row] {
	return func(yield func(report.Row) bool) {
		for i := range records {
			if !yield(a.Normalize(&records[i])) {
				return
			}
		}
	}
}

func (a *SchemaAdapter) resolveCustomer(sale *sales.Sale) (string, string) {
	if sale.Customer == nil {
		a.fallback(sale, "customer")
		return report.NotAvailable, report.NotAvailable
	}
	name := strings.TrimSpace(sale.Customer.FirstName + " " + sale.Customer.LastName)
	return orNotAvailable(name), orNotAvailable(sale.Customer.Email)
}

func (a *SchemaAdapter) fallback(sale *sales.Sale, field string) {
	a.logger.Debug("Sale field unavailable, using sentinel",
		zap.Int64("sale_id", sale.ID),
		zap.String("field", field),
	)
}

// resolveTotal reads the current money field, then the legacy one
func resolveTotal(sale *sales.Sale) report.Amount {
	if amount, ok := report.CoerceAmount(sale.TotalAmount); ok {
		return amount
	}
	if amount, ok := report.CoerceAmount(sale.Total); ok {
		return amount
	}
	return report.UnavailableAmount()
}

func summarizeProducts(shape sales.Shape) string {
	switch shape.Variant {
	case sales.VariantDetailedLineItems, sales.VariantSingleProduct:
		if len(shape.Items) == 0 {
			return report.NotAvailable
		}
		parts := make([]string, 0, len(shape.Items))
		for _, item := range shape.Items {
			parts = append(parts, orNotAvailable(item.ProductName())+" ("+strconv.Itoa(item.Quantity)+"x)")
		}
		return strings.Join(parts, ", ")
	default:
		return report.NotAvailable
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return report.NotAvailable
	}
	return s
}
