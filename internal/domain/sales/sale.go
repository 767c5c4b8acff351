package sales

import (
	"context"
	"time"
)

// Customer is the buyer a sale references, if any
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Product is the catalog entry a line item points to
type Product struct {
	Name string `json:"name"`
}

// LineItem is one product/quantity entry of a detailed sale
type LineItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// ProductName returns the item's product name, empty when the product is missing
func (i LineItem) ProductName() string {
	if i.Product == nil {
		return ""
	}
	return i.Product.Name
}

// Sale is a read-only sale record as handed over by a record source.
// Records follow one of two shapes: a detailed sale carries Details, a
// single-product sale carries Product and Quantity. TotalAmount and Total hold
// the money figure under its current and legacy names, in whatever type the
// source produced (decimal.Decimal, float64, int64, string, json.Number...).
type Sale struct {
	ID          int64      `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Customer    *Customer  `json:"customer,omitempty"`
	Status      string     `json:"status,omitempty"`
	TotalAmount any        `json:"total_amount,omitempty"`
	Total       any        `json:"total,omitempty"`
	Details     []LineItem `json:"details,omitempty"`
	Product     *Product   `json:"product,omitempty"`
	Quantity    *int       `json:"quantity,omitempty"`
}

// SchemaVariant classifies the line-item shape of a sale
type SchemaVariant int

const (
	VariantUnknown SchemaVariant = iota
	VariantDetailedLineItems
	VariantSingleProduct
)

// String returns the variant name
func (v SchemaVariant) String() string {
	switch v {
	case VariantDetailedLineItems:
		return "DetailedLineItems"
	case VariantSingleProduct:
		return "SingleProduct"
	default:
		return "Unknown"
	}
}

// Shape is the resolved variant of a sale together with its line items in a
// uniform form. SingleProduct sales expose exactly one item, Unknown sales none.
type Shape struct {
	Variant SchemaVariant
	Items   []LineItem
}

// ResolveShape inspects the line-item collection first, then the
// product/quantity pair. The result is meant to be computed once per record.
func (s *Sale) ResolveShape() Shape {
	if s.Details != nil {
		return Shape{Variant: VariantDetailedLineItems, Items: s.Details}
	}
	if s.Product != nil && s.Quantity != nil {
		return Shape{
			Variant: VariantSingleProduct,
			Items:   []LineItem{{Product: s.Product, Quantity: *s.Quantity}},
		}
	}
	return Shape{Variant: VariantUnknown}
}

// SaleReader is the read-only record source consumed by the report exporter
type SaleReader interface {
	// FindAll returns every sale visible to the report, read as one consistent snapshot
	FindAll(ctx context.Context) ([]Sale, error)
}
