package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestSale_ResolveShape(t *testing.T) {
	t.Run("detailed sale exposes its line items", func(t *testing.T) {
		sale := &Sale{
			ID: 1,
			Details: []LineItem{
				{Product: &Product{Name: "Blue Shirt"}, Quantity: 2},
				{Product: &Product{Name: "Red Shirt"}, Quantity: 1},
			},
			Product:  &Product{Name: "ignored"},
			Quantity: intPtr(9),
		}

		shape := sale.ResolveShape()
		assert.Equal(t, VariantDetailedLineItems, shape.Variant)
		assert.Len(t, shape.Items, 2)
		assert.Equal(t, "Blue Shirt", shape.Items[0].ProductName())
	})

	t.Run("empty detail collection still counts as detailed", func(t *testing.T) {
		sale := &Sale{ID: 2, Details: []LineItem{}}

		shape := sale.ResolveShape()
		assert.Equal(t, VariantDetailedLineItems, shape.Variant)
		assert.Empty(t, shape.Items)
	})

	t.Run("single product sale yields one item", func(t *testing.T) {
		sale := &Sale{ID: 3, Product: &Product{Name: "Mug"}, Quantity: intPtr(3)}

		shape := sale.ResolveShape()
		assert.Equal(t, VariantSingleProduct, shape.Variant)
		assert.Equal(t, []LineItem{{Product: &Product{Name: "Mug"}, Quantity: 3}}, shape.Items)
	})

	t.Run("product without quantity is unknown", func(t *testing.T) {
		sale := &Sale{ID: 4, Product: &Product{Name: "Mug"}}

		shape := sale.ResolveShape()
		assert.Equal(t, VariantUnknown, shape.Variant)
		assert.Nil(t, shape.Items)
	})
}

func TestSchemaVariant_String(t *testing.T) {
	assert.Equal(t, "DetailedLineItems", VariantDetailedLineItems.String())
	assert.Equal(t, "SingleProduct", VariantSingleProduct.String())
	assert.Equal(t, "Unknown", VariantUnknown.String())
}

func TestLineItem_ProductName(t *testing.T) {
	assert.Equal(t, "", LineItem{Quantity: 1}.ProductName())
	assert.Equal(t, "Hat", LineItem{Product: &Product{Name: "Hat"}}.ProductName())
}
