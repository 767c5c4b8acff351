package report

import (
	"time"

	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// salesFixture mixes both record shapes and both money fields
func salesFixture() []sales.Sale {
	return []sales.Sale{
		{
			ID:          1,
			CreatedAt:   day(2024, time.January, 5),
			Customer:    &sales.Customer{FirstName: "Ana", LastName: "Torres", Email: "ana@example.com"},
			Status:      "paid",
			TotalAmount: decimal.RequireFromString("100.00"),
			Details: []sales.LineItem{
				{Product: &sales.Product{Name: "Blue Shirt"}, Quantity: 2},
				{Product: &sales.Product{Name: "Red Shirt"}, Quantity: 1},
			},
		},
		{
			ID:          2,
			CreatedAt:   day(2024, time.January, 20),
			Customer:    &sales.Customer{FirstName: "Luis", LastName: "Mariana", Email: "luis@example.com"},
			Status:      "pending",
			TotalAmount: "250.50",
			Product:     &sales.Product{Name: "Coffee Mug"},
			Quantity:    intPtr(3),
		},
		{
			ID:        3,
			CreatedAt: day(2024, time.February, 1),
			Customer:  &sales.Customer{FirstName: "Pedro", LastName: "Diaz", Email: "SANTANA@example.com"},
			Status:    "paid",
			Total:     99.99,
		},
		{
			ID:          4,
			CreatedAt:   day(2023, time.December, 31),
			Status:      "cancelled",
			TotalAmount: "not a number",
		},
	}
}
