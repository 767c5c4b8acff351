package models

import (
	"time"

	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// UserModel is the buyer account a sale belongs to
type UserModel struct {
	ID        int64  `gorm:"primaryKey"`
	FirstName string `gorm:"type:varchar(150);not null;default:''"`
	LastName  string `gorm:"type:varchar(150);not null;default:''"`
	Email     string `gorm:"type:varchar(254);not null;default:''"`
	IsStaff   bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ProductModel is a catalog product referenced by sales
type ProductModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// SaleModel maps the sales table. Older rows carry the money figure in Total
// and reference a single product directly; newer rows use TotalAmount and
// sale_details.
type SaleModel struct {
	ID          int64               `gorm:"primaryKey"`
	UserID      *int64              `gorm:"index"`
	User        *UserModel          `gorm:"foreignKey:UserID"`
	CreatedAt   time.Time           `gorm:"not null;index:idx_sales_created_at,sort:desc"`
	Status      string              `gorm:"type:varchar(50);not null;default:''"`
	TotalAmount decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Total       decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	ProductID   *int64
	Product     *ProductModel     `gorm:"foreignKey:ProductID"`
	Quantity    *int
	Details     []SaleDetailModel `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleDetailModel is one line item of a detailed sale
type SaleDetailModel struct {
	ID        int64 `gorm:"primaryKey"`
	SaleID    int64 `gorm:"not null;index"`
	ProductID *int64
	Product   *ProductModel       `gorm:"foreignKey:ProductID"`
	Quantity  int                 `gorm:"not null;default:1"`
	UnitPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
}

// TableName returns the table name for GORM
func (SaleDetailModel) TableName() string {
	return "sale_details"
}

// ToDomain converts the model to a sale record. Details are only attached
// when the sale has detail rows, so sales without them resolve through the
// product/quantity pair.
func (m *SaleModel) ToDomain() sales.Sale {
	sale := sales.Sale{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		Status:    m.Status,
		Quantity:  m.Quantity,
	}
	if m.User != nil {
		sale.Customer = &sales.Customer{
			FirstName: m.User.FirstName,
			LastName:  m.User.LastName,
			Email:     m.User.Email,
		}
	}
	if m.TotalAmount.Valid {
		sale.TotalAmount = m.TotalAmount.Decimal
	}
	if m.Total.Valid {
		sale.Total = m.Total.Decimal
	}
	if m.Product != nil {
		sale.Product = &sales.Product{Name: m.Product.Name}
	}
	if len(m.Details) > 0 {
		sale.Details = make([]sales.LineItem, 0, len(m.Details))
		for _, d := range m.Details {
			item := sales.LineItem{Quantity: d.Quantity}
			if d.Product != nil {
				item.Product = &sales.Product{Name: d.Product.Name}
			}
			sale.Details = append(sale.Details, item)
		}
	}
	return sale
}
