package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/ecommerce/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRepository reads sale records for the report exporter
type GormSaleRepository struct {
	db     *gorm.DB
	txOpts *sql.TxOptions
}

// NewGormSaleRepository creates a GormSaleRepository. On postgres the read
// runs at repeatable read so the sales and their preloaded relations come
// from one snapshot.
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	opts := &sql.TxOptions{ReadOnly: true}
	if db.Dialector.Name() == "postgres" {
		opts.Isolation = sql.LevelRepeatableRead
	}
	return &GormSaleRepository{db: db, txOpts: opts}
}

// FindAll loads every sale with its customer, product and detail rows,
// newest first
func (r *GormSaleRepository) FindAll(ctx context.Context) ([]sales.Sale, error) {
	var rows []models.SaleModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Preload("User").
			Preload("Product").
			Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("sale_details.id") }).
			Preload("Details.Product").
			Order("created_at DESC").
			Order("id DESC").
			Find(&rows).Error
	}, r.txOpts)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	result := make([]sales.Sale, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].ToDomain())
	}
	return result, nil
}

var _ sales.SaleReader = (*GormSaleRepository)(nil)
