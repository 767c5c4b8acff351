package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/ecommerce/backoffice/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSaleTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ProductModel{},
		&models.SaleModel{},
		&models.SaleDetailModel{},
	))
	return db
}

func seedSales(t *testing.T, db *gorm.DB) {
	t.Helper()
	ana := models.UserModel{ID: 1, FirstName: "Ana", LastName: "Torres", Email: "ana@example.com"}
	shirt := models.ProductModel{ID: 1, Name: "Blue Shirt"}
	mug := models.ProductModel{ID: 2, Name: "Coffee Mug"}
	require.NoError(t, db.Create(&ana).Error)
	require.NoError(t, db.Create(&[]models.ProductModel{shirt, mug}).Error)

	qty := 3
	userID := ana.ID
	mugID := mug.ID
	shirtID := shirt.ID
	rows := []models.SaleModel{
		{
			ID: 1, UserID: &userID, Status: "paid",
			CreatedAt:   time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
			TotalAmount: decimal.NewNullDecimal(decimal.RequireFromString("100.00")),
			Details: []models.SaleDetailModel{
				{ProductID: &shirtID, Quantity: 2},
				{ProductID: &mugID, Quantity: 1},
			},
		},
		{
			ID: 2, Status: "pending",
			CreatedAt: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
			Total:     decimal.NewNullDecimal(decimal.RequireFromString("99.99")),
			ProductID: &mugID, Quantity: &qty,
		},
		{
			ID: 3, Status: "cancelled",
			CreatedAt: time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func TestGormSaleRepository_FindAll(t *testing.T) {
	db := setupSaleTestDB(t)
	seedSales(t, db)
	repo := NewGormSaleRepository(db)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	t.Run("newest first with id tiebreak", func(t *testing.T) {
		assert.Equal(t, []int64{3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("detailed sale carries its line items", func(t *testing.T) {
		detailed := got[2]
		require.NotNil(t, detailed.Customer)
		assert.Equal(t, "Ana", detailed.Customer.FirstName)

		shape := detailed.ResolveShape()
		assert.Equal(t, sales.VariantDetailedLineItems, shape.Variant)
		require.Len(t, shape.Items, 2)
		assert.Equal(t, "Blue Shirt", shape.Items[0].ProductName())
		assert.Equal(t, 2, shape.Items[0].Quantity)

		amount, ok := detailed.TotalAmount.(decimal.Decimal)
		require.True(t, ok)
		assert.Equal(t, "100.00", amount.StringFixed(2))
	})

	t.Run("single product sale keeps the legacy total", func(t *testing.T) {
		single := got[1]
		assert.Nil(t, single.Customer)
		assert.Nil(t, single.TotalAmount)
		assert.Equal(t, sales.VariantSingleProduct, single.ResolveShape().Variant)
		assert.Equal(t, "99.99", single.Total.(decimal.Decimal).StringFixed(2))
	})

	t.Run("sale without products is unknown", func(t *testing.T) {
		assert.Equal(t, sales.VariantUnknown, got[0].ResolveShape().Variant)
	})
}

func TestGormSaleRepository_FindAll_Empty(t *testing.T) {
	repo := NewGormSaleRepository(setupSaleTestDB(t))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGormSaleRepository_FindAll_QueryFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "sales" ORDER BY created_at DESC,\s*id DESC`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	repo := NewGormSaleRepository(db)
	assert.Equal(t, "postgres", db.Dialector.Name())

	_, err = repo.FindAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}
