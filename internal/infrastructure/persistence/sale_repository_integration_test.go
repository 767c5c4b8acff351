//go:build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/ecommerce/backoffice/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	path, err := migration.ResolvePath("../../../migrations")
	require.NoError(t, err)
	m, err := migration.New(sqlDB, path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	return db
}

func TestGormSaleRepository_Postgres(t *testing.T) {
	db := newPostgresDB(t)

	stmts := []string{
		`INSERT INTO users (id, first_name, last_name, email) VALUES (1, 'Ana', 'Torres', 'ana@example.com')`,
		`INSERT INTO products (id, name) VALUES (1, 'Blue Shirt'), (2, 'Coffee Mug')`,
		`INSERT INTO sales (id, user_id, created_at, status, total_amount) VALUES (1, 1, '2024-01-05 10:00:00+00', 'paid', 100.00)`,
		`INSERT INTO sale_details (sale_id, product_id, quantity, unit_price) VALUES (1, 1, 2, 50.00)`,
		`INSERT INTO sales (id, created_at, status, total, product_id, quantity) VALUES (2, '2024-01-20 09:00:00+00', 'pending', 99.99, 2, 3)`,
	}
	for _, s := range stmts {
		require.NoError(t, db.Exec(s).Error)
	}

	got, err := NewGormSaleRepository(db).FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, sales.VariantSingleProduct, got[0].ResolveShape().Variant)
	assert.Equal(t, sales.VariantDetailedLineItems, got[1].ResolveShape().Variant)
	assert.Equal(t, "Ana", got[1].Customer.FirstName)
}
