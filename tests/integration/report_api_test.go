//go:build integration

package integration

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	reportapp "github.com/ecommerce/backoffice/internal/application/report"
	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/infrastructure/auth"
	"github.com/ecommerce/backoffice/internal/infrastructure/config"
	"github.com/ecommerce/backoffice/internal/infrastructure/export"
	"github.com/ecommerce/backoffice/internal/infrastructure/persistence"
	"github.com/ecommerce/backoffice/internal/interfaces/http/handler"
	"github.com/ecommerce/backoffice/internal/interfaces/http/middleware"
	"github.com/ecommerce/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ReportTestServer wires the export pipeline on top of the test database
type ReportTestServer struct {
	DB         *TestDB
	Engine     *gin.Engine
	JWTService *auth.JWTService
}

func NewReportTestServer(t *testing.T) *ReportTestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	testDB := NewSharedTestDB(t)
	testDB.Truncate(t)

	exportService := reportapp.NewExportService(
		persistence.NewGormSaleRepository(testDB.DB),
		reportapp.NewQueryBuilder(time.UTC),
		reportapp.NewSchemaAdapter(time.UTC, zap.NewNop()),
		map[report.Format]reportapp.RowRenderer{
			report.FormatCSV: export.NewCSVRenderer(),
			report.FormatPDF: export.NewPDFRenderer(export.WithLocation(time.UTC)),
		},
	)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "integration-secret-key-at-least-32-chars",
		Issuer:                "backoffice-it",
		AccessTokenExpiration: 5 * time.Minute,
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.NewRouter(engine, router.WithAlias("/api")).
		Register(handler.ReportRoutes(
			handler.NewReportHandler(exportService, nil),
			middleware.JWTAuth(middleware.JWTMiddlewareConfig{
				Validator:   jwtService,
				Revocations: auth.NewMemoryRevocationStore(),
			}),
		)).
		Setup()

	return &ReportTestServer{DB: testDB, Engine: engine, JWTService: jwtService}
}

func (s *ReportTestServer) get(t *testing.T, target string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	token, _, err := s.JWTService.GenerateAccessToken(auth.TokenInput{UserID: "1", IsAdmin: admin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

func seedMixedSales(t *testing.T, db *TestDB) {
	t.Helper()
	db.Exec(t,
		`INSERT INTO users (id, first_name, last_name, email) VALUES
			(1, 'Ana', 'Torres', 'ana@example.com'),
			(2, 'Luis', 'Perez', 'luis@example.com')`,
		`INSERT INTO products (id, name) VALUES (1, 'Blue Shirt'), (2, 'Coffee Mug'), (3, 'Red Hat')`,
		`INSERT INTO sales (id, user_id, created_at, status, total_amount) VALUES
			(1, 1, '2024-01-05 10:00:00+00', 'paid', 150.00)`,
		`INSERT INTO sale_details (sale_id, product_id, quantity, unit_price) VALUES
			(1, 1, 2, 50.00), (1, 3, 1, 50.00)`,
		`INSERT INTO sales (id, user_id, created_at, status, total, product_id, quantity) VALUES
			(2, 2, '2024-01-20 09:00:00+00', 'pending', 35.00, 2, 3)`,
		`INSERT INTO sales (id, created_at, status) VALUES
			(3, '2024-02-01 12:00:00+00', 'cancelled')`,
	)
}

func readCSV(t *testing.T, body []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestReportAPI_CSVExport(t *testing.T) {
	s := NewReportTestServer(t)
	seedMixedSales(t, s.DB)

	t.Run("exports every sale newest first", func(t *testing.T) {
		w := s.get(t, "/api/v1/reports/admin/report?format=csv", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="sales_report.csv"`, w.Header().Get("Content-Disposition"))

		records := readCSV(t, w.Body.Bytes())
		require.Len(t, records, 4)
		assert.Equal(t, "ID_Venta", records[0][0])
		assert.Equal(t, []string{"3", "2", "1"}, []string{records[1][0], records[2][0], records[3][0]})
		assert.Equal(t, "Ana Torres", records[3][2])
		assert.Equal(t, "Blue Shirt (2x), Red Hat (1x)", records[3][6])
		assert.Equal(t, "Coffee Mug (3x)", records[2][6])
		assert.Equal(t, report.NotAvailable, records[1][2])
	})

	t.Run("applies filters through the alias", func(t *testing.T) {
		w := s.get(t, "/api/reports/admin/report?format=csv&month=1&monto_min=100", true)
		require.Equal(t, http.StatusOK, w.Code)

		records := readCSV(t, w.Body.Bytes())
		require.Len(t, records, 2)
		assert.Equal(t, "1", records[1][0])
	})

	t.Run("matches legacy single product sales by product name", func(t *testing.T) {
		w := s.get(t, "/api/v1/reports/admin/report?format=csv&product_name=mug", true)
		require.Equal(t, http.StatusOK, w.Code)

		records := readCSV(t, w.Body.Bytes())
		require.Len(t, records, 2)
		assert.Equal(t, "2", records[1][0])
	})
}

func TestReportAPI_PDFExport(t *testing.T) {
	s := NewReportTestServer(t)
	seedMixedSales(t, s.DB)

	w := s.get(t, "/api/v1/reports/admin/report?format=pdf&year=2024", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestReportAPI_Rejections(t *testing.T) {
	s := NewReportTestServer(t)

	t.Run("invalid filters", func(t *testing.T) {
		w := s.get(t, "/api/v1/reports/admin/report?format=csv&month=13&monto_min=abc", true)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body, "month")
		assert.Contains(t, body, "monto_min")
	})

	t.Run("unsupported format", func(t *testing.T) {
		w := s.get(t, "/api/v1/reports/admin/report?format=xlsx", true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error": "Formato no soportado. Usa format=csv o format=pdf."}`, w.Body.String())
	})

	t.Run("non admin", func(t *testing.T) {
		w := s.get(t, "/api/v1/reports/admin/report?format=csv", false)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
