package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
	assert.Equal(t, []string{"/api/v1"}, r.Prefixes())
}

func TestRouterOptions(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"), WithAlias("/api"))

	assert.Equal(t, []string{"/api/v2", "/api"}, r.Prefixes())
}

func TestRouterSetup_MountsAliases(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAlias("/api"))

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/admin/report", func(c *gin.Context) {
		c.String(http.StatusOK, "report")
	})
	r.Register(reports).Setup()

	for _, target := range []string{"/api/v1/reports/admin/report", "/api/reports/admin/report"} {
		w := serve(engine, http.MethodGet, target)
		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "report", w.Body.String())
	}
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/reports/admin/report").Code)
}

func TestRouterSetup_AppliesMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var order []string
	r.Use(func(c *gin.Context) {
		order = append(order, "router")
		c.Next()
	})

	group := NewDomainGroup("reports", "/reports").Use(func(c *gin.Context) {
		order = append(order, "group")
		c.Next()
	})
	admin := group.Group("admin", "/admin")
	admin.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusForbidden)
	})
	admin.GET("/report", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	group.GET("/ping", func(c *gin.Context) {
		order = append(order, "handler")
		c.Status(http.StatusOK)
	})
	r.Register(group).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/reports/ping").Code)
	assert.Equal(t, []string{"router", "group", "handler"}, order)
	assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/reports/admin/report").Code)
}

func TestDomainGroup_Accessors(t *testing.T) {
	dg := NewDomainGroup("reports", "/reports")

	assert.Equal(t, "reports", dg.Name())
	assert.Equal(t, "/reports", dg.Prefix())
}
