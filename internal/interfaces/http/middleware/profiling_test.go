package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfilingLabels(t *testing.T) {
	var got []string
	router := gin.New()
	router.GET("/api/v1/reports/admin/report", func(c *gin.Context) {
		got = profilingLabels(c)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/reports/admin/report?format=pdf", nil))
	assert.Equal(t, []string{
		ProfilingLabelRoute, "/api/v1/reports/admin/report",
		ProfilingLabelMethod, http.MethodGet,
		ProfilingLabelFormat, "pdf",
	}, got)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/reports/admin/report?format=xlsx", nil))
	assert.Len(t, got, 4)
}

func TestProfiling_PassesThrough(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		router := gin.New()
		router.Use(Profiling(enabled))
		router.GET("/test", okHandler)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}
