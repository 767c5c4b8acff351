package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecommerce/backoffice/internal/domain/shared"
	"github.com/ecommerce/backoffice/internal/interfaces/http/dto"
	"github.com/ecommerce/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden},
		{"wrapped unsupported format", fmt.Errorf("export: %w", shared.ErrUnsupportedFormat), http.StatusBadRequest, dto.ErrCodeUnsupportedFormat},
		{"source unavailable", shared.ErrSourceUnavailable.WithCause(errors.New("timeout")), http.StatusInternalServerError, dto.ErrCodeInternal},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDKey, "req-1")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestFirstValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?format=csv&status=a&status=b&empty=", nil)

	params := firstValues(req.URL.Query())

	assert.Equal(t, map[string]string{"format": "csv", "status": "a", "empty": ""}, params)
}
