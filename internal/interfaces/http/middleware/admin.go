package middleware

import (
	"net/http"

	"github.com/ecommerce/backoffice/internal/infrastructure/logger"
	"github.com/ecommerce/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAdmin lets only callers whose token marks them as administrators
// through. It must run after JWTAuth; a request without claims is 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !claims.IsAdmin {
			logger.L(c.Request.Context()).Warn("Admin access denied",
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Administrator access required", GetRequestID(c)))
			return
		}
		c.Next()
	}
}
