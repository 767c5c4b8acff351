package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ecommerce/backoffice/internal/infrastructure/auth"
	"github.com/ecommerce/backoffice/internal/infrastructure/logger"
	"github.com/ecommerce/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator validates bearer access tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// Validator is required for token validation
	Validator TokenValidator
	// Revocations is optional for checking revoked tokens
	Revocations auth.RevocationStore
	Logger      *zap.Logger
}

// JWTAuth creates JWT authentication middleware. Requests without a valid,
// unrevoked access token are answered with 401.
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			code, message := tokenErrorCode(err)
			abortUnauthorized(c, code, message)
			return
		}

		if cfg.Revocations != nil && isRevoked(c, cfg, claims) {
			abortUnauthorized(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
			return
		}

		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Next()
	}
}

// isRevoked consults the revocation store. Store failures are logged and
// the token is accepted so an unavailable store does not lock everyone out.
func isRevoked(c *gin.Context, cfg JWTMiddlewareConfig, claims *auth.Claims) bool {
	ctx := c.Request.Context()

	if claims.ID != "" {
		revoked, err := cfg.Revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			cfg.Logger.Error("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
		} else if revoked {
			return true
		}
	}

	revoked, err := cfg.Revocations.IsUserRevoked(ctx, claims.UserID, claims.IssuedAtTime())
	if err != nil {
		cfg.Logger.Error("Failed to check user token revocation", zap.String("user_id", claims.UserID), zap.Error(err))
		return false
	}
	return revoked
}

func tokenErrorCode(err error) (string, string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		return dto.ErrCodeTokenRevoked, "Token has been revoked"
	default:
		return dto.ErrCodeTokenInvalid, "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetJWTClaims returns the claims stored by JWTAuth, or nil
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetJWTUserID returns the authenticated user id, or an empty string
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}
