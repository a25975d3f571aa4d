package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Juninho21/split-de-pagamentos/internal/shared/response"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// AdminIDKey is the gin context key for the authenticated admin.
	AdminIDKey = "admin_id"
	// EmailKey is the gin context key for the admin email.
	EmailKey = "email"
)

// TokenClaims is what a validated admin token yields.
type TokenClaims struct {
	AdminID string
	Email   string
}

// TokenValidator validates admin bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*TokenClaims, error)
}

// RequireAdmin returns a middleware that rejects requests without a valid admin token.
func RequireAdmin(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			response.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			response.ErrorWithCode(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthorizationHeader)
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
}
