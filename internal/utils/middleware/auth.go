package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zelosify/server/internal/module/identity"
	"github.com/zelosify/server/internal/utils/requestctx"
)

const (
	// AuthorizationHeader is the header key for authorization.
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens.
	BearerPrefix = "Bearer "
	// AccessTokenCookie is the cookie fallback for browser clients.
	AccessTokenCookie = "access_token"
	// IdentityKey is the context key for the resolved identity.
	IdentityKey = "identity"
	// UserIDKey is the context key for user ID.
	UserIDKey = "user_id"
	// TenantIDKey is the context key for tenant ID.
	TenantIDKey = "tenant_id"
)

// Authenticator resolves a bearer token into a request identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Identity, error)
}

// Auth returns a middleware that authenticates every request and attaches
// the caller's identity to the context.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			return
		}

		id, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(IdentityKey, id)
		c.Set(UserIDKey, id.UserID)
		c.Set(TenantIDKey, id.TenantID)
		c.Request = c.Request.WithContext(requestctx.WithTenantID(c.Request.Context(), id.TenantID))

		c.Next()
	}
}

// RequireTenant returns a middleware that rejects requests whose identity
// carries no tenant context. This runs before any route-level validation so
// tenant-less callers always see 403.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if !id.HasTenant() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Tenant information not found. Access denied.",
			})
			return
		}
		c.Next()
	}
}

// extractToken pulls the access token from the Authorization header or the
// access_token cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// GetIdentity returns the resolved identity from context, or nil.
func GetIdentity(c *gin.Context) *identity.Identity {
	if val, exists := c.Get(IdentityKey); exists {
		if id, ok := val.(*identity.Identity); ok {
			return id
		}
	}
	return nil
}

// GetUserID returns the user ID from context.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetTenantID returns the tenant ID from context.
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}
