package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/entity"
	"github.com/gin-gonic/gin"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionCookie holds the access token set at login
	SessionCookie = "jwt"
	// CallerKey is the context key for the resolved caller
	CallerKey = "caller"
)

// Authenticator resolves an access token to the current user record.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}

// tokenFromRequest reads the session cookie, falling back to a bearer header.
func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(header, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	}
	return ""
}

// AuthMiddleWare rejects requests without a valid session.
func AuthMiddleWare(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(CallerKey, user.Caller())
		c.Next()
	}
}

// OptionalAuth resolves the caller when a valid session is present and continues anonymously otherwise.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(CallerKey, user.Caller())
			}
		}
		c.Next()
	}
}

// GetCaller returns the caller set by the auth middleware, or entity.Anonymous.
func GetCaller(c *gin.Context) entity.Caller {
	v, ok := c.Get(CallerKey)
	if !ok {
		return entity.Anonymous
	}
	caller, ok := v.(entity.Caller)
	if !ok {
		return entity.Anonymous
	}
	return caller
}

// RequireRole creates a middleware that requires one of roles. It must run after AuthMiddleWare.
func RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := GetCaller(c)
		if !caller.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entity.UserRoleAdmin)
}
