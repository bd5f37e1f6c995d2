package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bankbot/core/internal/pkg/jwt"
	"github.com/bankbot/core/internal/pkg/response"
)

const contextKeyClaims = "claims"

// Auth returns a middleware that requires a valid identity claims token.
// The token is issued by the external identity provider; this middleware
// only consumes the decoded claims. Malformed or out-of-range claims are
// rejected before the pipeline starts.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentClaims(c) != nil {
			c.Next()
			return
		}
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAuth decodes claims when a valid token is present but never
// rejects the request. It runs ahead of the global middleware chain so
// rate limiting can tell authenticated callers apart; protected routes
// still go through Auth.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := jwt.Parse(extractToken(c)); err == nil {
			c.Set(contextKeyClaims, claims)
		}
		c.Next()
	}
}

// CurrentClaims extracts the authenticated claims from the gin context.
// Returns nil when the request carried no valid token.
func CurrentClaims(c *gin.Context) *jwt.Claims {
	v, _ := c.Get(contextKeyClaims)
	claims, _ := v.(*jwt.Claims)
	return claims
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentClaims(c) != nil
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
