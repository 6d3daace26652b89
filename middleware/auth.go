package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"pacearena-api/services"
	"pacearena-api/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, tokens)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Error:   "Authentication required",
				Message: "Sign in to continue",
				Code:    http.StatusUnauthorized,
			})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// OptionalAuth resolves the session when a valid token is present and
// otherwise lets the request through anonymously. Read endpoints use it to
// compute per-viewer aggregates.
func OptionalAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, tokens); ok {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, tokens *services.TokenService) (*services.Claims, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}
	claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
