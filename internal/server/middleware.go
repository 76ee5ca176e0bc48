package server

import (
	"net/http"
	"strings"
	"time"

	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// TokenVerifier validates a bearer token and returns the username it carries.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// RequireAuth returns a middleware that validates the Authorization
// bearer token and confirms the user still exists. Lookups go through a
// short-lived in-process cache to keep repeat requests off the store.
func RequireAuth(tokens TokenVerifier, users repository.UserStore, userCache *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		username, err := tokens.VerifyToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		cacheKey := "user:" + username
		if _, found := userCache.Get(cacheKey); !found {
			if _, err := users.GetUserByUsername(c.Request.Context(), username); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			userCache.Set(cacheKey, struct{}{}, cache.DefaultExpiration)
		}

		c.Set("username", username)
		c.Next()
	}
}
