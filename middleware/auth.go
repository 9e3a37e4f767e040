package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/oguzkaan/campus-events-backend/config"
	"github.com/oguzkaan/campus-events-backend/internal/auth"
)

// Principal is the authenticated caller identity available to handlers.
type Principal struct {
	UserID string
	Role   string
}

// AuthMiddleware validates the bearer token and loads the caller into context.
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "subject missing in token"})
			return
		}

		user, err := authSvc.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is disabled"})
			return
		}

		c.Set("user", user)
		c.Set("principal", Principal{UserID: user.ID, Role: user.Role})

		c.Next()
	}
}

// GetPrincipal retrieves the caller identity set by AuthMiddleware.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	val, exists := c.Get("principal")
	if !exists {
		return Principal{}, false
	}
	p, ok := val.(Principal)
	return p, ok
}
