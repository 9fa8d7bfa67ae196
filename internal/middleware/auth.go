package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/keechi-app/keechi-api/internal/config"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func parseClaims(tokenString, secret string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_token", "message": "No token provided."})
			return
		}

		claims, ok := parseClaims(tokenString, cfg.JWTSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token", "message": "Invalid or expired token."})
			return
		}

		id, ok := claims["id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "invalid_token_payload", "message": "Invalid token payload."})
			return
		}
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)

		c.Set(ContextUserID, uint(id))
		c.Set(ContextUserEmail, email)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// OptionalAuth resolves the requester when a valid bearer token is present
// and silently continues as anonymous otherwise. Guest booking depends on
// this never failing.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, ok := parseClaims(tokenString, cfg.JWTSecret); ok {
				if id, ok := claims["id"].(float64); ok {
					role, _ := claims["role"].(string)
					c.Set(ContextUserID, uint(id))
					c.Set(ContextUserRole, role)
				}
			}
		}
		c.Next()
	}
}

// RequireRoles must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "insufficient_permissions", "message": "Insufficient permissions."})
	}
}

// RequireAdmin guards the admin surface with the dedicated admin token.
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "missing_token", "message": "No token provided."})
			return
		}

		claims, ok := parseClaims(tokenString, cfg.JWTSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "invalid_token", "message": "Invalid token."})
			return
		}

		if role, _ := claims["role"].(string); role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "not_admin", "message": "Invalid token."})
			return
		}

		c.Next()
	}
}
