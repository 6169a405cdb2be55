package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionConfig configures validation of the session tokens minted by the
// external OAuth session adapter. Authentication itself happens out of
// process; this middleware only verifies the resulting HS256 token and
// injects user_id into the request context.
type SessionConfig struct {
	Secret string
	Issuer string
}

func SessionMiddleware(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "missing bearer token",
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "invalid session token",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "invalid session claims",
			})
			return
		}

		if cfg.Issuer != "" {
			if iss, _ := claims["iss"].(string); iss != cfg.Issuer {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "UNAUTHORIZED",
					"message": "unknown token issuer",
				})
				return
			}
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			// Some adapters put the subject in "sub" instead.
			userID, _ = claims["sub"].(string)
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "token carries no user id",
			})
			return
		}

		c.Set("user_id", userID)
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		c.Next()
	}
}
