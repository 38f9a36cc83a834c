package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key under which the authenticated user ID
// is stored. Trade and portfolio handlers read it to scope every ledger
// query to the caller.
const ContextUserID = "userID"

// AuthRequired returns a gin middleware that verifies the Bearer access
// token and stores the user ID in the request context. Requests without a
// valid token are rejected with 401 before reaching any handler.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// JWT_SECRET must be set; without it no token can be verified
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Accept only HMAC. Tokens signed with any other method
			// (including alg=none) fail verification.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			// JSON numbers decode as float64
			if sub, ok := claims["sub"].(float64); ok {
				c.Set(ContextUserID, uint(sub))
			}
		}
		c.Next()
	}
}
