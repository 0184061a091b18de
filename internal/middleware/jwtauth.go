package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hooiv/foodorder/internal/access"
	"github.com/hooiv/foodorder/internal/utils"
)

const identityKey = "identity"

// JWTAuth verifies the Bearer token and stores the caller's identity
// (user id, email, role, country) in the request context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header is required",
			})
			return
		}

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header must be a Bearer token",
			})
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(identityKey, access.Identity{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
			Country: claims.Country,
		})
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (access.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return access.Identity{}, false
	}
	identity, ok := value.(access.Identity)
	return identity, ok
}
