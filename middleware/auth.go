package middleware

import (
	"net/http"
	"strings"

	"coursehive_server/utils"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware verifies the session artifact. The browser client sends
// the HTTP-only cookie; the mobile client sends the same token as a bearer
// header.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		if cookie, err := c.Cookie(utils.SessionCookieName); err == nil {
			token = cookie
		}

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization required",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("is_premium", claims.IsPremium)
		c.Set("claims", claims)

		c.Next()
	}
}
