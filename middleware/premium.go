package middleware

import (
	"net/http"

	"coursehive_server/services"
	"coursehive_server/utils"

	"github.com/gin-gonic/gin"
)

// RequirePremium gates premium content behind the entitlement claim. A
// non-premium session gets a redirect target rather than a bare error so
// clients can route to the upgrade flow.
func RequirePremium() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, _ := c.Get("claims")
		claims, ok := claimsValue.(*utils.SessionClaims)
		if !ok {
			// No verified session in context: not logged in, not "not
			// entitled".
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authorization required",
			})
			c.Abort()
			return
		}

		decision := services.DecideEntitlement(claims)
		if !decision.Allowed {
			c.JSON(http.StatusFound, gin.H{
				"redirectUrl": decision.RedirectURL,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
