package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalMarkerHeader must be set by the reverse proxy on internal-only
// routes and is stripped from external traffic. Raw token verification is
// never reachable from outside.
const InternalMarkerHeader = "X-Internal-Request"

func InternalOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(InternalMarkerHeader) != "true" {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Internal endpoint",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
