package controllers

import (
	"net/http"

	"coursehive_server/dto"
	"coursehive_server/services"
	"coursehive_server/utils"

	"github.com/gin-gonic/gin"
)

// VerifyToken decodes a raw session token for internal services. The route
// sits behind the internal-marker middleware; external traffic never
// reaches it.
func VerifyToken(c *gin.Context) {
	var req dto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	claims, err := utils.ValidateSessionToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	decision := services.DecideEntitlement(claims)
	if !decision.Allowed {
		c.JSON(http.StatusFound, gin.H{"redirectUrl": decision.RedirectURL})
		return
	}

	c.JSON(http.StatusOK, dto.VerifiedClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		IsPremium: claims.IsPremium,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}
