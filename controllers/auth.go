package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"coursehive_server/config"
	"coursehive_server/dto"
	"coursehive_server/models"
	"coursehive_server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo?id_token="

func GoogleAuth(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resp, err := http.Get(googleTokenInfoURL + req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify Google token"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	body, _ := io.ReadAll(resp.Body)
	var tokenInfo struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
	}

	if err := json.Unmarshal(body, &tokenInfo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Google response"})
		return
	}

	if tokenInfo.Sub != req.GoogleID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google ID mismatch"})
		return
	}

	var user models.User
	result := config.DB.Where("google_id = ?", req.GoogleID).First(&user)

	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	if result.Error != nil {
		user = models.User{
			GoogleID:   req.GoogleID,
			Email:      req.Email,
			FullName:   req.FullName,
			ProfilePic: req.ProfilePic,
		}

		if err := config.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	}

	now := time.Now()
	if err := config.DB.Model(&user).Update("last_login_at", now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update login time"})
		return
	}

	// The entitlement claim is fixed at issuance; a subscription change
	// takes effect on the next login.
	token, err := utils.GenerateSessionToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, token, int(utils.SessionValidity.Seconds()), "/", "", true, true)

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User: dto.UserProfile{
			ID:         user.ID,
			Email:      user.Email,
			Username:   user.Username,
			FullName:   user.FullName,
			ProfilePic: user.ProfilePic,
			IsPremium:  user.IsPremium,
		},
		Message: "Login successful",
	})
}

func GetMe(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, dto.UserProfile{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		FullName:   user.FullName,
		ProfilePic: user.ProfilePic,
		IsPremium:  user.IsPremium,
	})
}
