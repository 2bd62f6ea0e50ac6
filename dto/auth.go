package dto

import "time"

type GoogleAuthRequest struct {
	IDToken    string `json:"id_token" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"full_name" binding:"required"`
	ProfilePic string `json:"profile_pic"`
	GoogleID   string `json:"google_id" binding:"required"`
}

type AuthResponse struct {
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
	Message string      `json:"message"`
}

type UserProfile struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	ProfilePic string `json:"profile_pic"`
	IsPremium  bool   `json:"is_premium"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type VerifiedClaims struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	IsPremium bool      `json:"is_premium"`
	ExpiresAt time.Time `json:"expires_at"`
}
