package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"coursehive_server/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionValidity is the lifetime of a session artifact from issuance.
	SessionValidity = 5 * 24 * time.Hour

	// SessionCookieName is the HTTP-only cookie carrying the session token.
	SessionCookieName = "coursehive_session"

	sessionAudience = "coursehive"
	sessionIssuer   = "coursehive-server"
)

// SessionClaims is the closed claim set the entitlement gate needs.
// Unknown fields on a decoded token are dropped by construction.
type SessionClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
	jwt.RegisteredClaims
}

var sessionSecret []byte

// InitSessionAuth loads the signing key exactly once at process start.
// Calling it again is a no-op.
func InitSessionAuth() error {
	if len(sessionSecret) > 0 {
		return nil
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return fmt.Errorf("SESSION_SECRET not set in environment")
	}

	sessionSecret = []byte(secret)
	return nil
}

func GenerateSessionToken(user *models.User) (string, error) {
	if len(sessionSecret) == 0 {
		return "", fmt.Errorf("session auth not initialized")
	}

	now := time.Now()
	claims := SessionClaims{
		UserID:    user.ID,
		Email:     user.Email,
		IsPremium: user.IsPremium,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Audience:  jwt.ClaimStrings{sessionAudience},
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionValidity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	if len(sessionSecret) == 0 {
		return nil, fmt.Errorf("session auth not initialized")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return sessionSecret, nil
	}, jwt.WithAudience(sessionAudience), jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("session token missing subject")
	}

	return claims, nil
}
