package utils

import (
	"strings"
	"testing"
	"time"

	"coursehive_server/models"

	"github.com/golang-jwt/jwt/v5"
)

func initTestSecret(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "test-session-secret")
	if err := InitSessionAuth(); err != nil {
		t.Fatalf("failed to init session auth: %v", err)
	}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	initTestSecret(t)

	user := &models.User{Email: "ada@example.com", IsPremium: true}
	user.ID = 7

	token, err := GenerateSessionToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user 7, got %d", claims.UserID)
	}
	if claims.Email != "ada@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if !claims.IsPremium {
		t.Fatalf("expected premium claim carried through")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < SessionValidity-time.Minute || remaining > SessionValidity {
		t.Fatalf("expected ~5 day validity, got %v", remaining)
	}
}

func TestSessionToken_Tampered(t *testing.T) {
	initTestSecret(t)

	user := &models.User{Email: "ada@example.com"}
	user.ID = 7
	token, err := GenerateSessionToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]
	if _, err := ValidateSessionToken(tampered); err == nil {
		t.Fatalf("expected tampered token to fail validation")
	}
}

func TestSessionToken_Expired(t *testing.T) {
	initTestSecret(t)

	now := time.Now()
	claims := SessionClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Audience:  jwt.ClaimStrings{sessionAudience},
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now.Add(-6 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessionSecret)
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := ValidateSessionToken(token); err == nil {
		t.Fatalf("expected expired token to fail validation")
	}
}

func TestSessionToken_WrongAudience(t *testing.T) {
	initTestSecret(t)

	now := time.Now()
	claims := SessionClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Audience:  jwt.ClaimStrings{"some-other-app"},
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessionSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ValidateSessionToken(token); err == nil {
		t.Fatalf("expected foreign-audience token to fail validation")
	}
}
