package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coursehive_server/config"
	"coursehive_server/models"
	"coursehive_server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	config.DB = db

	t.Setenv("SESSION_SECRET", "test-session-secret")
	if err := utils.InitSessionAuth(); err != nil {
		t.Fatalf("failed to init session auth: %v", err)
	}

	// Stand-in for the Google tokeninfo endpoint.
	tokenInfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub": "g-123", "email": "ada@example.com", "email_verified": "true"}`))
	}))
	t.Cleanup(tokenInfo.Close)
	prevURL := googleTokenInfoURL
	googleTokenInfoURL = tokenInfo.URL + "/?id_token="
	t.Cleanup(func() { googleTokenInfoURL = prevURL })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/auth/google", GoogleAuth)
	return router
}

func postGoogleAuth(router *gin.Engine) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{
		"id_token":  "stub",
		"email":     "ada@example.com",
		"full_name": "Ada Lovelace",
		"google_id": "g-123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/google", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGoogleAuth_ExistingUserLogsIn(t *testing.T) {
	router := setupAuthRouter(t)

	existing := models.User{GoogleID: "g-123", Email: "ada@example.com", FullName: "Ada Lovelace", IsPremium: true}
	if err := config.DB.Create(&existing).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	w := postGoogleAuth(router)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID        uint `json:"id"`
			IsPremium bool `json:"is_premium"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User.ID != existing.ID {
		t.Fatalf("expected existing user %d, got %d", existing.ID, resp.User.ID)
	}
	if !resp.User.IsPremium {
		t.Fatalf("expected premium flag carried from the stored row")
	}
	if resp.Token == "" {
		t.Fatalf("expected a session token")
	}

	var count int64
	if err := config.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("login must not duplicate the user, got %d rows", count)
	}
}

func TestGoogleAuth_LookupFailureIsNotTreatedAsNewUser(t *testing.T) {
	router := setupAuthRouter(t)

	// A broken store must surface as a load failure, not fall through to
	// a create attempt.
	if err := config.DB.Exec("DROP TABLE users").Error; err != nil {
		t.Fatalf("failed to break store: %v", err)
	}

	w := postGoogleAuth(router)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on lookup failure, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to load user") {
		t.Fatalf("expected load-failure error, got %s", w.Body.String())
	}
}
