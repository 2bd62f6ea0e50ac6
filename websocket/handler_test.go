package websocket

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleProgressSocket_NoSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", HandleProgressSocket)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session identity, got %d", w.Code)
	}
}

func TestHandleProgressSocket_HubNotStarted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set("user_id", uint(1))
	}, HandleProgressSocket)

	prev := GlobalHub
	GlobalHub = nil
	defer func() { GlobalHub = prev }()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before the hub runs, got %d", w.Code)
	}
}

func TestNotifyCourseProgress_NoHub(t *testing.T) {
	prev := GlobalHub
	GlobalHub = nil
	defer func() { GlobalHub = prev }()

	// Must be a no-op, not a panic.
	NotifyCourseProgress(1, nil)
}
