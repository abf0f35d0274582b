package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"listdist/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.POST("/api/v1/lists", func(c *gin.Context) {
		c.Set("listId", "list-1")
		c.Set("recordCount", 7)
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "list_id", "duration_ms", "status", "route", "record_count"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["list_id"] != "list-1" {
		t.Fatalf("unexpected list_id: %v", payload["list_id"])
	}
	if payload["status"] != float64(http.StatusCreated) {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
	if payload["record_count"] != float64(7) {
		t.Fatalf("unexpected record_count: %v", payload["record_count"])
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "has spaces\tand tabs")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	got := resp.Header().Get("X-Request-Id")
	if got == "" || strings.Contains(got, " ") {
		t.Fatalf("expected generated request id, got %q", got)
	}
	if resp.Body.String() != got {
		t.Fatalf("expected context id %q to match header %q", resp.Body.String(), got)
	}
}
