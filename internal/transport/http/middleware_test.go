package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestLoggerMiddlewareRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(LoggerMiddleware(&logger))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log entry: %v", err)
	}
	if entry["method"] != "GET" || entry["path"] != "/ping" || entry["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected log entry: %v", entry)
	}
	if _, ok := entry["duration"]; !ok {
		t.Fatalf("log entry missing duration: %v", entry)
	}
}
