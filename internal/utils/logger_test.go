package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func discardLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the attached request logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

		router := gin.New()
		router.Use(func(c *gin.Context) { c.Set("request_id", "req-123") })
		router.Use(ContextLogger(logger))
		router.GET("/x", func(c *gin.Context) {
			FromContext(c, discardLogger()).Info("handled")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
		}
		if line["request_id"] != "req-123" {
			t.Errorf("Expected request_id req-123 on the log line, got %v", line["request_id"])
		}
	})

	t.Run("falls back when nothing is attached", func(t *testing.T) {
		var buf bytes.Buffer
		fallback := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		FromContext(c, fallback).Info("handled")

		if buf.Len() == 0 {
			t.Error("Expected the fallback logger to be used")
		}
	})
}
