package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

func setupLoggerRouter(log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDWithConfig(RequestIDConfig{TrustUpstream: true}), Actor(), Logger(log))
	r.GET("/farmers/:id", func(c *gin.Context) {
		switch c.Param("id") {
		case "missing":
			c.String(http.StatusNotFound, "not found")
		case "broken":
			c.String(http.StatusInternalServerError, "error")
		default:
			c.String(http.StatusOK, "ok")
		}
	})
	r.POST("/farmers", func(c *gin.Context) {
		c.String(http.StatusCreated, "created")
	})
	return r
}

func TestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		path  string
		level string
	}{
		{"/farmers/f1", "level=INFO"},
		{"/farmers/missing", "level=WARN"},
		{"/farmers/broken", "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			r := setupLoggerRouter(newTestLogger(&buf))
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if out := buf.String(); !strings.Contains(out, tt.level) {
				t.Errorf("log missing %s:\n%s", tt.level, out)
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	r := setupLoggerRouter(newTestLogger(&buf))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/farmers", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201", w.Code)
	}

	out := buf.String()
	for _, field := range []string{"msg=request", "method=POST", "path=/farmers", "status=201", "latency=", "client_ip=", "bytes=7", "route=/farmers"} {
		if !strings.Contains(out, field) {
			t.Errorf("log missing %q:\n%s", field, out)
		}
	}
}

func TestLogger_ContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(
		logger.WithConsoleWriter(&buf),
		logger.WithConsoleFormat(logger.FormatText),
		logger.WithConsoleColor(false),
		logger.WithLevel(slog.LevelDebug),
		logger.WithMiddleware(logger.ContextMiddleware()),
	)
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	defer log.Close()

	req := httptest.NewRequest(http.MethodGet, "/farmers/f1", nil)
	req.Header.Set(requestIDHeader, "test-req-id-789")
	req.Header.Set(actorHeader, "rosa.quispe")
	setupLoggerRouter(log.Logger).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"test-req-id-789", "rosa.quispe"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
