package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggingMiddlewareRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := NewLoggingMiddleware(logger).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{`"method":"POST"`, `"path":"/api/v1/payments"`, `"status":201`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %s, got %s", want, out)
		}
	}
}

func TestLoggingMiddlewareLogsServerErrorsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := NewLoggingMiddleware(logger).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error level log, got %s", buf.String())
	}
}
