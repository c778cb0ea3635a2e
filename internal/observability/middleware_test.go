package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"decimal-calc/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddlewareSetsHeaderAndContext(t *testing.T) {
	var ctxRequestID string

	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxRequestID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodGet, "/calculator/add", nil)
	w := testutil.ExecuteRequest(r, h)

	headerRequestID := w.Result().Header.Get("X-Request-ID")
	if headerRequestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}

	if _, err := uuid.Parse(headerRequestID); err != nil {
		t.Fatalf("expected header to contain UUID, got %q: %v", headerRequestID, err)
	}

	if ctxRequestID != headerRequestID {
		t.Fatalf("expected context request_id %q to match header %q", ctxRequestID, headerRequestID)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/health", want: false},
		{path: "/metrics", want: false},
		{path: "/calculator/add", want: true},
		{path: "/calculator/history", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)
			got := shouldTraceRequest(r)
			if got != tc.want {
				t.Fatalf("path %q: expected %t, got %t", tc.path, tc.want, got)
			}
		})
	}
}

func TestLoggingMiddlewareWritesCompletionLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = oldLogger })

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodPost, "/calculator/add", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-123"))
	_ = testutil.ExecuteRequest(r, h)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Message != "request completed" {
		t.Fatalf("expected message %q, got %q", "request completed", entry.Message)
	}

	fields := entry.ContextMap()
	if fields["method"] != http.MethodPost {
		t.Fatalf("expected method %q, got %#v", http.MethodPost, fields["method"])
	}
	if fields["path"] != "/calculator/add" {
		t.Fatalf("expected path %q, got %#v", "/calculator/add", fields["path"])
	}
	if fields["status"] != int64(http.StatusNoContent) {
		t.Fatalf("expected status %d, got %#v", http.StatusNoContent, fields["status"])
	}
	if fields["request_id"] != "req-123" {
		t.Fatalf("expected request_id %q, got %#v", "req-123", fields["request_id"])
	}
}

func TestRequestIDMiddlewareReusesCallerID(t *testing.T) {
	callerID := uuid.NewString()
	var ctxRequestID string

	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxRequestID = RequestIDFromContext(r.Context())
	}))

	for _, tc := range []struct {
		header   string
		wantSame bool
	}{
		{header: callerID, wantSame: true},
		{header: "not-a-uuid", wantSame: false},
	} {
		r := httptest.NewRequest(http.MethodGet, "/calculator/history", nil)
		r.Header.Set("X-Request-ID", tc.header)
		w := testutil.ExecuteRequest(r, h)

		got := w.Result().Header.Get("X-Request-ID")
		if (got == tc.header) != tc.wantSame {
			t.Fatalf("header %q: got request id %q", tc.header, got)
		}
		if ctxRequestID != got {
			t.Fatalf("expected context request_id %q to match header %q", ctxRequestID, got)
		}
	}
}

func TestLoggingMiddlewareLogsOperation(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = oldLogger })

	r := chi.NewRouter()
	r.Use(LoggingMiddleware)
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/{operation}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "operation") == "nope" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusOK)
		})
	})

	_ = testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/power", nil), r)
	_ = testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/nope", nil), r)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first["operation"] != "power" {
		t.Fatalf("expected operation %q, got %#v", "power", first["operation"])
	}
	if first["route"] != "/calculator/{operation}" {
		t.Fatalf("expected route pattern, got %#v", first["route"])
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("expected info level, got %s", entries[0].Level)
	}

	if entries[1].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level for 404, got %s", entries[1].Level)
	}
	if entries[1].ContextMap()["operation"] != "nope" {
		t.Fatalf("expected operation %q, got %#v", "nope", entries[1].ContextMap()["operation"])
	}
}

func TestLevelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNoContent, zapcore.InfoLevel},
		{http.StatusBadRequest, zapcore.WarnLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusGatewayTimeout, zapcore.ErrorLevel},
	}
	for _, tc := range tests {
		if got := levelForStatus(tc.status); got != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.status, tc.want, got)
		}
	}
}
