package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fieldmark/designer/internal/web/auth"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("test response"))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	base := NewChain(mark("first"))
	extended := base.Append(mark("second"))
	extended.Use(mark("third"))

	extended.Then(http.HandlerFunc(ok)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Join(order, ",") != "first,second,third" {
		t.Errorf("unexpected order %v", order)
	}
	if len(base.middlewares) != 1 {
		t.Errorf("Append mutated the base chain: %d middlewares", len(base.middlewares))
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestIDWithConfig(RequestIDConfig{Generator: func() string { return "generated" }})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != "generated" || rec.Header().Get(RequestIDHeader) != "generated" {
		t.Errorf("expected generated id, got context %q header %q", seen, rec.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "incoming")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "incoming" || rec.Header().Get(RequestIDHeader) != "incoming" {
		t.Errorf("expected incoming id to be kept, got %q", seen)
	}
}

func TestDefaultRequestIDIsUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestID()(http.HandlerFunc(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(rec.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("expected uuid request id, got %q", rec.Header().Get(RequestIDHeader))
	}
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := NewChain(
		RequestIDWithConfig(RequestIDConfig{Generator: func() string { return "req-1" }}),
		LoggingWithConfig(LoggingConfig{Logger: zap.New(core), SkipPaths: []string{"/healthz"}}),
	).Then(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		ok(w, r)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first["request_id"] != "req-1" || first["path"] != "/test" {
		t.Errorf("unexpected fields %v", first)
	}
	if first["status"] != int64(http.StatusOK) || first["bytes"] != int64(13) {
		t.Errorf("unexpected status or bytes %v", first)
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Errorf("expected info level, got %v", entries[0].Level)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("expected warn level for 404, got %v", entries[1].Level)
	}
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := Recovery(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal_server_error") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
	if logs.Len() != 1 || logs.All()[0].ContextMap()["panic"] != "boom" {
		t.Errorf("expected panic to be logged, got %v", logs.All())
	}
}

func TestAuth(t *testing.T) {
	svc := auth.NewService("0123456789abcdef0123456789abcdef", time.Hour)
	token, err := svc.Issue("ana", []string{"viewer"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var subject string
	handler := Auth(svc, "/healthz")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = auth.Subject(r.Context())
	}))

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"valid token", "/api", "Bearer " + token, http.StatusOK},
		{"missing header", "/api", "", http.StatusUnauthorized},
		{"wrong scheme", "/api", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "/api", "Bearer nope", http.StatusUnauthorized},
		{"skipped path", "/healthz", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			if tt.name == "valid token" && subject != "ana" {
				t.Errorf("expected subject ana, got %q", subject)
			}
		})
	}
}

func TestAuthWebsocketQueryToken(t *testing.T) {
	svc := auth.NewService("0123456789abcdef0123456789abcdef", time.Hour)
	token, _ := svc.Issue("ana", nil)
	handler := Auth(svc)(http.HandlerFunc(ok))

	req := httptest.NewRequest(http.MethodGet, "/events?access_token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected query token to be accepted on upgrade, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/events?access_token="+token, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected query token to be ignored without upgrade, got %d", rec.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	handler := RequirePermission(auth.NotebooksEdit, nil)(http.HandlerFunc(ok))

	run := func(claims *auth.Claims) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if claims != nil {
			req = req.WithContext(auth.WithClaims(req.Context(), claims))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := run(nil); code != http.StatusOK {
		t.Errorf("anonymous request should pass when auth is disabled, got %d", code)
	}
	if code := run(&auth.Claims{Roles: []string{"viewer"}}); code != http.StatusForbidden {
		t.Errorf("viewer should be forbidden, got %d", code)
	}
	if code := run(&auth.Claims{Roles: []string{"designer"}}); code != http.StatusOK {
		t.Errorf("designer should be allowed, got %d", code)
	}
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	handler := BodyLimit(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 16)
		_, readErr = r.Body.Read(buf)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("too long body")))
	if readErr == nil || !strings.Contains(readErr.Error(), "too large") {
		t.Errorf("expected body too large error, got %v", readErr)
	}
}
