package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/fieldmark/designer/internal/notebook/notebooktest"
	"github.com/fieldmark/designer/internal/session"
	"github.com/fieldmark/designer/internal/uispec"
	"github.com/fieldmark/designer/internal/web/middleware"
)

func benchHandler(b *testing.B) (http.Handler, *session.Manager) {
	b.Helper()
	mgr := session.NewManager(nil, session.Options{Logger: zap.NewNop()})
	return New(mgr, Options{Logger: zap.NewNop()}).Router(), mgr
}

func benchEnvelope(b *testing.B, op uispec.Operation) []byte {
	b.Helper()
	env, err := uispec.Encode(op)
	if err != nil {
		b.Fatal(err)
	}
	data, err := json.Marshal(env)
	if err != nil {
		b.Fatal(err)
	}
	return data
}

// BenchmarkValidate benchmarks schema validation of a small notebook
func BenchmarkValidate(b *testing.B) {
	handler, _ := benchHandler(b)
	body, err := json.Marshal(notebooktest.Notebook())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, DefaultPrefix+"/validate", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
		}
	}
}

// BenchmarkApplyOperation benchmarks one operation round trip through a
// session, alternating directions so the notebook stays the same size
func BenchmarkApplyOperation(b *testing.B) {
	handler, mgr := benchHandler(b)
	s := mgr.Create(notebooktest.Notebook())
	path := DefaultPrefix + "/sessions/" + s.ID + "/operations"
	bodies := [][]byte{
		benchEnvelope(b, uispec.FieldMoved{FieldName: "Site-Name", ViewID: "Survey-Site", Direction: uispec.Down}),
		benchEnvelope(b, uispec.FieldMoved{FieldName: "Site-Name", ViewID: "Survey-Site", Direction: uispec.Up}),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(bodies[i%2]))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
		}
	}
}

// BenchmarkMiddlewareChain benchmarks the request id and recovery middleware
func BenchmarkMiddlewareChain(b *testing.B) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	chain := middleware.NewChain()
	chain.Use(middleware.RequestID())
	chain.Use(middleware.Recovery(zap.NewNop()))

	wrappedHandler := chain.Then(handler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		wrappedHandler.ServeHTTP(w, req)
	}
}
