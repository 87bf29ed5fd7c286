package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmark/designer/internal/history"
	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/schema"
	"github.com/fieldmark/designer/internal/session"
	"github.com/fieldmark/designer/internal/uispec"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{session.ErrNotFound, http.StatusNotFound},
		{&uispec.NotFoundError{Operation: "fieldDeleted", Kind: "field", ID: "x"}, http.StatusNotFound},
		{&uispec.ConflictError{Kind: "form", ID: "FORM1"}, http.StatusConflict},
		{&uispec.IntegrityError{Kind: "form", ID: "FORM1"}, http.StatusConflict},
		{history.ErrNothingToUndo, http.StatusConflict},
		{&uispec.ProtectedError{ID: "name"}, http.StatusForbidden},
		{fmt.Errorf("cannot set: %w", notebook.ErrProtectedProperty), http.StatusForbidden},
		{fmt.Errorf("%w: bad payload", uispec.ErrInvalid), http.StatusBadRequest},
		{&schema.ValidationError{}, http.StatusUnprocessableEntity},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestRenderError(t *testing.T) {
	t.Run("integrity carries references", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RenderError(rec, &uispec.IntegrityError{Kind: "form", ID: "FORM1", References: []string{"field-a"}})

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "integrity_violation", body.Code)
		assert.Equal(t, []string{"field-a"}, body.Details)
	})

	t.Run("validation lists messages", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RenderError(rec, &schema.ValidationError{Messages: []string{"/ missing properties: \"metadata\""}})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body ValidationErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "validation_failed", body.Error)
		assert.Len(t, body.Messages, 1)
	})

	t.Run("internal errors are not exposed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RenderError(rec, errors.New("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret detail")
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	})
}

func TestRenderHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderNotFound(rec, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Resource not found")

	rec = httptest.NewRecorder()
	RenderUnauthorized(rec, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
}
