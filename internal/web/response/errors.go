// Package response writes JSON bodies and error envelopes for the API.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fieldmark/designer/internal/history"
	"github.com/fieldmark/designer/internal/notebook"
	"github.com/fieldmark/designer/internal/schema"
	"github.com/fieldmark/designer/internal/session"
	"github.com/fieldmark/designer/internal/uispec"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

// ValidationErrorResponse lists every schema violation of a document
type ValidationErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message"`
	Code     string   `json:"code"`
	Messages []string `json:"messages"`
}

// JSON renders v with statusCode
func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// RenderError renders err with the status its kind maps to. Unknown errors
// are reported as 500 without their text.
func RenderError(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		RenderValidationError(w, verr)
		return
	}

	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	resp := &ErrorResponse{
		Error:   "error",
		Message: message,
		Code:    errorCodeFromStatus(status),
	}
	var ierr *uispec.IntegrityError
	if errors.As(err, &ierr) {
		resp.Code = "integrity_violation"
		resp.Details = ierr.References
	}
	var perr *uispec.ProtectedError
	if errors.As(err, &perr) {
		resp.Code = "protected"
	}
	JSON(w, status, resp)
}

// RenderValidationError renders schema violations as 422
func RenderValidationError(w http.ResponseWriter, verr *schema.ValidationError) {
	messages := verr.Messages
	if messages == nil {
		messages = []string{}
	}
	JSON(w, http.StatusUnprocessableEntity, &ValidationErrorResponse{
		Error:    "validation_failed",
		Message:  "The notebook does not match the notebook schema",
		Code:     "validation_error",
		Messages: messages,
	})
}

// RenderStatus renders message with statusCode
func RenderStatus(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, &ErrorResponse{
		Error:   "error",
		Message: message,
		Code:    errorCodeFromStatus(statusCode),
	})
}

// RenderBadRequest renders a 400 Bad Request error
func RenderBadRequest(w http.ResponseWriter, message string) {
	RenderStatus(w, http.StatusBadRequest, message)
}

// RenderUnauthorized renders a 401 Unauthorized error
func RenderUnauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RenderStatus(w, http.StatusUnauthorized, message)
}

// RenderForbidden renders a 403 Forbidden error
func RenderForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Access denied"
	}
	RenderStatus(w, http.StatusForbidden, message)
}

// RenderNotFound renders a 404 Not Found error
func RenderNotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RenderStatus(w, http.StatusNotFound, message)
}

// StatusFor maps designer errors to HTTP status codes
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, session.ErrNotFound), errors.Is(err, uispec.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, uispec.ErrConflict), errors.Is(err, uispec.ErrIntegrity),
		errors.Is(err, notebook.ErrPropertyExists),
		errors.Is(err, history.ErrNothingToUndo), errors.Is(err, history.ErrNothingToRedo):
		return http.StatusConflict
	case errors.Is(err, uispec.ErrProtected), errors.Is(err, notebook.ErrProtectedProperty):
		return http.StatusForbidden
	case errors.Is(err, uispec.ErrInvalid):
		return http.StatusBadRequest
	default:
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	}
}

// errorCodeFromStatus maps HTTP status codes to error codes
func errorCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusConflict:
		return "conflict"
	case http.StatusRequestEntityTooLarge:
		return "request_too_large"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusUnprocessableEntity:
		return "unprocessable_entity"
	case http.StatusInternalServerError:
		return "internal_error"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "error"
	}
}
