// Package response provides the JSON envelope of the control surface. Every
// response carries a data field, an error field, or both when a failed
// refresh returns its partial result.
package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/agentstation/glossync/pkg/errors"
)

// Error codes.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeConflict         = "REFRESH_IN_PROGRESS"
	CodeRateLimited      = "RATE_LIMITED"
	CodeRefreshFailed    = "REFRESH_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Response represents the standardized API response structure.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error represents an API error with code, message, and optional details.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success creates a successful response with data.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail creates an error response.
func Fail(code, message, details string) Response {
	return Response{
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes a successful response with 200 status.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// Accepted writes a successful response with 202 status.
func Accepted(w http.ResponseWriter, data any) {
	JSON(w, http.StatusAccepted, Success(data))
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusBadRequest, Fail(CodeBadRequest, message, details))
}

// Unauthorized writes a 401 error response.
func Unauthorized(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusUnauthorized, Fail(CodeUnauthorized, message, details))
}

// MethodNotAllowed writes a 405 error response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	JSON(w, http.StatusMethodNotAllowed, Fail(
		CodeMethodNotAllowed,
		"Method not allowed",
		"Method "+method+" is not supported for this endpoint",
	))
}

// RateLimited writes a 429 error response.
func RateLimited(w http.ResponseWriter, message string) {
	JSON(w, http.StatusTooManyRequests, Fail(CodeRateLimited, "Rate limit exceeded", message))
}

// InternalError writes a 500 error response without exposing err.
func InternalError(w http.ResponseWriter, _ error) {
	JSON(w, http.StatusInternalServerError, Fail(
		CodeInternal,
		"Internal server error",
		"An unexpected error occurred",
	))
}

// RefreshError maps a refresh failure to a response. data, typically the
// partial result, is included when non-nil.
func RefreshError(w http.ResponseWriter, err error, data any) {
	var (
		status = http.StatusInternalServerError
		resp   = Fail(CodeInternal, "Internal server error", "An unexpected error occurred")
	)
	var (
		connErr  *errors.ConnectorError
		validErr *errors.ValidationError
	)
	switch {
	case stderrors.Is(err, errors.ErrRefreshInProgress):
		status = http.StatusConflict
		resp = Fail(CodeConflict, "A refresh is already running", "Retry when it completes")
	case stderrors.As(err, &validErr):
		status = http.StatusBadRequest
		resp = Fail(CodeBadRequest, validErr.Error(), "")
	case stderrors.As(err, &connErr):
		status = http.StatusBadGateway
		resp = Fail(CodeRefreshFailed, "Refresh failed", connErr.Error())
	}
	resp.Data = data
	JSON(w, status, resp)
}
