// Package httpx defines the JSON error envelope shared by handlers and
// middleware.  Every failure response has the shape
// {"error": {"message": ..., "code": ..., "field": ...}} so clients can
// branch on machine-readable codes instead of message strings.
package httpx

import "github.com/labstack/echo/v4"

// Machine-readable error codes.  Authentication codes distinguish why a
// token was rejected; the rest identify the failing rule or resource.
const (
	CodeNoToken        = "NO_TOKEN"
	CodeTokenExpired   = "TOKEN_EXPIRED"
	CodeInvalidToken   = "INVALID_TOKEN"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeAuthFailed     = "AUTH_FAILED"
	CodeBadCredentials = "INVALID_CREDENTIALS"
	CodeInvalidRefresh = "INVALID_REFRESH_TOKEN"

	CodeForbidden        = "FORBIDDEN"
	CodeNotOwner         = "NOT_OWNER"
	CodeInsufficientRole = "INSUFFICIENT_ROLE"

	CodeValidation  = "VALIDATION_ERROR"
	CodeDuplicate   = "DUPLICATE_FIELD"
	CodeNotFound    = "NOT_FOUND"
	CodeRateLimited = "RATE_LIMITED"
	CodeInternal    = "INTERNAL_ERROR"
)

// ErrorBody is the inner object of the envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
}

// Envelope wraps an ErrorBody under the "error" key.
type Envelope struct {
	Error ErrorBody `json:"error"`
}

// Fail writes the error envelope with the given status, code and message.
func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Envelope{Error: ErrorBody{Message: message, Code: code}})
}

// FailField is Fail with the offending field named, used by validation and
// duplicate-key responses.
func FailField(c echo.Context, status int, code, message, field string) error {
	return c.JSON(status, Envelope{Error: ErrorBody{Message: message, Code: code, Field: field}})
}
