package handler // handler defines http handlers

import (
    "context"  // context with timeout bounds DB calls
    "net/http" // status code constants
    "strconv"  // string-to-int conversion for path params
    "time"     // timeout durations

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/skillpath/skillpath/internal/httpx"
)

// dbTimeout bounds every database round trip issued from a handler.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pathID parses a numeric :id style path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil
}

// internalError logs the cause and returns the generic 500 envelope; stack
// traces and error details never reach clients.
func internalError(c echo.Context, err error) error {
    c.Logger().Errorf("internal error: %v", err)
    return httpx.Fail(c, http.StatusInternalServerError, httpx.CodeInternal, "internal server error")
}
