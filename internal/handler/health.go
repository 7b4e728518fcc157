package handler // declare the package name; contains HTTP handlers

import (
    "net/http" // net/http provides status codes and response helpers
    "time"     // time reports uptime and the current timestamp

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

var startedAt = time.Now()

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It reports
// process uptime and the current server time.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "status":    "ok",
        "uptime":    time.Since(startedAt).Seconds(),
        "timestamp": time.Now().UTC(),
    })
}
