package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ListUsers pages through every account.  The route is gated behind the
// admin role by middleware, so no further authorization happens here.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	page := 1
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	size := defaultPageSize
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		if v > maxPageSize {
			v = maxPageSize
		}
		size = v
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	users, total, err := h.Users.List(ctx, page, size)
	if err != nil {
		return internalError(c, err)
	}
	meta := paginate(page, size, total)
	return c.JSON(http.StatusOK, echo.Map{"users": users, "pagination": meta})
}
