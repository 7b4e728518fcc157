package handler

import (
	"net/http" // HTTP status codes
	"strings"  // input trimming

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/skillpath/skillpath/internal/httpx"
	"github.com/skillpath/skillpath/internal/middleware"
	"github.com/skillpath/skillpath/internal/model"
	"github.com/skillpath/skillpath/internal/utils"
)

// Account endpoints hang off AuthHandler since they share the same
// repositories.  All of them require authentication via middleware.

// UpdateProfile changes the display fields; username and email are fixed at
// registration.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.AvatarURL = strings.TrimSpace(req.AvatarURL)

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Users.UpdateProfile(ctx, u.ID, req.FirstName, req.LastName, req.AvatarURL); err != nil {
		return internalError(c, err)
	}
	u.FirstName, u.LastName, u.AvatarURL = req.FirstName, req.LastName, req.AvatarURL
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// UpdatePreferences replaces the preferences blob wholesale.
func (h *AuthHandler) UpdatePreferences(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var prefs model.Preferences
	if err := c.Bind(&prefs); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	switch prefs.Theme {
	case "light", "dark", "system":
	default:
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"theme must be light, dark or system", "theme")
	}

	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Users.UpdatePreferences(ctx, u.ID, prefs); err != nil {
		return internalError(c, err)
	}
	u.Preferences = prefs
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// ChangePassword re-verifies the current password, stores the new hash and
// revokes every refresh token so other sessions must log in again.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	if !utils.ValidPassword(req.NewPassword) {
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"password must be at least 6 characters with an upper-case letter, a lower-case letter and a digit", "newPassword")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	// CurrentUser strips the hash, so reload the row for verification.
	stored, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		return internalError(c, err)
	}
	if !utils.VerifyPassword(stored.PasswordHash, req.CurrentPassword) {
		return httpx.FailField(c, http.StatusUnauthorized, httpx.CodeBadCredentials,
			"current password is incorrect", "currentPassword")
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return internalError(c, err)
	}
	if err := h.Tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed, please log in again on other devices"})
}

// DeleteAccount removes the user after password confirmation, cascading to
// owned roadmaps and refresh tokens.
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	stored, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		return internalError(c, err)
	}
	if !utils.VerifyPassword(stored.PasswordHash, req.Password) {
		return httpx.FailField(c, http.StatusUnauthorized, httpx.CodeBadCredentials,
			"password is incorrect", "password")
	}
	if err := h.Roadmaps.DeleteByOwner(ctx, u.ID); err != nil {
		return internalError(c, err)
	}
	if err := h.Tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		return internalError(c, err)
	}
	if err := h.Users.Delete(ctx, u.ID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "account deleted"})
}
