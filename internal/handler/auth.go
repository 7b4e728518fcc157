package handler

import (
	"errors"   // sentinel comparisons against repository errors
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/skillpath/skillpath/internal/config"     // app configuration
	"github.com/skillpath/skillpath/internal/httpx"      // error envelope helpers
	"github.com/skillpath/skillpath/internal/middleware" // resolved-user accessors
	"github.com/skillpath/skillpath/internal/model"      // user model
	"github.com/skillpath/skillpath/internal/repository" // DB repositories
	"github.com/skillpath/skillpath/internal/utils"      // hashing, token issuing, validation
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Tokens   *repository.TokenRepo
	Roadmaps *repository.RoadmapRepo // account deletion cascades to owned roadmaps
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, r *repository.RoadmapRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Roadmaps: r}
}

// ----- DTOs -----

type registerReq struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
type loginReq struct {
	Identifier string `json:"identifier"` // username or email
	Password   string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type authResp struct {
	User   model.User      `json:"user"`
	Tokens utils.TokenPair `json:"tokens"`
}

// issueTokens mints a token pair for a user and persists the refresh hash,
// trimming the stored list to the five most recent.
func (h *AuthHandler) issueTokens(c echo.Context, u model.User) (utils.TokenPair, error) {
	pair, err := utils.NewTokenPair(h.Cfg.JWTSecret, u.ID, u.Username, u.Email, u.Role,
		h.Cfg.AccessTTLDays, h.Cfg.RefreshTTLDays)
	if err != nil {
		return utils.TokenPair{}, err
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(pair.RefreshToken), pair.RefreshExpiresAt); err != nil {
		return utils.TokenPair{}, err
	}
	return pair, nil
}

// Register: validate, create user and return tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = utils.NormalizeEmail(req.Email)

	if !utils.ValidUsername(req.Username) {
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"username must be 3-30 characters of letters, digits or underscores", "username")
	}
	if !utils.ValidEmail(req.Email) {
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"email address is not valid", "email")
	}
	if !utils.ValidPassword(req.Password) {
		return httpx.FailField(c, http.StatusBadRequest, httpx.CodeValidation,
			"password must be at least 6 characters with an upper-case letter, a lower-case letter and a digit", "password")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	// Pre-checks give field-specific 409s; the unique indexes still catch
	// the races and dupError keeps the field attribution.
	if taken, err := h.Users.UsernameExists(ctx, req.Username); err != nil {
		return internalError(c, err)
	} else if taken {
		return httpx.FailField(c, http.StatusConflict, httpx.CodeDuplicate, "username already taken", "username")
	}
	if taken, err := h.Users.EmailExists(ctx, req.Email); err != nil {
		return internalError(c, err)
	} else if taken {
		return httpx.FailField(c, http.StatusConflict, httpx.CodeDuplicate, "email already registered", "email")
	}

	u := model.User{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Role:        model.RoleUser,
		Preferences: model.DefaultPreferences(),
	}
	if _, err := h.Users.Create(ctx, &u, req.Password, h.Cfg.BcryptCost); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return httpx.FailField(c, http.StatusConflict, httpx.CodeDuplicate, "username already taken", "username")
		case errors.Is(err, repository.ErrEmailExists):
			return httpx.FailField(c, http.StatusConflict, httpx.CodeDuplicate, "email already registered", "email")
		}
		return internalError(c, err)
	}

	pair, err := h.issueTokens(c, u)
	if err != nil {
		return internalError(c, err)
	}
	u.PasswordHash = ""
	return c.JSON(http.StatusCreated, authResp{User: u, Tokens: pair})
}

// Login: accept a username or email plus password, verify and return a new
// pair.  Credential failures are deliberately generic.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "invalid body")
	}
	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || req.Password == "" {
		return httpx.Fail(c, http.StatusBadRequest, httpx.CodeValidation, "identifier and password are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeBadCredentials, "Invalid credentials")
		}
		return internalError(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeBadCredentials, "Invalid credentials")
	}
	if err := h.Users.TouchLastLogin(ctx, u.ID); err != nil {
		return internalError(c, err)
	}

	pair, err := h.issueTokens(c, u)
	if err != nil {
		return internalError(c, err)
	}
	u.PasswordHash = ""
	return c.JSON(http.StatusOK, authResp{User: u, Tokens: pair})
}

// Refresh: verify the refresh JWT, require its hash among the user's stored
// tokens, rotate atomically and return a new pair.  Every failure is a 401.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeInvalidRefresh, "refresh token required")
	}
	raw := strings.TrimSpace(req.RefreshToken)

	claims, err := utils.VerifyRefresh(raw, h.Cfg.JWTSecret)
	if err != nil {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeInvalidRefresh, "invalid refresh token")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	oldHash := utils.HashRefreshRaw(raw)
	userID, err := h.Tokens.ValidateRefresh(ctx, oldHash)
	if err != nil || userID != claims.UserID {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeInvalidRefresh, "invalid refresh token")
	}

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeInvalidRefresh, "invalid refresh token")
	}

	pair, err := utils.NewTokenPair(h.Cfg.JWTSecret, u.ID, u.Username, u.Email, u.Role,
		h.Cfg.AccessTTLDays, h.Cfg.RefreshTTLDays)
	if err != nil {
		return internalError(c, err)
	}
	if err := h.Tokens.Rotate(ctx, u.ID, oldHash, utils.HashRefreshRaw(pair.RefreshToken), pair.RefreshExpiresAt); err != nil {
		if errors.Is(err, repository.ErrRefreshNotFound) {
			return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeInvalidRefresh, "invalid refresh token")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tokens": pair})
}

// Logout: revoke the presented refresh token, or every token the user holds
// when none is supplied ("log out everywhere").  Requires authentication.
func (h *AuthHandler) Logout(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	var req refreshReq
	_ = c.Bind(&req) // an empty or invalid body means "log out everywhere"
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqContext(c)
	defer cancel()

	if raw != "" {
		if err := h.Tokens.RevokeByHash(ctx, u.ID, utils.HashRefreshRaw(raw)); err != nil {
			return internalError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out everywhere"})
}

// Me: return the authenticated user's public projection.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return httpx.Fail(c, http.StatusUnauthorized, httpx.CodeAuthFailed, "authentication required")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
