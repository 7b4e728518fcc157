package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "errors"   // sentinel comparison for token failure causes
    "net/http" // HTTP status codes for responses

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/skillpath/skillpath/internal/httpx"
    "github.com/skillpath/skillpath/internal/model"
    "github.com/skillpath/skillpath/internal/repository"
    "github.com/skillpath/skillpath/internal/utils"
)

// Context key under which the resolved identity is stored.  Handlers read
// it via CurrentUser below instead of c.Get directly.
const ctxUserKey = "auth_user"

// RequireAuth returns an Echo middleware that validates a Bearer access
// token, resolves it to a user record and injects it into the request
// context.  Unlike a claims-only gate, the database lookup means a deleted
// account is rejected even while its tokens are still unexpired.  Failures
// are 401s with a machine-readable code naming the cause.
func RequireAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            user, code := resolve(c, secret, users)
            if code != "" {
                return httpx.Fail(c, http.StatusUnauthorized, code, authMessage(code))
            }
            c.Set(ctxUserKey, user)
            return next(c)
        }
    }
}

// OptionalAuth performs the same resolution as RequireAuth but swallows
// every failure: the request simply proceeds unauthenticated.  Public
// endpoints use it so a logged-in caller still sees owner-level data.
func OptionalAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if user, code := resolve(c, secret, users); code == "" {
                c.Set(ctxUserKey, user)
            }
            return next(c)
        }
    }
}

// resolve runs the shared authentication pipeline: extract the bearer
// token, verify it as an access token, and load the claimed user.  On
// failure it returns the error code identifying the cause.
func resolve(c echo.Context, secret string, users *repository.UserRepo) (model.User, string) {
    raw := utils.ExtractBearer(c.Request().Header.Get("Authorization"))
    if raw == "" {
        return model.User{}, httpx.CodeNoToken
    }
    claims, err := utils.VerifyAccess(raw, secret)
    if err != nil {
        switch {
        case errors.Is(err, utils.ErrTokenExpired):
            return model.User{}, httpx.CodeTokenExpired
        case errors.Is(err, utils.ErrTokenMalformed), errors.Is(err, utils.ErrTokenInvalid):
            return model.User{}, httpx.CodeInvalidToken
        default:
            return model.User{}, httpx.CodeAuthFailed
        }
    }
    user, err := users.GetByID(c.Request().Context(), claims.UserID)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return model.User{}, httpx.CodeUserNotFound
        }
        return model.User{}, httpx.CodeAuthFailed
    }
    // The hash never leaves the middleware; handlers see a stripped record.
    user.PasswordHash = ""
    return user, ""
}

// authMessage maps an auth failure code to its human-readable message.
func authMessage(code string) string {
    switch code {
    case httpx.CodeNoToken:
        return "authentication required"
    case httpx.CodeTokenExpired:
        return "access token expired"
    case httpx.CodeInvalidToken:
        return "invalid access token"
    case httpx.CodeUserNotFound:
        return "user no longer exists"
    default:
        return "authentication failed"
    }
}

// CurrentUser returns the authenticated user stored by RequireAuth or
// OptionalAuth.  The second result is false on unauthenticated requests.
func CurrentUser(c echo.Context) (model.User, bool) {
    u, ok := c.Get(ctxUserKey).(model.User)
    return u, ok
}
