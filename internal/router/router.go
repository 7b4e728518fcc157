package router // package router defines how HTTP routes are registered for the API

import (
	"log"      // request-scoped failures that reach the top are logged here
	"net/http" // status codes for the error normalizer

	"github.com/labstack/echo/v4"                    // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"  // Echo's bundled middleware (CORS, recover)
	"github.com/redis/go-redis/v9"                   // optional Redis client for limiter and cache

	"github.com/skillpath/skillpath/internal/config"     // limiter and cache settings
	"github.com/skillpath/skillpath/internal/handler"    // HTTP handlers
	"github.com/skillpath/skillpath/internal/httpx"      // error envelope
	"github.com/skillpath/skillpath/internal/middleware" // auth, rate limit, cache middleware
	"github.com/skillpath/skillpath/internal/model"      // role names for the admin gate
	"github.com/skillpath/skillpath/internal/repository" // user repo needed by auth middleware
)

// Deps collects everything route registration needs.  Redis may be nil, in
// which case the rate limiter and the response cache are simply not
// installed and the API serves every request directly.
type Deps struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Auth     *handler.AuthHandler
	Roadmaps *handler.RoadmapHandler
	Generate *handler.GenerateHandler
	Chat     *handler.ChatHandler
	Redis    *redis.Client
}

// Register wires all routes and global middleware onto the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{d.Cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// The limiter sits ahead of every route; it fails open when Redis is
	// unreachable so an infra outage does not take the API down with it.
	if d.Redis != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))
	}

	e.GET("/api/health", handler.Health)

	requireAuth := middleware.RequireAuth(d.Cfg.JWTSecret, d.Users)
	optionalAuth := middleware.OptionalAuth(d.Cfg.JWTSecret, d.Users)

	// Session lifecycle and account management under /api/auth.
	auth := e.Group("/api/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout, requireAuth)
	auth.GET("/me", d.Auth.Me, requireAuth)
	auth.PUT("/profile", d.Auth.UpdateProfile, requireAuth)
	auth.PUT("/preferences", d.Auth.UpdatePreferences, requireAuth)
	auth.PUT("/password", d.Auth.ChangePassword, requireAuth)
	auth.DELETE("/account", d.Auth.DeleteAccount, requireAuth)

	// Administrative surface, closed to regular accounts.
	adm := e.Group("/api/admin", requireAuth, middleware.RequireRole(model.RoleAdmin))
	adm.GET("/users", d.Auth.ListUsers)

	rm := e.Group("/api/roadmaps")

	// The anonymous catalogue only ever serves public rows, so its
	// responses are safe to cache by route and query string.
	publicMW := []echo.MiddlewareFunc{}
	if d.Redis != nil {
		publicMW = append(publicMW, middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis))
	}
	rm.GET("/public", d.Roadmaps.ListPublic, publicMW...)
	rm.GET("/templates", d.Generate.Templates)

	rm.GET("", d.Roadmaps.List, optionalAuth)
	rm.GET("/:id", d.Roadmaps.Get, optionalAuth)
	rm.POST("", d.Roadmaps.Create, requireAuth)
	rm.PUT("/:id", d.Roadmaps.Update, requireAuth)
	rm.DELETE("/:id", d.Roadmaps.Delete, requireAuth)
	rm.POST("/generate", d.Generate.Generate, requireAuth)
	rm.POST("/:id/steps/:stepId/complete", d.Roadmaps.ToggleStep, requireAuth)
	rm.POST("/:id/like", d.Roadmaps.Like, requireAuth)
	rm.POST("/:id/fork", d.Roadmaps.Fork, requireAuth)
	rm.POST("/:id/share", d.Roadmaps.Share, requireAuth)
	rm.DELETE("/:id/share/:userId", d.Roadmaps.Unshare, requireAuth)

	e.POST("/api/chat", d.Chat.Respond, requireAuth)
}

// errorHandler normalizes anything that escapes a handler into the JSON
// error envelope, so 404s on unknown routes and panics recovered by the
// middleware speak the same shape as handler failures.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	code := httpx.CodeInternal
	msg := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch status {
		case http.StatusNotFound:
			code, msg = httpx.CodeNotFound, "resource not found"
		case http.StatusMethodNotAllowed:
			code, msg = httpx.CodeValidation, "method not allowed"
		default:
			if s, ok := he.Message.(string); ok {
				msg = s
			}
		}
	} else {
		log.Printf("http: unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	_ = httpx.Fail(c, status, code, msg)
}
