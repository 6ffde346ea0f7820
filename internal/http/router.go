package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"castmind/backend/internal/handler"
	"castmind/backend/internal/service"
)

// NewRouter mounts every handler under /api. Health, auth status and login stay public;
// the rest require a token whenever auth is enabled.
func NewRouter(
	feedHandler *handler.FeedHandler,
	articleHandler *handler.ArticleHandler,
	jobHandler *handler.JobHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	hostLimitHandler *handler.HostLimitHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
	authService service.AuthService,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")
	healthHandler.RegisterRoutes(api)
	authHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	if authService.Enabled() {
		protected.Use(JWTAuthMiddleware(authService))
	}
	feedHandler.RegisterRoutes(protected)
	articleHandler.RegisterRoutes(protected)
	jobHandler.RegisterRoutes(protected)
	subscriptionHandler.RegisterRoutes(protected)
	hostLimitHandler.RegisterRoutes(protected)

	return e
}
