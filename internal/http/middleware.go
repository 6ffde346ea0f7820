package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"castmind/backend/internal/handler"
	"castmind/backend/internal/service"
	"castmind/backend/pkg/logger"
)

const AuthCookieName = handler.AuthCookieName

// JWTAuthMiddleware accepts a bearer token from the Authorization header or the auth cookie.
func JWTAuthMiddleware(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				if cookie, err := c.Cookie(AuthCookieName); err == nil {
					token = cookie.Value
				}
			}
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			if err := auth.ValidateToken(token); err != nil {
				logger.Debug("token rejected", "module", "http", "action", "auth", "resource", "token", "result", "failed", "path", c.Request().URL.Path, "error", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequestLoggerMiddleware logs one line per request, at a level picked by the status class.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{"module", "http", "action", "request", "resource", "http",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			switch {
			case v.Status >= http.StatusInternalServerError:
				logger.Error("request", append(args, "result", "failed", "error", v.Error)...)
			case v.Status >= http.StatusBadRequest:
				logger.Warn("request", append(args, "result", "failed")...)
			default:
				logger.Debug("request", append(args, "result", "ok")...)
			}
			return nil
		},
	})
}
