package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	gh "castmind/backend/internal/http"
	"castmind/backend/internal/service/mock"
)

func TestJWTAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockAuth := mock.NewMockAuthService(ctrl)
	middleware := gh.JWTAuthMiddleware(mockAuth)

	e := echo.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	t.Run("MissingAuth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, middleware(handler)(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, middleware(handler)(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockAuth.EXPECT().ValidateToken("invalid-token").Return(errors.New("signature is invalid"))

		require.NoError(t, middleware(handler)(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidTokenHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer valid-token")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockAuth.EXPECT().ValidateToken("valid-token").Return(nil)

		require.NoError(t, middleware(handler)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", rec.Body.String())
	})

	t.Run("ValidTokenCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: gh.AuthCookieName, Value: "cookie-token"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mockAuth.EXPECT().ValidateToken("cookie-token").Return(nil)

		require.NoError(t, middleware(handler)(c))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequestLoggerMiddleware_StatusBranches(t *testing.T) {
	e := echo.New()
	mw := gh.RequestLoggerMiddleware()

	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "ok", statusCode: http.StatusOK},
		{name: "client_error", statusCode: http.StatusBadRequest},
		{name: "server_error", statusCode: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := func(c echo.Context) error {
				return c.JSON(tc.statusCode, map[string]string{"status": "ok"})
			}

			require.NoError(t, mw(handler)(c))
			require.Equal(t, tc.statusCode, rec.Code)
		})
	}
}
