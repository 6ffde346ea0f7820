package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"castmind/backend/internal/service"
)

// AuthCookieName carries the operator token for browser clients.
const AuthCookieName = "castmind_token"

type AuthHandler struct {
	service service.AuthService
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type authStatusResponse struct {
	Enabled bool `json:"enabled"`
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/auth/status", h.Status)
	g.POST("/auth/login", h.Login)
}

func (h *AuthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, authStatusResponse{Enabled: h.service.Enabled()})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	result, err := h.service.Login(c.Request().Context(), req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	c.SetCookie(&http.Cookie{
		Name:     AuthCookieName,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, ExpiresAt: formatTime(result.ExpiresAt)})
}
