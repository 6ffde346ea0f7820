package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"castmind/backend/internal/service"
)

type HostLimitHandler struct {
	service service.HostLimitService
}

type hostLimitRequest struct {
	Host            string `json:"host"`
	IntervalSeconds int    `json:"intervalSeconds"`
}

func NewHostLimitHandler(service service.HostLimitService) *HostLimitHandler {
	return &HostLimitHandler{service: service}
}

func (h *HostLimitHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/host-limits", h.List)
	g.POST("/host-limits", h.Set)
	g.PUT("/host-limits/:host", h.Update)
	g.DELETE("/host-limits/:host", h.Delete)
}

func (h *HostLimitHandler) List(c echo.Context) error {
	limits, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, limits)
}

func (h *HostLimitHandler) Set(c echo.Context) error {
	var req hostLimitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	return h.save(c, req.Host, req.IntervalSeconds, http.StatusCreated)
}

func (h *HostLimitHandler) Update(c echo.Context) error {
	var req hostLimitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	return h.save(c, c.Param("host"), req.IntervalSeconds, http.StatusOK)
}

func (h *HostLimitHandler) save(c echo.Context, host string, interval int, status int) error {
	ctx := c.Request().Context()
	if err := h.service.SetInterval(ctx, host, interval); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(status, hostLimitRequest{Host: host, IntervalSeconds: h.service.GetInterval(ctx, host)})
}

func (h *HostLimitHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteInterval(c.Request().Context(), c.Param("host")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
