package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"castmind/backend/internal/scheduler"
	"castmind/backend/internal/service"
	"castmind/backend/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type feedConflictResponse struct {
	Error        string       `json:"error"`
	ExistingFeed feedResponse `json:"existingFeed"`
}

// Error writes a JSON error body with the given status.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

func writeServiceError(c echo.Context, err error) error {
	var conflict *service.FeedConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, feedConflictResponse{
			Error:        "feed already exists",
			ExistingFeed: toFeedResponse(conflict.ExistingFeed),
		})
	case errors.Is(err, service.ErrInvalid):
		return Error(c, http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, scheduler.ErrJobNotFound):
		return Error(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		return Error(c, http.StatusConflict, "conflict")
	case errors.Is(err, scheduler.ErrJobRunning), errors.Is(err, service.ErrAlreadyFetching):
		return Error(c, http.StatusConflict, "already running")
	case errors.Is(err, service.ErrFeedFetch):
		return Error(c, http.StatusBadGateway, "feed fetch failed")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrAuthDisabled):
		return Error(c, http.StatusNotFound, "authentication disabled")
	case errors.Is(err, scheduler.ErrStopped):
		return Error(c, http.StatusServiceUnavailable, "scheduler stopped")
	}
	logger.Error("request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return Error(c, http.StatusInternalServerError, "internal error")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
