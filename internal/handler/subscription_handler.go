package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"castmind/backend/internal/service"
)

const maxOPMLSize = 5 << 20

type SubscriptionHandler struct {
	service service.SubscriptionService
}

type importResultResponse struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

func NewSubscriptionHandler(service service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/subscriptions/import", h.Import)
	g.GET("/subscriptions/export", h.Export)
}

// Import accepts an OPML document either as the raw body or as a multipart "file" field.
func (h *SubscriptionHandler) Import(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxOPMLSize)

	var reader io.Reader
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			if err == http.ErrMissingFile {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
			}
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		if file.Size > maxOPMLSize {
			return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
		}
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		defer src.Close()
		reader = io.LimitReader(src, maxOPMLSize)
	} else {
		reader = io.LimitReader(req.Body, maxOPMLSize)
	}

	result, err := h.service.ImportOPML(req.Context(), reader)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, importResultResponse{
		Created: result.Created,
		Skipped: result.Skipped,
		Failed:  result.Failed,
		Errors:  result.Errors,
	})
}

func (h *SubscriptionHandler) Export(c echo.Context) error {
	payload, err := h.service.ExportOPML(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="castmind.opml"`)
	return c.Blob(http.StatusOK, "application/xml", payload)
}
