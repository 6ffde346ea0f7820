package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"castmind/backend/internal/model"
	"castmind/backend/internal/scheduler"
	"castmind/backend/internal/service"
)

type FeedHandler struct {
	service service.FeedService
	ingest  service.IngestService
	jobs    JobController
}

type feedRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Category string `json:"category"`
	Interval int    `json:"interval"`
}

type feedResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Category     string  `json:"category"`
	Interval     int     `json:"interval"`
	Status       string  `json:"status"`
	Kind         string  `json:"kind"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	SiteURL      *string `json:"siteUrl,omitempty"`
	ErrorMessage *string `json:"errorMessage,omitempty"`
	LastFetch    *string `json:"lastFetch,omitempty"`
	ArticleCount int     `json:"articleCount"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type feedPreviewResponse struct {
	Address   string `json:"address"`
	SourceURL string `json:"sourceUrl"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	SiteURL   string `json:"siteUrl,omitempty"`
	ItemCount int    `json:"itemCount"`
}

type feedStatsResponse struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Paused int `json:"paused"`
	Error  int `json:"error"`
}

type fetchOutcomeResponse struct {
	FeedID     int64  `json:"feedId"`
	Status     string `json:"status"`
	SourceURL  string `json:"sourceUrl,omitempty"`
	Inserted   int    `json:"inserted"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	Unreadable int    `json:"unreadable"`
	Error      string `json:"error,omitempty"`
}

type runStartedResponse struct {
	JobID string `json:"jobId"`
	RunID string `json:"runId"`
}

func NewFeedHandler(service service.FeedService, ingest service.IngestService, jobs JobController) *FeedHandler {
	return &FeedHandler{service: service, ingest: ingest, jobs: jobs}
}

func (h *FeedHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/feeds", h.Create)
	g.GET("/feeds", h.List)
	g.GET("/feeds/preview", h.Preview)
	g.GET("/feeds/stats", h.Stats)
	g.POST("/feeds/fetch-all", h.FetchAll)
	g.GET("/feeds/:id", h.Get)
	g.PUT("/feeds/:id", h.Update)
	g.DELETE("/feeds/:id", h.Delete)
	g.POST("/feeds/:id/fetch", h.Fetch)
	g.POST("/feeds/:id/pause", h.Pause)
	g.POST("/feeds/:id/resume", h.Resume)
}

func (h *FeedHandler) Create(c echo.Context) error {
	var req feedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	feed, err := h.service.Add(c.Request().Context(), req.input())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toFeedResponse(feed))
}

func (h *FeedHandler) List(c echo.Context) error {
	var status *model.FeedStatus
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		parsed := model.FeedStatus(raw)
		if !parsed.Valid() {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
		}
		status = &parsed
	}

	feeds, err := h.service.List(c.Request().Context(), status)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]feedResponse, 0, len(feeds))
	for _, feed := range feeds {
		response = append(response, toFeedResponse(feed))
	}
	return c.JSON(http.StatusOK, response)
}

func (h *FeedHandler) Preview(c echo.Context) error {
	address := strings.TrimSpace(c.QueryParam("address"))
	if address == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	preview, err := h.service.Preview(c.Request().Context(), address)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, feedPreviewResponse{
		Address:   preview.Address,
		SourceURL: preview.SourceURL,
		Title:     preview.Title,
		Kind:      string(preview.Kind),
		SiteURL:   preview.SiteURL,
		ItemCount: preview.ItemCount,
	})
}

func (h *FeedHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, feedStatsResponse{
		Total:  stats.Total,
		Active: stats.Active,
		Paused: stats.Paused,
		Error:  stats.Error,
	})
}

func (h *FeedHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	feed, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFeedResponse(feed))
}

func (h *FeedHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	var req feedRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	feed, err := h.service.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFeedResponse(feed))
}

func (h *FeedHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Fetch runs one feed synchronously. A failed download answers 502 with the recorded
// outcome, so the caller sees the diagnostic and the feed's new status.
func (h *FeedHandler) Fetch(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	outcome, err := h.ingest.FetchByID(c.Request().Context(), id)
	switch {
	case errors.Is(err, service.ErrFeedFetch) && outcome.FeedID != 0:
		return c.JSON(http.StatusBadGateway, toFetchOutcomeResponse(outcome))
	case err != nil:
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFetchOutcomeResponse(outcome))
}

func toFetchOutcomeResponse(outcome service.FeedOutcome) fetchOutcomeResponse {
	return fetchOutcomeResponse{
		FeedID:     outcome.FeedID,
		Status:     string(outcome.Status),
		SourceURL:  outcome.SourceURL,
		Inserted:   outcome.Inserted,
		Skipped:    outcome.Skipped,
		Failed:     outcome.Failed,
		Unreadable: outcome.Unreadable,
		Error:      outcome.Error,
	}
}

// FetchAll hands the run to the scheduler so it shares the job's single-instance guard.
func (h *FeedHandler) FetchAll(c echo.Context) error {
	runID, err := h.jobs.RunNow(scheduler.JobFetchAll)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusAccepted, runStartedResponse{JobID: scheduler.JobFetchAll, RunID: runID})
}

func (h *FeedHandler) Pause(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	feed, err := h.service.Pause(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFeedResponse(feed))
}

func (h *FeedHandler) Resume(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	feed, err := h.service.Resume(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toFeedResponse(feed))
}

func (r feedRequest) input() service.FeedInput {
	return service.FeedInput{
		Name:            r.Name,
		Address:         r.Address,
		Category:        r.Category,
		IntervalSeconds: r.Interval,
	}
}

func toFeedResponse(feed model.Feed) feedResponse {
	return feedResponse{
		ID:           feed.ID,
		Name:         feed.Name,
		Address:      feed.Address,
		Category:     feed.Category,
		Interval:     feed.IntervalSeconds,
		Status:       string(feed.Status),
		Kind:         string(feed.Kind),
		Title:        feed.Title,
		Description:  feed.Description,
		SiteURL:      feed.SiteURL,
		ErrorMessage: feed.ErrorMessage,
		LastFetch:    formatTimePtr(feed.LastFetch),
		ArticleCount: feed.ArticleCount,
		CreatedAt:    formatTime(feed.CreatedAt),
		UpdatedAt:    formatTime(feed.UpdatedAt),
	}
}
