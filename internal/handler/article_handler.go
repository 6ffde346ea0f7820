package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"castmind/backend/internal/model"
	"castmind/backend/internal/service"
)

const defaultArticlePage = 50

type ArticleHandler struct {
	service     service.ArticleService
	readability service.ReadabilityService
}

type articleResponse struct {
	ID                 int64    `json:"id"`
	FeedID             int64    `json:"feedId"`
	URL                string   `json:"url"`
	Title              string   `json:"title"`
	Content            *string  `json:"content,omitempty"`
	Summary            *string  `json:"summary,omitempty"`
	Author             *string  `json:"author,omitempty"`
	Categories         []string `json:"categories,omitempty"`
	PublishedAt        string   `json:"publishedAt"`
	Read               bool     `json:"read"`
	Processed          bool     `json:"processed"`
	Keywords           []string `json:"keywords,omitempty"`
	Sentiment          *string  `json:"sentiment,omitempty"`
	IsPodcast          bool     `json:"isPodcast"`
	AudioURL           *string  `json:"audioUrl,omitempty"`
	AudioType          *string  `json:"audioType,omitempty"`
	AudioDuration      *int     `json:"audioDuration,omitempty"`
	AudioSize          *int64   `json:"audioSize,omitempty"`
	PodcastDescription *string  `json:"podcastDescription,omitempty"`
	CreatedAt          string   `json:"createdAt"`
}

type articleStatsResponse struct {
	Total     int `json:"total"`
	Unread    int `json:"unread"`
	Processed int `json:"processed"`
	Podcasts  int `json:"podcasts"`
}

type readableContentResponse struct {
	Content string `json:"content"`
}

// NewArticleHandler takes a nil readability service when extraction is disabled.
func NewArticleHandler(service service.ArticleService, readability service.ReadabilityService) *ArticleHandler {
	return &ArticleHandler{service: service, readability: readability}
}

func (h *ArticleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/articles", h.List)
	g.GET("/articles/stats", h.Stats)
	g.GET("/articles/:id", h.Get)
	g.GET("/articles/:id/readable", h.Readable)
	g.POST("/articles/:id/read", h.MarkRead)
	g.POST("/articles/:id/unread", h.MarkUnread)
}

func (h *ArticleHandler) List(c echo.Context) error {
	filter, err := parseArticleFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	articles, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	response := make([]articleResponse, 0, len(articles))
	for _, article := range articles {
		response = append(response, toArticleResponse(article))
	}
	return c.JSON(http.StatusOK, response)
}

func parseArticleFilter(c echo.Context) (model.ArticleFilter, error) {
	var filter model.ArticleFilter
	if raw := strings.TrimSpace(c.QueryParam("feedId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.FeedID = &id
	}
	var err error
	if filter.Read, err = parseBoolQuery(c, "read"); err != nil {
		return filter, err
	}
	if filter.Processed, err = parseBoolQuery(c, "processed"); err != nil {
		return filter, err
	}
	if filter.Podcast, err = parseBoolQuery(c, "podcast"); err != nil {
		return filter, err
	}
	if filter.Limit, err = parseIntQuery(c, "limit", defaultArticlePage); err != nil {
		return filter, err
	}
	if filter.Offset, err = parseIntQuery(c, "offset", 0); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *ArticleHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, articleStatsResponse{
		Total:     stats.Total,
		Unread:    stats.Unread,
		Processed: stats.Processed,
		Podcasts:  stats.Podcasts,
	})
}

func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	article, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

func (h *ArticleHandler) Readable(c echo.Context) error {
	if h.readability == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "readability disabled"})
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	ctx := c.Request().Context()
	article, err := h.service.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	content, err := h.readability.Extract(ctx, article)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, readableContentResponse{Content: content})
}

func (h *ArticleHandler) MarkRead(c echo.Context) error {
	return h.markRead(c, true)
}

func (h *ArticleHandler) MarkUnread(c echo.Context) error {
	return h.markRead(c, false)
}

func (h *ArticleHandler) markRead(c echo.Context, read bool) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	if err := h.service.MarkRead(c.Request().Context(), id, read); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toArticleResponse(article model.Article) articleResponse {
	return articleResponse{
		ID:                 article.ID,
		FeedID:             article.FeedID,
		URL:                article.URL,
		Title:              article.Title,
		Content:            article.Content,
		Summary:            article.Summary,
		Author:             article.Author,
		Categories:         splitList(article.Categories),
		PublishedAt:        formatTime(article.PublishedAt),
		Read:               article.Read,
		Processed:          article.Processed,
		Keywords:           splitList(article.Keywords),
		Sentiment:          article.Sentiment,
		IsPodcast:          article.IsPodcast,
		AudioURL:           article.AudioURL,
		AudioType:          article.AudioType,
		AudioDuration:      article.AudioDuration,
		AudioSize:          article.AudioSize,
		PodcastDescription: article.PodcastDescription,
		CreatedAt:          formatTime(article.CreatedAt),
	}
}

// splitList expands a stored "a, b" column.
func splitList(raw *string) []string {
	if raw == nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(*raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
