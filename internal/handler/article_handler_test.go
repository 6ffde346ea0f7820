package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"castmind/backend/internal/handler"
	"castmind/backend/internal/model"
	"castmind/backend/internal/service"
	"castmind/backend/internal/service/mock"
)

func strPtr(s string) *string { return &s }

func TestArticleHandler_List_ParsesFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockArticleService(ctrl)
	h := handler.NewArticleHandler(mockService, nil)

	e := newTestEcho()
	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/articles?feedId=4&read=false&podcast=true&limit=10&offset=20", nil))

	duration := 1800
	mockService.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter model.ArticleFilter) ([]model.Article, error) {
			require.Equal(t, int64(4), *filter.FeedID)
			require.False(t, *filter.Read)
			require.True(t, *filter.Podcast)
			require.Nil(t, filter.Processed)
			require.Equal(t, 10, filter.Limit)
			require.Equal(t, 20, filter.Offset)
			return []model.Article{{
				ID:            1,
				FeedID:        4,
				URL:           "https://example.org/ep1",
				Title:         "Episode 1",
				Categories:    strPtr("go, feeds"),
				Keywords:      strPtr("golang, scheduler"),
				IsPodcast:     true,
				AudioURL:      strPtr("https://cdn.example.org/ep1.mp3"),
				AudioType:     strPtr("mpeg"),
				AudioDuration: &duration,
				PublishedAt:   created,
				CreatedAt:     created,
			}}, nil
		})

	require.NoError(t, h.List(c))

	var resp []handler.ArticleResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Len(t, resp, 1)
	require.Equal(t, []string{"go", "feeds"}, resp[0].Categories)
	require.Equal(t, []string{"golang", "scheduler"}, resp[0].Keywords)
	require.True(t, resp[0].IsPodcast)
	require.Equal(t, 1800, *resp[0].AudioDuration)
}

func TestArticleHandler_List_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockArticleService(ctrl)
	h := handler.NewArticleHandler(mockService, nil)

	e := newTestEcho()
	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/articles", nil))
	mockService.EXPECT().
		List(gomock.Any(), model.ArticleFilter{Limit: 50}).
		Return(nil, nil)

	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestArticleHandler_List_BadQuery(t *testing.T) {
	h := handler.NewArticleHandler(nil, nil)
	e := newTestEcho()

	for _, target := range []string{"/articles?read=maybe", "/articles?feedId=x", "/articles?limit=ten"} {
		c, rec := newTestContext(e, newJSONRequest(http.MethodGet, target, nil))
		require.NoError(t, h.List(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestArticleHandler_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockArticleService(ctrl)
	h := handler.NewArticleHandler(mockService, nil)
	e := newTestEcho()

	mockService.EXPECT().MarkRead(gomock.Any(), int64(5), true).Return(nil)
	c, rec := newTestContext(e, newJSONRequest(http.MethodPost, "/articles/5/read", nil))
	setPathParams(c, map[string]string{"id": "5"})
	require.NoError(t, h.MarkRead(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	mockService.EXPECT().MarkRead(gomock.Any(), int64(6), false).Return(service.ErrNotFound)
	c, rec = newTestContext(e, newJSONRequest(http.MethodPost, "/articles/6/unread", nil))
	setPathParams(c, map[string]string{"id": "6"})
	require.NoError(t, h.MarkUnread(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticleHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockArticleService(ctrl)
	h := handler.NewArticleHandler(mockService, nil)

	e := newTestEcho()
	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/articles/stats", nil))
	mockService.EXPECT().Stats(gomock.Any()).Return(model.ArticleStats{Total: 10, Unread: 7, Processed: 3, Podcasts: 2}, nil)

	require.NoError(t, h.Stats(c))
	var resp handler.ArticleStatsResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, 7, resp.Unread)
	require.Equal(t, 2, resp.Podcasts)
}

func TestArticleHandler_Readable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockArticleService(ctrl)
	mockReadability := mock.NewMockReadabilityService(ctrl)
	e := newTestEcho()

	t.Run("Disabled", func(t *testing.T) {
		h := handler.NewArticleHandler(mockService, nil)
		c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/articles/1/readable", nil))
		setPathParams(c, map[string]string{"id": "1"})
		require.NoError(t, h.Readable(c))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Extracted", func(t *testing.T) {
		h := handler.NewArticleHandler(mockService, mockReadability)
		article := model.Article{ID: 1, URL: "https://example.org/post"}
		mockService.EXPECT().Get(gomock.Any(), int64(1)).Return(article, nil)
		mockReadability.EXPECT().Extract(gomock.Any(), article).Return("<p>clean</p>", nil)

		c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/articles/1/readable", nil))
		setPathParams(c, map[string]string{"id": "1"})
		require.NoError(t, h.Readable(c))
		var resp handler.ReadableContentResponse
		assertJSONResponse(t, rec, http.StatusOK, &resp)
		require.Equal(t, "<p>clean</p>", resp.Content)
	})

	t.Run("NotWeb", func(t *testing.T) {
		h := handler.NewArticleHandler(mockService, mockReadability)
		article := model.Article{ID: 2, URL: "urn:castmind:entry:abc"}
		mockService.EXPECT().Get(gomock.Any(), int64(2)).Return(article, nil)
		mockReadability.EXPECT().Extract(gomock.Any(), article).Return("", service.ErrInvalid)

		c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/articles/2/readable", nil))
		setPathParams(c, map[string]string{"id": "2"})
		require.NoError(t, h.Readable(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSplitList(t *testing.T) {
	require.Nil(t, handler.SplitList(nil))
	require.Nil(t, handler.SplitList(strPtr(" , ")))
	require.Equal(t, []string{"a", "b c"}, handler.SplitList(strPtr("a, b c,")))
}
