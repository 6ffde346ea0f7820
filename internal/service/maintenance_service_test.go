package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository/testutil"
	"castmind/backend/internal/service"
)

func TestMaintenance_ReconcileStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/still-down" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(podcastFeed))
	}))
	defer server.Close()

	p := newPipeline(t)
	ctx := context.Background()
	recovered := testutil.SeedFeed(t, p.db, model.Feed{Address: server.URL + "/back", Status: model.FeedStatusError, ErrorMessage: strPtr("HTTP 500")})
	failing := testutil.SeedFeed(t, p.db, model.Feed{Address: server.URL + "/still-down", Status: model.FeedStatusError})
	drifted := testutil.SeedFeed(t, p.db, model.Feed{ArticleCount: 5})
	testutil.SeedArticle(t, p.db, model.Article{FeedID: drifted})

	svc := service.NewMaintenanceService(p.feeds, p.articles, p.ingest, p.status)
	report, err := svc.ReconcileStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, service.StatusReport{Checked: 2, Recovered: 1, StillFailing: 1, CountsFixed: 1}, report)

	feed, err := p.feeds.GetByID(ctx, recovered)
	require.NoError(t, err)
	require.Equal(t, model.FeedStatusActive, feed.Status)
	require.Nil(t, feed.ErrorMessage)

	feed, err = p.feeds.GetByID(ctx, failing)
	require.NoError(t, err)
	require.Equal(t, model.FeedStatusError, feed.Status)
	require.Contains(t, *feed.ErrorMessage, "500")

	feed, err = p.feeds.GetByID(ctx, drifted)
	require.NoError(t, err)
	require.Equal(t, 1, feed.ArticleCount)
}

func TestMaintenance_Cleanup(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()
	feedID := testutil.SeedFeed(t, p.db, model.Feed{ArticleCount: 4})
	old := time.Now().AddDate(0, 0, -45)

	testutil.SeedArticle(t, p.db, model.Article{FeedID: feedID, Read: true, Processed: true, CreatedAt: old})
	unread := testutil.SeedArticle(t, p.db, model.Article{FeedID: feedID, Processed: true, CreatedAt: old})
	unprocessed := testutil.SeedArticle(t, p.db, model.Article{FeedID: feedID, Read: true, CreatedAt: old})
	recent := testutil.SeedArticle(t, p.db, model.Article{FeedID: feedID, Read: true, Processed: true})

	svc := service.NewMaintenanceService(p.feeds, p.articles, p.ingest, p.status)
	report, err := svc.Cleanup(ctx, 30)
	require.NoError(t, err)
	require.Equal(t, int64(1), report.Deleted)
	require.Equal(t, 1, report.FeedsRecounted)

	for _, id := range []int64{unread, unprocessed, recent} {
		_, err := p.articles.GetByID(ctx, id)
		require.NoError(t, err)
	}
	feed, err := p.feeds.GetByID(ctx, feedID)
	require.NoError(t, err)
	require.Equal(t, 3, feed.ArticleCount)

	_, err = svc.Cleanup(ctx, 0)
	require.ErrorIs(t, err, service.ErrInvalid)
}
