package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"castmind/backend/internal/fetcher"
	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	repomock "castmind/backend/internal/repository/mock"
	"castmind/backend/internal/repository/testutil"
	"castmind/backend/internal/service"
	"castmind/backend/internal/service/mock"
)

func newFeedService(t *testing.T, p *pipeline) (service.FeedService, *mock.MockFeedValidator) {
	t.Helper()
	validator := mock.NewMockFeedValidator(gomock.NewController(t))
	return service.NewFeedService(p.feeds, p.status, validator), validator
}

func TestFeedService_AddAppliesDefaults(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)

	feed, err := svc.Add(context.Background(), service.FeedInput{Address: "  rsshub://github/trending/daily  "})
	require.NoError(t, err)
	require.NotZero(t, feed.ID)
	require.Equal(t, "rsshub://github/trending/daily", feed.Address)
	require.Equal(t, feed.Address, feed.Name)
	require.Equal(t, model.DefaultCategory, feed.Category)
	require.Equal(t, model.DefaultIntervalSeconds, feed.IntervalSeconds)
	require.Equal(t, model.FeedStatusActive, feed.Status)
	require.Zero(t, feed.ArticleCount)
}

func TestFeedService_AddRejectsDuplicateAddress(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)
	ctx := context.Background()

	first, err := svc.Add(ctx, service.FeedInput{Name: "HN", Address: "https://news.ycombinator.com/rss"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, service.FeedInput{Name: "again", Address: "https://news.ycombinator.com/rss"})
	require.ErrorIs(t, err, service.ErrConflict)
	var conflict *service.FeedConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, first.ID, conflict.ExistingFeed.ID)
}

func TestFeedService_AddLosingConcurrentInsertIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	feeds := repomock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(feeds, nil, nil)
	ctx := context.Background()

	address := "https://example.org/feed.xml"
	winner := model.Feed{ID: 11, Name: "winner", Address: address}
	gomock.InOrder(
		feeds.EXPECT().FindByAddress(gomock.Any(), address).Return(nil, nil),
		feeds.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.Feed{}, fmt.Errorf("insert feed: %w", repository.ErrDuplicate)),
		feeds.EXPECT().FindByAddress(gomock.Any(), address).Return(&winner, nil),
	)

	_, err := svc.Add(ctx, service.FeedInput{Name: "loser", Address: address})
	require.ErrorIs(t, err, service.ErrConflict)
	var conflict *service.FeedConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, winner.ID, conflict.ExistingFeed.ID)
}

func TestFeedService_UpdateOntoTakenAddressIsConflict(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)
	ctx := context.Background()

	taken, err := svc.Add(ctx, service.FeedInput{Address: "https://example.org/a.xml"})
	require.NoError(t, err)
	other, err := svc.Add(ctx, service.FeedInput{Address: "https://example.org/b.xml"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, service.FeedInput{Address: taken.Address})
	var conflict *service.FeedConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, taken.ID, conflict.ExistingFeed.ID)
}

func TestFeedService_AddValidation(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)

	tests := []service.FeedInput{
		{Address: ""},
		{Address: "ftp://example.org/feed"},
		{Address: "https://example.org/a feed"},
		{Address: "https://example.org/feed", IntervalSeconds: -1},
	}
	for _, input := range tests {
		_, err := svc.Add(context.Background(), input)
		require.ErrorIs(t, err, service.ErrInvalid, "input %+v", input)
	}
}

func TestFeedService_Update(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)
	ctx := context.Background()

	a, err := svc.Add(ctx, service.FeedInput{Name: "A", Address: "https://a.example/feed", Category: "news"})
	require.NoError(t, err)
	b, err := svc.Add(ctx, service.FeedInput{Name: "B", Address: "https://b.example/feed"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, service.FeedInput{Name: "Renamed", IntervalSeconds: 600})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, "https://a.example/feed", updated.Address)
	require.Equal(t, "news", updated.Category)
	require.Equal(t, 600, updated.IntervalSeconds)

	_, err = svc.Update(ctx, a.ID, service.FeedInput{Address: b.Address})
	require.ErrorIs(t, err, service.ErrConflict)

	_, err = svc.Update(ctx, 999, service.FeedInput{Name: "x"})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestFeedService_DeleteRemovesArticles(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)
	ctx := context.Background()

	feedID := testutil.SeedFeed(t, p.db, model.Feed{})
	articleID := testutil.SeedArticle(t, p.db, model.Article{FeedID: feedID})

	require.NoError(t, svc.Delete(ctx, feedID))
	_, err := svc.Get(ctx, feedID)
	require.ErrorIs(t, err, service.ErrNotFound)
	_, err = p.articles.GetByID(ctx, articleID)
	require.Error(t, err)

	require.ErrorIs(t, svc.Delete(ctx, feedID), service.ErrNotFound)
}

func TestFeedService_ListByStatus(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)
	ctx := context.Background()

	testutil.SeedFeed(t, p.db, model.Feed{})
	pausedID := testutil.SeedFeed(t, p.db, model.Feed{Status: model.FeedStatusPaused})

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	paused := model.FeedStatusPaused
	only, err := svc.List(ctx, &paused)
	require.NoError(t, err)
	require.Len(t, only, 1)
	require.Equal(t, pausedID, only[0].ID)

	bogus := model.FeedStatus("sleeping")
	_, err = svc.List(ctx, &bogus)
	require.ErrorIs(t, err, service.ErrInvalid)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, model.FeedStats{Total: 2, Active: 1, Paused: 1}, stats)
}

func TestFeedService_PauseResume(t *testing.T) {
	p := newPipeline(t)
	svc, _ := newFeedService(t, p)
	ctx := context.Background()
	id := testutil.SeedFeed(t, p.db, model.Feed{})

	feed, err := svc.Pause(ctx, id)
	require.NoError(t, err)
	require.Equal(t, model.FeedStatusPaused, feed.Status)

	feed, err = svc.Resume(ctx, id)
	require.NoError(t, err)
	require.Equal(t, model.FeedStatusActive, feed.Status)
}

func TestFeedService_Preview(t *testing.T) {
	p := newPipeline(t)
	svc, validator := newFeedService(t, p)
	ctx := context.Background()

	validator.EXPECT().Validate(gomock.Any(), "rsshub://a/b").Return(&fetcher.ParsedFeed{
		SourceURL: "https://rsshub.app/a/b",
		Title:     "Route",
		Link:      "https://a.example",
		Kind:      model.FeedKindRSS,
		Items:     make([]*gofeed.Item, 3),
	}, nil)
	preview, err := svc.Preview(ctx, " rsshub://a/b ")
	require.NoError(t, err)
	require.Equal(t, service.FeedPreview{
		Address:   "rsshub://a/b",
		SourceURL: "https://rsshub.app/a/b",
		Title:     "Route",
		Kind:      model.FeedKindRSS,
		SiteURL:   "https://a.example",
		ItemCount: 3,
	}, preview)

	validator.EXPECT().Validate(gomock.Any(), "https://down.example").Return(nil, errors.New("boom"))
	_, err = svc.Preview(ctx, "https://down.example")
	require.Error(t, err)

	_, err = svc.Preview(ctx, "")
	require.ErrorIs(t, err, service.ErrInvalid)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, all)
}
