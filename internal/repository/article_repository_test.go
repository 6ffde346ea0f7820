package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestArticleRepository_InsertIfAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)
	ctx := context.Background()
	feedID := testutil.SeedFeed(t, db, model.Feed{Name: "F"})

	duration := 1800
	size := int64(1048576)
	article := model.Article{
		FeedID:        feedID,
		URL:           "https://example.com/ep1",
		Title:         "Episode 1",
		Content:       strPtr("<p>hello</p>"),
		IsPodcast:     true,
		AudioURL:      strPtr("https://cdn.example.com/ep1.mp3"),
		AudioType:     strPtr("mpeg"),
		AudioDuration: &duration,
		AudioSize:     &size,
	}

	inserted, err := repo.InsertIfAbsent(ctx, article)
	require.NoError(t, err)
	require.True(t, inserted)

	article.Title = "Episode 1 (again)"
	inserted, err = repo.InsertIfAbsent(ctx, article)
	require.NoError(t, err)
	require.False(t, inserted)

	count, err := repo.CountByFeed(ctx, feedID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	exists, err := repo.ExistsByURL(ctx, "https://example.com/ep1")
	require.NoError(t, err)
	require.True(t, exists)

	list, err := repo.List(ctx, model.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	stored := list[0]
	require.Equal(t, "Episode 1", stored.Title)
	require.True(t, stored.IsPodcast)
	require.Equal(t, 1800, *stored.AudioDuration)
	require.Equal(t, int64(1048576), *stored.AudioSize)
	require.Equal(t, "mpeg", *stored.AudioType)
	require.False(t, stored.Read)
	require.False(t, stored.Processed)
}

func TestArticleRepository_InsertIfAbsentConcurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)
	ctx := context.Background()
	feedID := testutil.SeedFeed(t, db, model.Feed{Name: "F"})

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.InsertIfAbsent(ctx, model.Article{FeedID: feedID, URL: "https://example.com/same", Title: "same"})
			require.NoError(t, err)
			if ok {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, inserted)
	count, err := repo.CountByFeed(ctx, feedID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestArticleRepository_InsertUnknownFeed(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)

	_, err := repo.InsertIfAbsent(context.Background(), model.Article{FeedID: 42, URL: "https://example.com/x", Title: "x"})
	require.Error(t, err)
}

func TestArticleRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)
	ctx := context.Background()
	feedA := testutil.SeedFeed(t, db, model.Feed{Name: "A"})
	feedB := testutil.SeedFeed(t, db, model.Feed{Name: "B"})

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.SeedArticle(t, db, model.Article{FeedID: feedA, Title: "old", PublishedAt: base})
	testutil.SeedArticle(t, db, model.Article{FeedID: feedA, Title: "new", PublishedAt: base.Add(time.Hour), Read: true})
	testutil.SeedArticle(t, db, model.Article{FeedID: feedB, Title: "pod", PublishedAt: base.Add(2 * time.Hour), IsPodcast: true, Processed: true})

	all, err := repo.List(ctx, model.ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "pod", all[0].Title)
	require.Equal(t, "old", all[2].Title)

	byFeed, err := repo.List(ctx, model.ArticleFilter{FeedID: &feedA})
	require.NoError(t, err)
	require.Len(t, byFeed, 2)

	unread, err := repo.List(ctx, model.ArticleFilter{Read: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, unread, 2)

	podcasts, err := repo.List(ctx, model.ArticleFilter{Podcast: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, podcasts, 1)
	require.Equal(t, "pod", podcasts[0].Title)

	unprocessed, err := repo.List(ctx, model.ArticleFilter{Processed: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, unprocessed, 2)

	page, err := repo.List(ctx, model.ArticleFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "new", page[0].Title)
}

func TestArticleRepository_ListUnprocessedAndMarkProcessed(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)
	ctx := context.Background()
	feedID := testutil.SeedFeed(t, db, model.Feed{Name: "F"})

	now := time.Now()
	first := testutil.SeedArticle(t, db, model.Article{FeedID: feedID, CreatedAt: now.Add(-2 * time.Hour)})
	testutil.SeedArticle(t, db, model.Article{FeedID: feedID, CreatedAt: now.Add(-time.Hour)})
	testutil.SeedArticle(t, db, model.Article{FeedID: feedID, Processed: true})

	pending, err := repo.ListUnprocessed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, first, pending[0].ID)

	err = repo.MarkProcessed(ctx, first, model.Analysis{
		Summary:   "short summary",
		Keywords:  []string{"go", "sqlite"},
		Sentiment: "positive",
	})
	require.NoError(t, err)

	article, err := repo.GetByID(ctx, first)
	require.NoError(t, err)
	require.True(t, article.Processed)
	require.Equal(t, "short summary", *article.Summary)
	require.Equal(t, "go, sqlite", *article.Keywords)
	require.Equal(t, "positive", *article.Sentiment)

	pending, err = repo.ListUnprocessed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.ErrorIs(t, repo.MarkProcessed(ctx, 1, model.Analysis{}), sql.ErrNoRows)
}

func TestArticleRepository_MarkReadAndReadable(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)
	ctx := context.Background()
	feedID := testutil.SeedFeed(t, db, model.Feed{Name: "F"})
	id := testutil.SeedArticle(t, db, model.Article{FeedID: feedID})

	require.NoError(t, repo.MarkRead(ctx, id, true))
	require.NoError(t, repo.UpdateReadableContent(ctx, id, "<p>full text</p>"))

	article, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.True(t, article.Read)
	require.Equal(t, "<p>full text</p>", *article.ReadableContent)

	require.NoError(t, repo.MarkRead(ctx, id, false))
	article, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.False(t, article.Read)

	require.ErrorIs(t, repo.MarkRead(ctx, 7, true), sql.ErrNoRows)
}

func TestArticleRepository_DeleteRetained(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)
	ctx := context.Background()
	feedA := testutil.SeedFeed(t, db, model.Feed{Name: "A"})
	feedB := testutil.SeedFeed(t, db, model.Feed{Name: "B"})

	now := time.Now()
	old := now.AddDate(0, 0, -40)
	cases := []struct {
		feed      int64
		created   time.Time
		read      bool
		processed bool
		deleted   bool
	}{
		{feedA, old, true, true, true},
		{feedA, old, true, false, false},
		{feedA, old, false, true, false},
		{feedB, now, true, true, false},
		{feedB, old, true, true, true},
	}
	ids := make([]int64, len(cases))
	for i, tc := range cases {
		ids[i] = testutil.SeedArticle(t, db, model.Article{
			FeedID:    tc.feed,
			URL:       fmt.Sprintf("https://example.com/retention/%d", i),
			CreatedAt: tc.created,
			Read:      tc.read,
			Processed: tc.processed,
		})
	}

	result, err := repo.DeleteRetained(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Deleted)
	require.ElementsMatch(t, []int64{feedA, feedB}, result.FeedIDs)

	for i, tc := range cases {
		_, err := repo.GetByID(ctx, ids[i])
		if tc.deleted {
			require.ErrorIs(t, err, sql.ErrNoRows, "case %d", i)
		} else {
			require.NoError(t, err, "case %d", i)
		}
	}

	result, err = repo.DeleteRetained(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Zero(t, result.Deleted)
	require.Empty(t, result.FeedIDs)
}

func TestArticleRepository_Stats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewArticleRepository(db)
	feedID := testutil.SeedFeed(t, db, model.Feed{Name: "F"})

	testutil.SeedArticle(t, db, model.Article{FeedID: feedID})
	testutil.SeedArticle(t, db, model.Article{FeedID: feedID, Read: true, Processed: true})
	testutil.SeedArticle(t, db, model.Article{FeedID: feedID, IsPodcast: true})

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.ArticleStats{Total: 3, Unread: 2, Processed: 1, Podcasts: 1}, stats)
}
