package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"castmind/backend/internal/db"
	"castmind/backend/internal/model"
	"castmind/backend/pkg/snowflake"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var snowflakeOnce sync.Once

// NewTestDB opens a migrated in-memory database unique to the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", name, time.Now().UnixNano())
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

func ptrVal[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// SeedFeed inserts a feed and returns its ID. Zero fields get the schema defaults.
func SeedFeed(t *testing.T, db *sql.DB, feed model.Feed) int64 {
	t.Helper()

	if feed.ID == 0 {
		feed.ID = snowflake.NextID()
	}
	if feed.Name == "" {
		feed.Name = "feed"
	}
	if feed.Address == "" {
		feed.Address = fmt.Sprintf("https://example.com/%d.xml", feed.ID)
	}
	if feed.Category == "" {
		feed.Category = model.DefaultCategory
	}
	if feed.IntervalSeconds == 0 {
		feed.IntervalSeconds = model.DefaultIntervalSeconds
	}
	if feed.Status == "" {
		feed.Status = model.FeedStatusActive
	}
	if feed.Kind == "" {
		feed.Kind = model.FeedKindRSS
	}

	now := formatTime(time.Now())
	var lastFetch interface{}
	if feed.LastFetch != nil {
		lastFetch = formatTime(*feed.LastFetch)
	}

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO feeds (id, name, address, category, interval_seconds, status, kind, title, description, site_url, error_message, last_fetch, article_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		feed.ID, feed.Name, feed.Address, feed.Category, feed.IntervalSeconds, string(feed.Status), string(feed.Kind),
		ptrVal(feed.Title), ptrVal(feed.Description), ptrVal(feed.SiteURL), ptrVal(feed.ErrorMessage), lastFetch,
		feed.ArticleCount, now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed feed: %v", err)
	}

	return feed.ID
}

// SeedArticle inserts an article and returns its ID. A zero CreatedAt means now.
func SeedArticle(t *testing.T, db *sql.DB, article model.Article) int64 {
	t.Helper()

	if article.ID == 0 {
		article.ID = snowflake.NextID()
	}
	if article.URL == "" {
		article.URL = fmt.Sprintf("https://example.com/articles/%d", article.ID)
	}
	if article.Title == "" {
		article.Title = "Untitled"
	}
	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	if article.PublishedAt.IsZero() {
		article.PublishedAt = article.CreatedAt
	}

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO articles (id, feed_id, url, title, content, summary, author, categories, published_at, read, processed, keywords, sentiment,
			is_podcast, audio_url, audio_type, audio_duration, audio_size, podcast_description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		article.ID, article.FeedID, article.URL, article.Title, ptrVal(article.Content), ptrVal(article.Summary),
		ptrVal(article.Author), ptrVal(article.Categories), formatTime(article.PublishedAt), boolToInt(article.Read),
		boolToInt(article.Processed), ptrVal(article.Keywords), ptrVal(article.Sentiment), boolToInt(article.IsPodcast),
		ptrVal(article.AudioURL), ptrVal(article.AudioType), ptrVal(article.AudioDuration), ptrVal(article.AudioSize),
		ptrVal(article.PodcastDescription), formatTime(article.CreatedAt), formatTime(now),
	)
	if err != nil {
		t.Fatalf("failed to seed article: %v", err)
	}

	return article.ID
}
