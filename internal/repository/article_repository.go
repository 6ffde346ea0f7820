//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"castmind/backend/internal/model"
	"castmind/backend/pkg/snowflake"
)

// RetentionResult describes a retention sweep.
type RetentionResult struct {
	Deleted int64
	FeedIDs []int64
}

type ArticleRepository interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	// InsertIfAbsent inserts the article unless its URL is already stored.
	// A URL conflict, including one raced by a concurrent insert, reports false with a nil error.
	InsertIfAbsent(ctx context.Context, article model.Article) (bool, error)
	GetByID(ctx context.Context, id int64) (model.Article, error)
	List(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error)
	CountByFeed(ctx context.Context, feedID int64) (int, error)
	ListUnprocessed(ctx context.Context, limit int) ([]model.Article, error)
	MarkProcessed(ctx context.Context, id int64, analysis model.Analysis) error
	MarkRead(ctx context.Context, id int64, read bool) error
	UpdateReadableContent(ctx context.Context, id int64, content string) error
	DeleteRetained(ctx context.Context, cutoff time.Time) (RetentionResult, error)
	Stats(ctx context.Context) (model.ArticleStats, error)
}

type articleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) ArticleRepository {
	return &articleRepository{db: db}
}

const articleColumns = `id, feed_id, url, title, content, summary, author, categories, published_at, read, processed, keywords, sentiment, readable_content,
	is_podcast, audio_url, audio_type, audio_duration, audio_size, podcast_description, created_at, updated_at`

// retentionPredicate selects articles that are old enough, read and processed. All three must hold.
const retentionPredicate = `created_at < ? AND read = 1 AND processed = 1`

func (r *articleRepository) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM articles WHERE url = ?)`, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check article url: %w", err)
	}
	return exists == 1, nil
}

func (r *articleRepository) InsertIfAbsent(ctx context.Context, a model.Article) (bool, error) {
	if a.ID == 0 {
		a.ID = snowflake.NextID()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO articles (id, feed_id, url, title, content, summary, author, categories, published_at, read, processed,
			is_podcast, audio_url, audio_type, audio_duration, audio_size, podcast_description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO NOTHING
	`, a.ID, a.FeedID, a.URL, a.Title, nullableString(a.Content), nullableString(a.Summary), nullableString(a.Author),
		nullableString(a.Categories), formatTime(a.PublishedAt), boolToInt(a.Read), boolToInt(a.Processed),
		boolToInt(a.IsPodcast), nullableString(a.AudioURL), nullableString(a.AudioType), nullableInt(a.AudioDuration),
		nullableInt64(a.AudioSize), nullableString(a.PodcastDescription), formatTime(a.CreatedAt), formatTime(now))
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (model.Article, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return scanArticle(row)
}

func (r *articleRepository) List(ctx context.Context, filter model.ArticleFilter) ([]model.Article, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.FeedID != nil {
		conditions = append(conditions, "feed_id = ?")
		args = append(args, *filter.FeedID)
	}
	if filter.Read != nil {
		conditions = append(conditions, "read = ?")
		args = append(args, boolToInt(*filter.Read))
	}
	if filter.Processed != nil {
		conditions = append(conditions, "processed = ?")
		args = append(args, boolToInt(*filter.Processed))
	}
	if filter.Podcast != nil {
		conditions = append(conditions, "is_podcast = ?")
		args = append(args, boolToInt(*filter.Podcast))
	}

	query := `SELECT ` + articleColumns + ` FROM articles`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY published_at DESC, id DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, filter.Offset)

	return r.queryArticles(ctx, query, args...)
}

func (r *articleRepository) CountByFeed(ctx context.Context, feedID int64) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE feed_id = ?`, feedID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// ListUnprocessed returns the oldest unprocessed articles first.
func (r *articleRepository) ListUnprocessed(ctx context.Context, limit int) ([]model.Article, error) {
	return r.queryArticles(ctx, `SELECT `+articleColumns+` FROM articles WHERE processed = 0 ORDER BY created_at, id LIMIT ?`, limit)
}

func (r *articleRepository) MarkProcessed(ctx context.Context, id int64, analysis model.Analysis) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE articles SET processed = 1, summary = ?, keywords = ?, sentiment = ?, updated_at = ? WHERE id = ?
	`, analysis.Summary, strings.Join(analysis.Keywords, ", "), analysis.Sentiment, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("mark article processed: %w", err)
	}
	return requireAffected(result)
}

func (r *articleRepository) MarkRead(ctx context.Context, id int64, read bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE articles SET read = ?, updated_at = ? WHERE id = ?`, boolToInt(read), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("mark article read: %w", err)
	}
	return requireAffected(result)
}

func (r *articleRepository) UpdateReadableContent(ctx context.Context, id int64, content string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE articles SET readable_content = ?, updated_at = ? WHERE id = ?`, content, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update readable content: %w", err)
	}
	return requireAffected(result)
}

// DeleteRetained deletes every article created before cutoff that is both read and processed.
func (r *articleRepository) DeleteRetained(ctx context.Context, cutoff time.Time) (RetentionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return RetentionResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cutoffStr := formatTime(cutoff)
	feedIDs, err := distinctFeedIDs(ctx, tx, cutoffStr)
	if err != nil {
		return RetentionResult{}, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE `+retentionPredicate, cutoffStr)
	if err != nil {
		return RetentionResult{}, fmt.Errorf("delete retained articles: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return RetentionResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return RetentionResult{}, fmt.Errorf("commit tx: %w", err)
	}
	return RetentionResult{Deleted: deleted, FeedIDs: feedIDs}, nil
}

func distinctFeedIDs(ctx context.Context, q dbtx, cutoff string) ([]int64, error) {
	rows, err := q.QueryContext(ctx, `SELECT DISTINCT feed_id FROM articles WHERE `+retentionPredicate, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list retained feeds: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *articleRepository) Stats(ctx context.Context) (model.ArticleStats, error) {
	var stats model.ArticleStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN read = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(processed), 0),
			COALESCE(SUM(is_podcast), 0)
		FROM articles
	`).Scan(&stats.Total, &stats.Unread, &stats.Processed, &stats.Podcasts)
	if err != nil {
		return model.ArticleStats{}, fmt.Errorf("article stats: %w", err)
	}
	return stats, nil
}

func (r *articleRepository) queryArticles(ctx context.Context, query string, args ...interface{}) ([]model.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]model.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func scanArticle(row rowScanner) (model.Article, error) {
	var (
		a                                  model.Article
		content, summary, author, category sql.NullString
		keywords, sentiment, readable      sql.NullString
		audioURL, audioType, podcastDesc   sql.NullString
		audioDuration, audioSize           sql.NullInt64
		read, processed, isPodcast         int
		publishedAt, createdAt, updatedAt  string
	)
	if err := row.Scan(&a.ID, &a.FeedID, &a.URL, &a.Title, &content, &summary, &author, &category, &publishedAt,
		&read, &processed, &keywords, &sentiment, &readable, &isPodcast, &audioURL, &audioType, &audioDuration,
		&audioSize, &podcastDesc, &createdAt, &updatedAt); err != nil {
		return model.Article{}, err
	}
	a.Content = stringPtr(content)
	a.Summary = stringPtr(summary)
	a.Author = stringPtr(author)
	a.Categories = stringPtr(category)
	a.Keywords = stringPtr(keywords)
	a.Sentiment = stringPtr(sentiment)
	a.ReadableContent = stringPtr(readable)
	a.AudioURL = stringPtr(audioURL)
	a.AudioType = stringPtr(audioType)
	a.PodcastDescription = stringPtr(podcastDesc)
	a.AudioDuration = intPtr(audioDuration)
	a.AudioSize = int64Ptr(audioSize)
	a.Read = read == 1
	a.Processed = processed == 1
	a.IsPodcast = isPodcast == 1
	a.PublishedAt, _ = parseTime(publishedAt)
	a.CreatedAt, _ = parseTime(createdAt)
	a.UpdatedAt, _ = parseTime(updatedAt)
	return a, nil
}
