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

type FeedRepository interface {
	Create(ctx context.Context, feed model.Feed) (model.Feed, error)
	GetByID(ctx context.Context, id int64) (model.Feed, error)
	FindByAddress(ctx context.Context, address string) (*model.Feed, error)
	List(ctx context.Context, statuses ...model.FeedStatus) ([]model.Feed, error)
	Update(ctx context.Context, feed model.Feed) (model.Feed, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status model.FeedStatus, errorMessage *string) error
	ApplyOutcome(ctx context.Context, id int64, status model.FeedStatus, errorMessage *string) (bool, error)
	RecordFetch(ctx context.Context, id int64, meta model.FeedMetadata, articleCount int, fetchedAt time.Time) error
	UpdateArticleCount(ctx context.Context, id int64, count int) error
	ListCountDrift(ctx context.Context) ([]model.CountDrift, error)
	Stats(ctx context.Context) (model.FeedStats, error)
}

type feedRepository struct {
	db *sql.DB
}

func NewFeedRepository(db *sql.DB) FeedRepository {
	return &feedRepository{db: db}
}

const feedColumns = `id, name, address, category, interval_seconds, status, kind, title, description, site_url, error_message, last_fetch, article_count, created_at, updated_at`

func (r *feedRepository) Create(ctx context.Context, feed model.Feed) (model.Feed, error) {
	if feed.ID == 0 {
		feed.ID = snowflake.NextID()
	}
	if feed.Category == "" {
		feed.Category = model.DefaultCategory
	}
	if feed.IntervalSeconds <= 0 {
		feed.IntervalSeconds = model.DefaultIntervalSeconds
	}
	if feed.Status == "" {
		feed.Status = model.FeedStatusActive
	}
	if feed.Kind == "" {
		feed.Kind = model.FeedKindRSS
	}
	now := time.Now().UTC()
	feed.CreatedAt = now
	feed.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feeds (id, name, address, category, interval_seconds, status, kind, title, description, site_url, error_message, last_fetch, article_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, feed.ID, feed.Name, feed.Address, feed.Category, feed.IntervalSeconds, string(feed.Status), string(feed.Kind),
		nullableString(feed.Title), nullableString(feed.Description), nullableString(feed.SiteURL), nullableString(feed.ErrorMessage),
		nullableTime(feed.LastFetch), feed.ArticleCount, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Feed{}, fmt.Errorf("insert feed: %w", ErrDuplicate)
		}
		return model.Feed{}, fmt.Errorf("insert feed: %w", err)
	}
	return feed, nil
}

func (r *feedRepository) GetByID(ctx context.Context, id int64) (model.Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE id = ?`, id)
	return scanFeed(row)
}

// FindByAddress returns nil, nil when no feed has the address.
func (r *feedRepository) FindByAddress(ctx context.Context, address string) (*model.Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE address = ?`, address)
	feed, err := scanFeed(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &feed, nil
}

// List returns feeds ordered by name. With no statuses given, every feed is returned.
func (r *feedRepository) List(ctx context.Context, statuses ...model.FeedStatus) ([]model.Feed, error) {
	query := `SELECT ` + feedColumns + ` FROM feeds`
	args := make([]interface{}, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, status := range statuses {
			placeholders = append(placeholders, "?")
			args = append(args, string(status))
		}
		query += ` WHERE status IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	defer rows.Close()

	feeds := make([]model.Feed, 0)
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, feed)
	}
	return feeds, rows.Err()
}

// Update writes the operator-editable fields. Status is left to UpdateStatus.
func (r *feedRepository) Update(ctx context.Context, feed model.Feed) (model.Feed, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		UPDATE feeds SET name = ?, address = ?, category = ?, interval_seconds = ?, updated_at = ? WHERE id = ?
	`, feed.Name, feed.Address, feed.Category, feed.IntervalSeconds, formatTime(now), feed.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Feed{}, fmt.Errorf("update feed: %w", ErrDuplicate)
		}
		return model.Feed{}, fmt.Errorf("update feed: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return model.Feed{}, err
	}
	return r.GetByID(ctx, feed.ID)
}

func (r *feedRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM feeds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	return requireAffected(result)
}

func (r *feedRepository) UpdateStatus(ctx context.Context, id int64, status model.FeedStatus, errorMessage *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE feeds SET status = ?, error_message = ?, updated_at = ? WHERE id = ?
	`, string(status), nullableString(errorMessage), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update feed status: %w", err)
	}
	return requireAffected(result)
}

// ApplyOutcome writes a fetch outcome unless the stored feed is paused. It reports false
// when the feed was paused, and sql.ErrNoRows when it does not exist.
func (r *feedRepository) ApplyOutcome(ctx context.Context, id int64, status model.FeedStatus, errorMessage *string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE feeds SET status = ?, error_message = ?, updated_at = ? WHERE id = ? AND status != ?
	`, string(status), nullableString(errorMessage), formatTime(time.Now()), id, string(model.FeedStatusPaused))
	if err != nil {
		return false, fmt.Errorf("apply feed outcome: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// RecordFetch stores the outcome of a successful fetch. Empty metadata fields keep their previous value.
func (r *feedRepository) RecordFetch(ctx context.Context, id int64, meta model.FeedMetadata, articleCount int, fetchedAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE feeds SET
			kind = COALESCE(NULLIF(?, ''), kind),
			title = COALESCE(NULLIF(?, ''), title),
			description = COALESCE(NULLIF(?, ''), description),
			site_url = COALESCE(NULLIF(?, ''), site_url),
			last_fetch = ?,
			article_count = ?,
			updated_at = ?
		WHERE id = ?
	`, string(meta.Kind), meta.Title, meta.Description, meta.SiteURL, formatTime(fetchedAt), articleCount, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("record feed fetch: %w", err)
	}
	return requireAffected(result)
}

func (r *feedRepository) UpdateArticleCount(ctx context.Context, id int64, count int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE feeds SET article_count = ?, updated_at = ? WHERE id = ?`, count, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update article count: %w", err)
	}
	return requireAffected(result)
}

func (r *feedRepository) ListCountDrift(ctx context.Context) ([]model.CountDrift, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, article_count, actual FROM (
			SELECT f.id, f.article_count, (SELECT COUNT(*) FROM articles a WHERE a.feed_id = f.id) AS actual
			FROM feeds f
		) WHERE article_count != actual
	`)
	if err != nil {
		return nil, fmt.Errorf("list count drift: %w", err)
	}
	defer rows.Close()

	var drifts []model.CountDrift
	for rows.Next() {
		var d model.CountDrift
		if err := rows.Scan(&d.FeedID, &d.Cached, &d.Actual); err != nil {
			return nil, err
		}
		drifts = append(drifts, d)
	}
	return drifts, rows.Err()
}

func (r *feedRepository) Stats(ctx context.Context) (model.FeedStats, error) {
	var stats model.FeedStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'paused' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'error' THEN 1 ELSE 0 END), 0)
		FROM feeds
	`).Scan(&stats.Total, &stats.Active, &stats.Paused, &stats.Error)
	if err != nil {
		return model.FeedStats{}, fmt.Errorf("feed stats: %w", err)
	}
	return stats, nil
}

func scanFeed(row rowScanner) (model.Feed, error) {
	var (
		feed                        model.Feed
		status, kind                string
		title, description, siteURL sql.NullString
		errorMessage, lastFetch     sql.NullString
		createdAt, updatedAt        string
	)
	if err := row.Scan(&feed.ID, &feed.Name, &feed.Address, &feed.Category, &feed.IntervalSeconds, &status, &kind,
		&title, &description, &siteURL, &errorMessage, &lastFetch, &feed.ArticleCount, &createdAt, &updatedAt); err != nil {
		return model.Feed{}, err
	}
	feed.Status = model.FeedStatus(status)
	feed.Kind = model.FeedKind(kind)
	feed.Title = stringPtr(title)
	feed.Description = stringPtr(description)
	feed.SiteURL = stringPtr(siteURL)
	feed.ErrorMessage = stringPtr(errorMessage)
	feed.LastFetch = timePtr(lastFetch)
	feed.CreatedAt, _ = parseTime(createdAt)
	feed.UpdatedAt, _ = parseTime(updatedAt)
	return feed, nil
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
