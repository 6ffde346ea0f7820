//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"time"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/pkg/logger"
	"castmind/backend/pkg/sanitizer"
)

// ReconcileResult counts what happened to each entry of one fetched document.
type ReconcileResult struct {
	Inserted     int
	Skipped      int
	Failed       int
	ArticleCount int
	// Status is the feed status after the success was applied.
	Status model.FeedStatus
}

// ReconcileService merges fetched entries into the store. The article URL is the only
// dedup key, so running it twice over the same entries inserts nothing the second time.
type ReconcileService interface {
	Reconcile(ctx context.Context, feed model.Feed, meta model.FeedMetadata, entries []model.EntryRecord) (ReconcileResult, error)
}

type reconcileService struct {
	feeds    repository.FeedRepository
	articles repository.ArticleRepository
	status   FeedStatusMachine
	now      func() time.Time
}

func NewReconcileService(feeds repository.FeedRepository, articles repository.ArticleRepository, status FeedStatusMachine) ReconcileService {
	return &reconcileService{
		feeds:    feeds,
		articles: articles,
		status:   status,
		now:      time.Now,
	}
}

func (s *reconcileService) Reconcile(ctx context.Context, feed model.Feed, meta model.FeedMetadata, entries []model.EntryRecord) (ReconcileResult, error) {
	var result ReconcileResult
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		exists, err := s.articles.ExistsByURL(ctx, entry.Article.URL)
		if err != nil {
			logger.Warn("check article exists failed", "module", "service", "action", "list", "resource", "article", "result", "failed", "feed_id", feed.ID, "url", entry.Article.URL, "error", err)
			result.Failed++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		inserted, err := s.articles.InsertIfAbsent(ctx, toArticle(feed.ID, entry))
		if err != nil {
			logger.Warn("save article failed", "module", "service", "action", "save", "resource", "article", "result", "failed", "feed_id", feed.ID, "url", entry.Article.URL, "error", err)
			result.Failed++
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	count, err := s.articles.CountByFeed(ctx, feed.ID)
	if err != nil {
		return result, fmt.Errorf("count articles: %w", err)
	}
	result.ArticleCount = count

	if err := s.feeds.RecordFetch(ctx, feed.ID, meta, count, s.now().UTC()); err != nil {
		return result, fmt.Errorf("record fetch: %w", notFound(err))
	}
	status, err := s.status.Apply(ctx, feed, OutcomeSuccess, "")
	if err != nil {
		return result, fmt.Errorf("apply status: %w", err)
	}
	result.Status = status

	if result.Inserted > 0 || result.Failed > 0 {
		logger.Info("feed reconciled", "module", "service", "action", "save", "resource", "article", "result", "ok", "feed_id", feed.ID, "feed_name", feed.Name, "inserted", result.Inserted, "skipped", result.Skipped, "failed", result.Failed, "count", count)
	}
	return result, nil
}

// toArticle maps an extracted entry onto a storable article. Content is sanitized here,
// the last point before it reaches the store.
func toArticle(feedID int64, entry model.EntryRecord) model.Article {
	a := model.Article{
		FeedID:      feedID,
		URL:         entry.Article.URL,
		Title:       entry.Article.Title,
		Content:     optionalString(sanitizer.SanitizeContent(entry.Article.Content)),
		Author:      optionalString(entry.Article.Author),
		Categories:  optionalString(entry.CategoryList()),
		PublishedAt: entry.Article.PublishedAt,
	}
	if entry.Podcast != nil {
		a.IsPodcast = true
		a.AudioURL = optionalString(entry.Podcast.URL)
		a.AudioType = optionalString(entry.Podcast.MIMESubtype)
		a.AudioDuration = entry.Podcast.DurationSeconds
		a.AudioSize = entry.Podcast.SizeBytes
		a.PodcastDescription = optionalString(entry.Podcast.Description)
	}
	return a
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
