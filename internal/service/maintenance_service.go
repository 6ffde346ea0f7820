//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"castmind/backend/internal/fetcher"
	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/pkg/logger"
)

// FeedValidator checks that an address still yields a usable document.
type FeedValidator interface {
	Validate(ctx context.Context, address string) (*fetcher.ParsedFeed, error)
}

type StatusReport struct {
	Checked      int
	Recovered    int
	StillFailing int
	CountsFixed  int
}

type CleanupReport struct {
	Cutoff         time.Time
	Deleted        int64
	FeedsRecounted int
}

type MaintenanceService interface {
	ReconcileStatus(ctx context.Context) (StatusReport, error)
	Cleanup(ctx context.Context, retentionDays int) (CleanupReport, error)
}

type maintenanceService struct {
	feeds     repository.FeedRepository
	articles  repository.ArticleRepository
	validator FeedValidator
	status    FeedStatusMachine
	now       func() time.Time
}

func NewMaintenanceService(feeds repository.FeedRepository, articles repository.ArticleRepository, validator FeedValidator, status FeedStatusMachine) MaintenanceService {
	return &maintenanceService{
		feeds:     feeds,
		articles:  articles,
		validator: validator,
		status:    status,
		now:       time.Now,
	}
}

// ReconcileStatus re-validates every feed in error and brings back the ones that answer
// again, then repairs cached article counts that drifted from the stored rows.
func (s *maintenanceService) ReconcileStatus(ctx context.Context) (StatusReport, error) {
	failing, err := s.feeds.List(ctx, model.FeedStatusError)
	if err != nil {
		return StatusReport{}, fmt.Errorf("list error feeds: %w", err)
	}

	report := StatusReport{Checked: len(failing)}
	for _, feed := range failing {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome, diagnostic := OutcomeValidated, ""
		if _, err := s.validator.Validate(ctx, feed.Address); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			outcome, diagnostic = OutcomeFailure, err.Error()
		}

		next, err := s.status.Apply(ctx, feed, outcome, diagnostic)
		if err != nil {
			logger.Warn("status reconcile failed", "module", "service", "action", "update", "resource", "feed", "result", "failed", "feed_id", feed.ID, "error", err)
			continue
		}
		switch next {
		case model.FeedStatusActive:
			report.Recovered++
		case model.FeedStatusError:
			report.StillFailing++
		}
	}

	drifts, err := s.feeds.ListCountDrift(ctx)
	if err != nil {
		return report, fmt.Errorf("list count drift: %w", err)
	}
	for _, d := range drifts {
		if err := s.feeds.UpdateArticleCount(ctx, d.FeedID, d.Actual); err != nil {
			logger.Warn("article count repair failed", "module", "service", "action", "update", "resource", "feed", "result", "failed", "feed_id", d.FeedID, "error", err)
			continue
		}
		report.CountsFixed++
	}

	logger.Info("status reconciled", "module", "service", "action", "reconcile", "resource", "feed", "result", "ok", "checked", report.Checked, "recovered", report.Recovered, "still_failing", report.StillFailing, "counts_fixed", report.CountsFixed)
	return report, nil
}

// Cleanup deletes articles older than retentionDays that are both read and processed,
// then recounts the feeds they belonged to.
func (s *maintenanceService) Cleanup(ctx context.Context, retentionDays int) (CleanupReport, error) {
	if retentionDays <= 0 {
		return CleanupReport{}, fmt.Errorf("%w: retention days must be positive", ErrInvalid)
	}
	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)

	result, err := s.articles.DeleteRetained(ctx, cutoff)
	if err != nil {
		return CleanupReport{}, fmt.Errorf("delete retained articles: %w", err)
	}

	report := CleanupReport{Cutoff: cutoff, Deleted: result.Deleted}
	for _, feedID := range result.FeedIDs {
		count, err := s.articles.CountByFeed(ctx, feedID)
		if err == nil {
			err = s.feeds.UpdateArticleCount(ctx, feedID, count)
		}
		if err != nil {
			if !errors.Is(notFound(err), ErrNotFound) {
				logger.Warn("article recount failed", "module", "service", "action", "update", "resource", "feed", "result", "failed", "feed_id", feedID, "error", err)
			}
			continue
		}
		report.FeedsRecounted++
	}

	logger.Info("retention cleanup", "module", "service", "action", "delete", "resource", "article", "result", "ok", "deleted", report.Deleted, "feeds", report.FeedsRecounted, "retention_days", retentionDays)
	return report, nil
}
