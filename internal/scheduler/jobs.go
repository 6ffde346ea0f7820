package scheduler

import (
	"context"
	"errors"
	"fmt"

	"castmind/backend/internal/config"
	"castmind/backend/internal/repository"
	"castmind/backend/internal/service"
	"castmind/backend/pkg/logger"
)

const (
	JobFetchAll    = "fetch-all-feeds"
	JobProcess     = "process-unprocessed-entries"
	JobStatusCheck = "status-reconciliation"
	JobRetention   = "retention-cleanup"
)

// SchedulerContext is handed to every job run. Jobs read their limits from Config.
type SchedulerContext struct {
	Feeds       repository.FeedRepository
	Articles    repository.ArticleRepository
	Ingest      service.IngestService
	Process     service.ProcessService
	Maintenance service.MaintenanceService
	Config      config.Config
}

// DefaultJobs builds the four recurring jobs from cfg.
func DefaultJobs(cfg config.Config) ([]Job, error) {
	cleanup, err := ParseCron(cfg.CleanupCron, cfg.Location)
	if err != nil {
		return nil, err
	}
	return []Job{
		{ID: JobFetchAll, Name: "Fetch all feeds", Trigger: Every(cfg.FetchInterval), Run: fetchAllFeeds, RunOnStart: true},
		{ID: JobProcess, Name: "Process unprocessed entries", Trigger: Every(cfg.ProcessInterval), Run: processUnprocessed},
		{ID: JobStatusCheck, Name: "Reconcile feed status", Trigger: Every(cfg.StatusInterval), Run: reconcileStatus},
		{ID: JobRetention, Name: "Retention cleanup", Trigger: cleanup, Run: retentionCleanup},
	}, nil
}

func fetchAllFeeds(ctx context.Context, sc *SchedulerContext) error {
	summary, err := sc.Ingest.FetchAll(ctx)
	if errors.Is(err, service.ErrAlreadyFetching) {
		logger.Info("fetch already in progress", "module", "scheduler", "action", "fetch", "resource", "feed", "result", "skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch all feeds: %w", err)
	}
	if summary.Failed > 0 {
		logger.Warn("some feeds failed", "module", "scheduler", "action", "fetch", "resource", "feed", "result", "failed", "count", summary.Feeds, "failed", summary.Failed)
	}
	return nil
}

func processUnprocessed(ctx context.Context, sc *SchedulerContext) error {
	summary, err := sc.Process.ProcessUnprocessed(ctx, sc.Config.ProcessBatch)
	if err != nil {
		return fmt.Errorf("process entries: %w", err)
	}
	if summary.Candidates > 0 && summary.Processed == 0 {
		return fmt.Errorf("process entries: all %d analyses failed", summary.Candidates)
	}
	return nil
}

func reconcileStatus(ctx context.Context, sc *SchedulerContext) error {
	report, err := sc.Maintenance.ReconcileStatus(ctx)
	if err != nil {
		return fmt.Errorf("reconcile status: %w", err)
	}

	stats, err := sc.Feeds.Stats(ctx)
	if err != nil {
		return fmt.Errorf("feed stats: %w", err)
	}
	logger.Info("feed status reconciled", "module", "scheduler", "action", "update", "resource", "feed", "result", "ok",
		"checked", report.Checked, "recovered", report.Recovered, "counts_fixed", report.CountsFixed,
		"active", stats.Active, "paused", stats.Paused, "error", stats.Error)
	return nil
}

func retentionCleanup(ctx context.Context, sc *SchedulerContext) error {
	report, err := sc.Maintenance.Cleanup(ctx, sc.Config.RetentionDays)
	if err != nil {
		return fmt.Errorf("retention cleanup: %w", err)
	}

	stats, err := sc.Articles.Stats(ctx)
	if err != nil {
		return fmt.Errorf("article stats: %w", err)
	}
	logger.Info("retention cleanup done", "module", "scheduler", "action", "delete", "resource", "article", "result", "ok",
		"deleted", report.Deleted, "cutoff", report.Cutoff, "remaining", stats.Total)
	return nil
}
