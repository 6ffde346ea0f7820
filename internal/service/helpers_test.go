package service_test

import (
	"database/sql"
	"testing"

	"castmind/backend/internal/extractor"
	"castmind/backend/internal/fetcher"
	"castmind/backend/internal/repository"
	"castmind/backend/internal/repository/testutil"
	"castmind/backend/internal/resolver"
	"castmind/backend/internal/service"
	"castmind/backend/pkg/network"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func int64Ptr(v int64) *int64 { return &v }

// pipeline wires the ingest path against a real in-memory store.
type pipeline struct {
	db       *sql.DB
	feeds    repository.FeedRepository
	articles repository.ArticleRepository
	status   service.FeedStatusMachine
	ingest   service.IngestService
}

// newPipeline resolves routes against mirrors, or the default mirrors when none are given.
func newPipeline(t *testing.T, mirrors ...string) *pipeline {
	t.Helper()
	db := testutil.NewTestDB(t)
	feeds := repository.NewFeedRepository(db)
	articles := repository.NewArticleRepository(db)
	status := service.NewFeedStatusMachine(feeds)
	reconciler := service.NewReconcileService(feeds, articles, status)
	f := fetcher.New(network.NewClientFactory(nil), nil, fetcher.Options{})

	return &pipeline{
		db:       db,
		feeds:    feeds,
		articles: articles,
		status:   status,
		ingest:   service.NewIngestService(feeds, resolver.New(mirrors), f, extractor.New(), reconciler, status, 2),
	}
}
