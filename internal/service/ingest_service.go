//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/semaphore"

	"castmind/backend/internal/fetcher"
	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/pkg/logger"
)

const defaultFetchWorkers = 4

var ErrAlreadyFetching = errors.New("fetch already in progress")

// AddressResolver turns a stored feed address into ordered fetch candidates.
type AddressResolver interface {
	Resolve(address string) []string
}

// FeedFetcher downloads and parses the first usable candidate.
type FeedFetcher interface {
	Fetch(ctx context.Context, candidates []string) (*fetcher.ParsedFeed, error)
}

// EntryExtractor normalizes parsed items, leaving out the ones it cannot identify.
type EntryExtractor interface {
	ExtractAll(items []*gofeed.Item) ([]model.EntryRecord, []error)
}

// FeedOutcome is the result of fetching one feed. Error holds the fetch diagnostic
// when the feed could not be fetched.
type FeedOutcome struct {
	FeedID     int64
	Status     model.FeedStatus
	SourceURL  string
	Inserted   int
	Skipped    int
	Failed     int
	Unreadable int
	Error      string
}

// FetchSummary aggregates one fetch-all run.
type FetchSummary struct {
	Feeds     int
	Succeeded int
	Failed    int
	Inserted  int
	Duration  time.Duration
}

type IngestService interface {
	FetchAll(ctx context.Context) (FetchSummary, error)
	FetchFeed(ctx context.Context, feed model.Feed) (FeedOutcome, error)
	FetchByID(ctx context.Context, id int64) (FeedOutcome, error)
	Validate(ctx context.Context, address string) (*fetcher.ParsedFeed, error)
	IsFetching() bool
}

type ingestService struct {
	feeds      repository.FeedRepository
	resolver   AddressResolver
	fetcher    FeedFetcher
	extractor  EntryExtractor
	reconciler ReconcileService
	status     FeedStatusMachine
	workers    int64

	mu         sync.Mutex
	isFetching bool
}

func NewIngestService(feeds repository.FeedRepository, resolver AddressResolver, fetcher FeedFetcher, extractor EntryExtractor, reconciler ReconcileService, status FeedStatusMachine, workers int) IngestService {
	if workers <= 0 {
		workers = defaultFetchWorkers
	}
	return &ingestService{
		feeds:      feeds,
		resolver:   resolver,
		fetcher:    fetcher,
		extractor:  extractor,
		reconciler: reconciler,
		status:     status,
		workers:    int64(workers),
	}
}

func (s *ingestService) IsFetching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isFetching
}

// FetchAll fetches every active and error feed on a bounded worker pool. One feed's
// failure never affects the others.
func (s *ingestService) FetchAll(ctx context.Context) (FetchSummary, error) {
	s.mu.Lock()
	if s.isFetching {
		s.mu.Unlock()
		return FetchSummary{}, ErrAlreadyFetching
	}
	s.isFetching = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isFetching = false
		s.mu.Unlock()
	}()

	start := time.Now()
	feeds, err := s.feeds.List(ctx, model.FeedStatusActive, model.FeedStatusError)
	if err != nil {
		logger.Error("fetch list feeds", "module", "service", "action", "list", "resource", "feed", "result", "failed", "error", err)
		return FetchSummary{}, err
	}

	logger.Info("fetch started", "module", "service", "action", "fetch", "resource", "feed", "result", "ok", "count", len(feeds))

	summary := FetchSummary{Feeds: len(feeds)}
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = semaphore.NewWeighted(s.workers)
	)
	for _, feed := range feeds {
		if err := sem.Acquire(ctx, 1); err != nil {
			logger.Debug("fetch acquire cancelled", "module", "service", "action", "fetch", "resource", "feed", "result", "cancelled", "error", err)
			break
		}
		wg.Add(1)
		go func(feed model.Feed) {
			defer wg.Done()
			defer sem.Release(1)

			outcome, err := s.safeFetchFeed(ctx, feed)

			mu.Lock()
			defer mu.Unlock()
			if err != nil || outcome.Error != "" {
				summary.Failed++
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("fetch feed failed", "module", "service", "action", "fetch", "resource", "feed", "result", "failed", "feed_id", feed.ID, "feed_name", feed.Name, "error", err)
				}
				return
			}
			summary.Succeeded++
			summary.Inserted += outcome.Inserted
		}(feed)
	}
	wg.Wait()

	summary.Duration = time.Since(start)
	logger.Info("fetch completed", "module", "service", "action", "fetch", "resource", "feed", "result", "ok", "count", summary.Feeds, "succeeded", summary.Succeeded, "failed", summary.Failed, "inserted", summary.Inserted, "duration", summary.Duration)
	return summary, ctx.Err()
}

func (s *ingestService) safeFetchFeed(ctx context.Context, feed model.Feed) (outcome FeedOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic fetching feed %d: %v", feed.ID, r)
		}
	}()
	return s.FetchFeed(ctx, feed)
}

// FetchFeed runs resolve, fetch, extract and reconcile for one feed. A fetch failure is
// recorded on the feed and reported in the outcome, not returned as an error.
func (s *ingestService) FetchFeed(ctx context.Context, feed model.Feed) (FeedOutcome, error) {
	outcome := FeedOutcome{FeedID: feed.ID, Status: feed.Status}

	parsed, err := s.fetcher.Fetch(ctx, s.resolver.Resolve(feed.Address))
	if err != nil {
		if ctx.Err() != nil {
			return outcome, ctx.Err()
		}
		logger.Warn("feed unreachable", "module", "service", "action", "fetch", "resource", "feed", "result", "failed", "feed_id", feed.ID, "feed_name", feed.Name, "error", err)
		outcome.Error = err.Error()
		status, applyErr := s.status.Apply(ctx, feed, OutcomeFailure, err.Error())
		outcome.Status = status
		return outcome, applyErr
	}
	outcome.SourceURL = parsed.SourceURL

	records, skipped := s.extractor.ExtractAll(parsed.Items)
	outcome.Unreadable = len(skipped)

	result, err := s.reconciler.Reconcile(ctx, feed, parsed.Metadata(), records)
	if err != nil {
		return outcome, err
	}
	outcome.Status = result.Status
	outcome.Inserted = result.Inserted
	outcome.Skipped = result.Skipped
	outcome.Failed = result.Failed
	return outcome, nil
}

// FetchByID fetches one feed on operator request, paused feeds included. A fetch failure
// is returned as ErrFeedFetch next to the recorded outcome.
func (s *ingestService) FetchByID(ctx context.Context, id int64) (FeedOutcome, error) {
	feed, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		return FeedOutcome{}, notFound(err)
	}
	outcome, err := s.FetchFeed(ctx, feed)
	if err != nil {
		return outcome, err
	}
	if outcome.Error != "" {
		return outcome, fmt.Errorf("%w: %s", ErrFeedFetch, outcome.Error)
	}
	return outcome, nil
}

// Validate checks that an address yields a usable document without storing anything.
func (s *ingestService) Validate(ctx context.Context, address string) (*fetcher.ParsedFeed, error) {
	parsed, err := s.fetcher.Fetch(ctx, s.resolver.Resolve(address))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}
	return parsed, nil
}
