//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"castmind/backend/internal/opml"
	"castmind/backend/pkg/logger"
)

// SubscriptionFile is the YAML seed file format.
type SubscriptionFile struct {
	Feeds []SubscriptionEntry `yaml:"feeds"`
}

type SubscriptionEntry struct {
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	Category string `yaml:"category"`
	Interval int    `yaml:"interval"`
	Enabled  *bool  `yaml:"enabled"`
}

// ImportResult counts the outcome of a bulk subscription.
type ImportResult struct {
	Created int
	Skipped int
	Failed  int
	Errors  []string
}

type SubscriptionService interface {
	LoadFile(path string) ([]SubscriptionEntry, error)
	Seed(ctx context.Context, entries []SubscriptionEntry) (ImportResult, error)
	ImportOPML(ctx context.Context, r io.Reader) (ImportResult, error)
	ExportOPML(ctx context.Context) ([]byte, error)
}

type subscriptionService struct {
	feeds FeedService
	now   func() time.Time
}

func NewSubscriptionService(feeds FeedService) SubscriptionService {
	return &subscriptionService{feeds: feeds, now: time.Now}
}

func (s *subscriptionService) LoadFile(path string) ([]SubscriptionEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subscriptions: %w", err)
	}
	var file SubscriptionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse subscriptions %s: %w", path, err)
	}
	return file.Feeds, nil
}

// Seed subscribes every entry whose address is not known yet. Entries with enabled: false
// are added paused. Existing feeds are left untouched.
func (s *subscriptionService) Seed(ctx context.Context, entries []SubscriptionEntry) (ImportResult, error) {
	var result ImportResult
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		feed, err := s.feeds.Add(ctx, FeedInput{
			Name:            entry.Name,
			Address:         entry.Address,
			Category:        entry.Category,
			IntervalSeconds: entry.Interval,
		})
		switch {
		case errors.Is(err, ErrConflict):
			result.Skipped++
			continue
		case err != nil:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", entry.Address, err))
			logger.Warn("subscribe failed", "module", "service", "action", "create", "resource", "feed", "result", "failed", "address", entry.Address, "error", err)
			continue
		}
		result.Created++

		if entry.Enabled != nil && !*entry.Enabled {
			if _, err := s.feeds.Pause(ctx, feed.ID); err != nil {
				logger.Warn("pause seeded feed failed", "module", "service", "action", "pause", "resource", "feed", "result", "failed", "feed_id", feed.ID, "error", err)
			}
		}
	}

	logger.Info("subscriptions imported", "module", "service", "action", "import", "resource", "feed", "result", "ok", "created", result.Created, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

func (s *subscriptionService) ImportOPML(ctx context.Context, r io.Reader) (ImportResult, error) {
	doc, err := opml.Parse(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	subs := doc.Subscriptions()
	entries := make([]SubscriptionEntry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, SubscriptionEntry{Name: sub.Name, Address: sub.Address, Category: sub.Category})
	}
	return s.Seed(ctx, entries)
}

func (s *subscriptionService) ExportOPML(ctx context.Context) ([]byte, error) {
	feeds, err := s.feeds.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	subs := make([]opml.Subscription, 0, len(feeds))
	for _, f := range feeds {
		subs = append(subs, opml.Subscription{Name: f.Name, Address: f.Address, Category: f.Category})
	}
	return opml.Encode(opml.Build("CastMind subscriptions", subs, s.now()))
}
