//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/pkg/logger"
)

// Outcome is what happened to a feed during one fetch or validation.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeValidated Outcome = "validated"
)

// Next returns the status a feed moves to after outcome. Paused feeds stay paused
// whatever happens; only the operator moves a feed in or out of paused.
func Next(current model.FeedStatus, outcome Outcome) model.FeedStatus {
	if current == model.FeedStatusPaused {
		return current
	}
	switch outcome {
	case OutcomeSuccess, OutcomeValidated:
		return model.FeedStatusActive
	case OutcomeFailure:
		return model.FeedStatusError
	}
	return current
}

// FeedStatusMachine is the only writer of Feed.Status.
type FeedStatusMachine interface {
	Apply(ctx context.Context, feed model.Feed, outcome Outcome, diagnostic string) (model.FeedStatus, error)
	Pause(ctx context.Context, id int64) (model.Feed, error)
	Resume(ctx context.Context, id int64) (model.Feed, error)
}

type feedStatusMachine struct {
	feeds repository.FeedRepository
}

func NewFeedStatusMachine(feeds repository.FeedRepository) FeedStatusMachine {
	return &feedStatusMachine{feeds: feeds}
}

// Apply persists the transition for outcome. A failure stores diagnostic as the feed's
// error message; any other outcome clears it. The write is conditional on the stored row:
// a feed paused after the snapshot was taken stays paused.
func (m *feedStatusMachine) Apply(ctx context.Context, feed model.Feed, outcome Outcome, diagnostic string) (model.FeedStatus, error) {
	next := Next(model.FeedStatusActive, outcome)

	var errMsg *string
	if outcome == OutcomeFailure {
		errMsg = &diagnostic
	}

	applied, err := m.feeds.ApplyOutcome(ctx, feed.ID, next, errMsg)
	if err != nil {
		logger.Warn("feed status update failed", "module", "service", "action", "update", "resource", "feed", "result", "failed", "feed_id", feed.ID, "status", next, "error", err)
		return feed.Status, notFound(err)
	}
	if !applied {
		logger.Debug("feed paused, outcome not applied", "module", "service", "action", "update", "resource", "feed", "result", "skipped", "feed_id", feed.ID, "outcome", outcome)
		return model.FeedStatusPaused, nil
	}
	if next != feed.Status {
		logger.Info("feed status changed", "module", "service", "action", "update", "resource", "feed", "result", "ok", "feed_id", feed.ID, "from", feed.Status, "to", next, "outcome", outcome)
	}
	return next, nil
}

func (m *feedStatusMachine) Pause(ctx context.Context, id int64) (model.Feed, error) {
	feed, err := m.feeds.GetByID(ctx, id)
	if err != nil {
		return model.Feed{}, notFound(err)
	}
	if feed.Status == model.FeedStatusPaused {
		return feed, nil
	}
	if err := m.feeds.UpdateStatus(ctx, id, model.FeedStatusPaused, feed.ErrorMessage); err != nil {
		return model.Feed{}, notFound(err)
	}
	logger.Info("feed paused", "module", "service", "action", "pause", "resource", "feed", "result", "ok", "feed_id", id)
	feed.Status = model.FeedStatusPaused
	return feed, nil
}

// Resume returns a paused feed to active. The next fetch decides whether it stays there.
func (m *feedStatusMachine) Resume(ctx context.Context, id int64) (model.Feed, error) {
	feed, err := m.feeds.GetByID(ctx, id)
	if err != nil {
		return model.Feed{}, notFound(err)
	}
	if feed.Status != model.FeedStatusPaused {
		return feed, nil
	}
	if err := m.feeds.UpdateStatus(ctx, id, model.FeedStatusActive, nil); err != nil {
		return model.Feed{}, notFound(err)
	}
	logger.Info("feed resumed", "module", "service", "action", "resume", "resource", "feed", "result", "ok", "feed_id", id)
	feed.Status = model.FeedStatusActive
	feed.ErrorMessage = nil
	return feed, nil
}
