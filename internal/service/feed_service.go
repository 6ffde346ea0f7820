//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
)

// FeedInput holds the operator-editable fields of a feed. Zero values take defaults.
type FeedInput struct {
	Name            string
	Address         string
	Category        string
	IntervalSeconds int
}

// FeedPreview describes what an address yields without subscribing to it.
type FeedPreview struct {
	Address   string
	SourceURL string
	Title     string
	Kind      model.FeedKind
	SiteURL   string
	ItemCount int
}

type FeedService interface {
	Add(ctx context.Context, input FeedInput) (model.Feed, error)
	Preview(ctx context.Context, address string) (FeedPreview, error)
	Get(ctx context.Context, id int64) (model.Feed, error)
	List(ctx context.Context, status *model.FeedStatus) ([]model.Feed, error)
	Update(ctx context.Context, id int64, input FeedInput) (model.Feed, error)
	Delete(ctx context.Context, id int64) error
	Pause(ctx context.Context, id int64) (model.Feed, error)
	Resume(ctx context.Context, id int64) (model.Feed, error)
	Stats(ctx context.Context) (model.FeedStats, error)
}

type feedService struct {
	feeds     repository.FeedRepository
	status    FeedStatusMachine
	validator FeedValidator
}

func NewFeedService(feeds repository.FeedRepository, status FeedStatusMachine, validator FeedValidator) FeedService {
	return &feedService{feeds: feeds, status: status, validator: validator}
}

// Add subscribes to an address. The feed is stored as active and picked up by the next
// fetch run; nothing is downloaded here.
func (s *feedService) Add(ctx context.Context, input FeedInput) (model.Feed, error) {
	input, err := normalizeFeedInput(input)
	if err != nil {
		return model.Feed{}, err
	}
	if existing, err := s.feeds.FindByAddress(ctx, input.Address); err != nil {
		return model.Feed{}, fmt.Errorf("check feed address: %w", err)
	} else if existing != nil {
		return model.Feed{}, &FeedConflictError{ExistingFeed: *existing}
	}

	feed, err := s.feeds.Create(ctx, model.Feed{
		Name:            input.Name,
		Address:         input.Address,
		Category:        input.Category,
		IntervalSeconds: input.IntervalSeconds,
		Status:          model.FeedStatusActive,
	})
	if err != nil {
		return model.Feed{}, s.addressConflict(ctx, input.Address, err)
	}
	return feed, nil
}

// addressConflict turns a unique-address violation from a concurrent write into a
// FeedConflictError naming the feed that won.
func (s *feedService) addressConflict(ctx context.Context, address string, err error) error {
	if !errors.Is(err, repository.ErrDuplicate) {
		return err
	}
	existing, findErr := s.feeds.FindByAddress(ctx, address)
	if findErr != nil || existing == nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return &FeedConflictError{ExistingFeed: *existing}
}

func (s *feedService) Preview(ctx context.Context, address string) (FeedPreview, error) {
	address = strings.TrimSpace(address)
	if !validAddress(address) {
		return FeedPreview{}, ErrInvalid
	}
	parsed, err := s.validator.Validate(ctx, address)
	if err != nil {
		return FeedPreview{}, err
	}
	return FeedPreview{
		Address:   address,
		SourceURL: parsed.SourceURL,
		Title:     parsed.Title,
		Kind:      parsed.Kind,
		SiteURL:   parsed.Link,
		ItemCount: len(parsed.Items),
	}, nil
}

func (s *feedService) Get(ctx context.Context, id int64) (model.Feed, error) {
	feed, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		return model.Feed{}, notFound(err)
	}
	return feed, nil
}

func (s *feedService) List(ctx context.Context, status *model.FeedStatus) ([]model.Feed, error) {
	if status == nil {
		return s.feeds.List(ctx)
	}
	if !status.Valid() {
		return nil, ErrInvalid
	}
	return s.feeds.List(ctx, *status)
}

func (s *feedService) Update(ctx context.Context, id int64, input FeedInput) (model.Feed, error) {
	current, err := s.feeds.GetByID(ctx, id)
	if err != nil {
		return model.Feed{}, notFound(err)
	}

	if strings.TrimSpace(input.Address) == "" {
		input.Address = current.Address
	}
	if strings.TrimSpace(input.Name) == "" {
		input.Name = current.Name
	}
	if strings.TrimSpace(input.Category) == "" {
		input.Category = current.Category
	}
	if input.IntervalSeconds == 0 {
		input.IntervalSeconds = current.IntervalSeconds
	}
	input, err = normalizeFeedInput(input)
	if err != nil {
		return model.Feed{}, err
	}

	if input.Address != current.Address {
		if existing, err := s.feeds.FindByAddress(ctx, input.Address); err != nil {
			return model.Feed{}, fmt.Errorf("check feed address: %w", err)
		} else if existing != nil && existing.ID != id {
			return model.Feed{}, &FeedConflictError{ExistingFeed: *existing}
		}
	}

	current.Name = input.Name
	current.Address = input.Address
	current.Category = input.Category
	current.IntervalSeconds = input.IntervalSeconds
	updated, err := s.feeds.Update(ctx, current)
	if err != nil {
		return model.Feed{}, notFound(s.addressConflict(ctx, input.Address, err))
	}
	return updated, nil
}

// Delete removes the feed together with its articles.
func (s *feedService) Delete(ctx context.Context, id int64) error {
	return notFound(s.feeds.Delete(ctx, id))
}

func (s *feedService) Pause(ctx context.Context, id int64) (model.Feed, error) {
	return s.status.Pause(ctx, id)
}

func (s *feedService) Resume(ctx context.Context, id int64) (model.Feed, error) {
	return s.status.Resume(ctx, id)
}

func (s *feedService) Stats(ctx context.Context) (model.FeedStats, error) {
	return s.feeds.Stats(ctx)
}

func normalizeFeedInput(input FeedInput) (FeedInput, error) {
	input.Address = strings.TrimSpace(input.Address)
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	if !validAddress(input.Address) {
		return FeedInput{}, fmt.Errorf("%w: address %q", ErrInvalid, input.Address)
	}
	if input.IntervalSeconds < 0 {
		return FeedInput{}, fmt.Errorf("%w: interval must not be negative", ErrInvalid)
	}
	if input.Name == "" {
		input.Name = input.Address
	}
	if input.Category == "" {
		input.Category = model.DefaultCategory
	}
	if input.IntervalSeconds == 0 {
		input.IntervalSeconds = model.DefaultIntervalSeconds
	}
	return input, nil
}

// validAddress accepts http(s) URLs, rsshub:// routes, bare route paths and bare hostnames.
func validAddress(address string) bool {
	if address == "" || strings.ContainsAny(address, " \t\r\n") {
		return false
	}
	scheme, _, found := strings.Cut(address, "://")
	if !found {
		return true
	}
	switch strings.ToLower(scheme) {
	case "http", "https", "rsshub":
		return true
	}
	return false
}
