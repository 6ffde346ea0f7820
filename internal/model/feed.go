package model

import "time"

type FeedStatus string

const (
	FeedStatusActive FeedStatus = "active"
	FeedStatusPaused FeedStatus = "paused"
	FeedStatusError  FeedStatus = "error"
)

func (s FeedStatus) Valid() bool {
	switch s {
	case FeedStatusActive, FeedStatusPaused, FeedStatusError:
		return true
	}
	return false
}

// FeedKind is a hint about the document dialect, refreshed on every successful fetch.
type FeedKind string

const (
	FeedKindRSS     FeedKind = "rss"
	FeedKindAtom    FeedKind = "atom"
	FeedKindPodcast FeedKind = "podcast"
)

func (k FeedKind) Valid() bool {
	switch k {
	case FeedKindRSS, FeedKindAtom, FeedKindPodcast:
		return true
	}
	return false
}

const (
	DefaultCategory        = "uncategorized"
	DefaultIntervalSeconds = 3600
)

type Feed struct {
	ID              int64
	Name            string
	Address         string
	Category        string
	IntervalSeconds int
	Status          FeedStatus
	Kind            FeedKind
	Title           *string
	Description     *string
	SiteURL         *string
	ErrorMessage    *string
	LastFetch       *time.Time
	ArticleCount    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FeedMetadata is the document-level information captured on a successful fetch.
type FeedMetadata struct {
	Title       string
	Description string
	SiteURL     string
	Kind        FeedKind
}

type FeedStats struct {
	Total  int
	Active int
	Paused int
	Error  int
}

// CountDrift reports a feed whose cached article count differs from the stored rows.
type CountDrift struct {
	FeedID int64
	Cached int
	Actual int
}
