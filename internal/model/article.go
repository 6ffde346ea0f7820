package model

import "time"

type Article struct {
	ID                 int64
	FeedID             int64
	URL                string
	Title              string
	Content            *string
	Summary            *string
	Author             *string
	Categories         *string
	PublishedAt        time.Time
	Read               bool
	Processed          bool
	Keywords           *string
	Sentiment          *string
	ReadableContent    *string
	IsPodcast          bool
	AudioURL           *string
	AudioType          *string
	AudioDuration      *int
	AudioSize          *int64
	PodcastDescription *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ArticleFilter narrows article listings. Nil fields are not applied.
type ArticleFilter struct {
	FeedID    *int64
	Read      *bool
	Processed *bool
	Podcast   *bool
	Limit     int
	Offset    int
}

type ArticleStats struct {
	Total     int
	Unread    int
	Processed int
	Podcasts  int
}

// Analysis is the result written back by the processing job.
type Analysis struct {
	Summary   string
	Keywords  []string
	Sentiment string
}
