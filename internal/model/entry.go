package model

import (
	"strings"
	"time"
)

// ArticleFields are the attributes every extracted entry carries.
type ArticleFields struct {
	URL         string
	Title       string
	Description string
	Content     string
	Author      string
	Categories  []string
	PublishedAt time.Time
}

// AudioFields are present only for entries with an audio enclosure.
type AudioFields struct {
	URL             string
	MIMESubtype     string
	DurationSeconds *int
	SizeBytes       *int64
	Description     string
}

// EntryRecord is a normalized feed entry. Podcast is nil for plain articles.
type EntryRecord struct {
	Article ArticleFields
	Podcast *AudioFields
}

func (r EntryRecord) IsPodcast() bool {
	return r.Podcast != nil
}

// CategoryList flattens categories into the stored delimited form, keeping source order.
func (r EntryRecord) CategoryList() string {
	return strings.Join(r.Article.Categories, ", ")
}
