package extractor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"castmind/backend/internal/hashutil"
	"castmind/backend/internal/model"
	"castmind/backend/internal/urlutil"
	"castmind/backend/pkg/logger"
	"castmind/backend/pkg/sanitizer"
)

const (
	defaultTitle    = "Untitled"
	syntheticPrefix = "urn:castmind:entry:"
)

var errNoIdentity = errors.New("entry has no link, guid, enclosure, title or content")

// EntryExtractionError describes a single entry that could not be normalized.
type EntryExtractionError struct {
	Index int
	Title string
	Err   error
}

func (e *EntryExtractionError) Error() string {
	return fmt.Sprintf("extract entry %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e *EntryExtractionError) Unwrap() error {
	return e.Err
}

// Extractor normalizes parsed feed items into entry records.
type Extractor struct {
	now func() time.Time
}

func New() *Extractor {
	return &Extractor{now: time.Now}
}

// NewWithClock returns an Extractor whose missing or unparsable dates default to now().
func NewWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// ExtractAll extracts items in source order. Items that fail are logged and left out.
func (x *Extractor) ExtractAll(items []*gofeed.Item) ([]model.EntryRecord, []error) {
	records := make([]model.EntryRecord, 0, len(items))
	var errs []error
	for i, item := range items {
		record, err := x.safeExtract(i, item)
		if err != nil {
			logger.Warn("skip entry", "module", "extractor", "action", "extract", "resource", "entry", "result", "skipped", "index", i, "error", err)
			errs = append(errs, err)
			continue
		}
		records = append(records, record)
	}
	return records, errs
}

func (x *Extractor) safeExtract(index int, item *gofeed.Item) (record model.EntryRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EntryExtractionError{Index: index, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	record, err = x.Extract(item)
	if err != nil {
		title := ""
		if item != nil {
			title = item.Title
		}
		return model.EntryRecord{}, &EntryExtractionError{Index: index, Title: title, Err: err}
	}
	return record, nil
}

// Extract normalizes one item. Only an item with nothing to identify it fails.
func (x *Extractor) Extract(item *gofeed.Item) (model.EntryRecord, error) {
	if item == nil {
		return model.EntryRecord{}, errors.New("nil item")
	}

	title := strings.TrimSpace(sanitizer.PlainText(item.Title))
	description := strings.TrimSpace(item.Description)
	content := strings.TrimSpace(item.Content)
	if content == "" {
		content = description
	}

	audio := extractAudio(item)

	url := entryURL(item, audio)
	if url == "" {
		if title == "" && content == "" {
			return model.EntryRecord{}, errNoIdentity
		}
		url = syntheticPrefix + hashutil.Digest(title, content)
	}

	if title == "" {
		title = defaultTitle
	}

	record := model.EntryRecord{
		Article: model.ArticleFields{
			URL:         url,
			Title:       title,
			Description: description,
			Content:     content,
			Author:      entryAuthor(item),
			Categories:  entryCategories(item),
			PublishedAt: x.publishedAt(item),
		},
		Podcast: audio,
	}
	return record, nil
}

// entryURL picks the first identity candidate: link, extra links, an absolute GUID, then the audio URL.
func entryURL(item *gofeed.Item, audio *model.AudioFields) string {
	candidates := make([]string, 0, len(item.Links)+3)
	candidates = append(candidates, item.Link)
	candidates = append(candidates, item.Links...)
	if urlutil.IsAbsoluteHTTP(item.GUID) {
		candidates = append(candidates, item.GUID)
	}
	if audio != nil {
		candidates = append(candidates, audio.URL)
	}

	for _, c := range candidates {
		if canonical := urlutil.Canonical(c); canonical != "" {
			return canonical
		}
	}
	return ""
}

func entryAuthor(item *gofeed.Item) string {
	var name string
	switch {
	case item.Author != nil && strings.TrimSpace(item.Author.Name) != "":
		name = item.Author.Name
	case len(item.Authors) > 0 && item.Authors[0] != nil && strings.TrimSpace(item.Authors[0].Name) != "":
		name = item.Authors[0].Name
	case item.ITunesExt != nil && strings.TrimSpace(item.ITunesExt.Author) != "":
		name = item.ITunesExt.Author
	case item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0:
		name = item.DublinCoreExt.Creator[0]
	}
	return sanitizer.SanitizeAuthor(name)
}

func entryCategories(item *gofeed.Item) []string {
	categories := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}

// publishedAt parses the raw published (or updated) string as RFC 3339, then with a lenient
// parser, then falls back to gofeed's own parse and finally to now.
func (x *Extractor) publishedAt(item *gofeed.Item) time.Time {
	raw := strings.TrimSpace(item.Published)
	if raw == "" {
		raw = strings.TrimSpace(item.Updated)
	}
	if raw != "" {
		if t, err := parseDate(raw); err == nil {
			return t.UTC()
		}
	}
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	}
	return x.now().UTC()
}

// parseDate tries RFC 3339 first, then dateparse for everything else.
func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return dateparse.ParseIn(raw, time.UTC)
}
