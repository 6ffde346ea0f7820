package extractor

import (
	"math"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"castmind/backend/internal/model"
	"castmind/backend/pkg/sanitizer"
)

// extractAudio returns the podcast fields of an item, or nil when it has no audio.
// An audio/* enclosure wins over an audio/* media:content element.
func extractAudio(item *gofeed.Item) *model.AudioFields {
	var (
		audioURL, mimeType, rawSize, rawDuration string
		found                                    bool
	)

	for _, enc := range item.Enclosures {
		if enc == nil || strings.TrimSpace(enc.URL) == "" || !isAudio(enc.Type) {
			continue
		}
		audioURL, mimeType, rawSize = enc.URL, enc.Type, enc.Length
		found = true
		break
	}

	if !found {
		if media, ok := firstAudioMedia(item.Extensions); ok {
			audioURL = media.Attrs["url"]
			mimeType = media.Attrs["type"]
			rawSize = media.Attrs["fileSize"]
			rawDuration = media.Attrs["duration"]
			found = true
		}
	}
	if !found {
		return nil
	}

	if item.ITunesExt != nil && strings.TrimSpace(item.ITunesExt.Duration) != "" {
		rawDuration = item.ITunesExt.Duration
	}

	return &model.AudioFields{
		URL:             strings.TrimSpace(audioURL),
		MIMESubtype:     mimeSubtype(mimeType),
		DurationSeconds: ParseDuration(rawDuration),
		SizeBytes:       parseSize(rawSize),
		Description:     podcastDescription(item),
	}
}

// firstAudioMedia finds the first media:content element (top-level or inside media:group) with an audio type.
func firstAudioMedia(extensions ext.Extensions) (ext.Extension, bool) {
	media, ok := extensions["media"]
	if !ok {
		return ext.Extension{}, false
	}

	contents := append([]ext.Extension(nil), media["content"]...)
	for _, group := range media["group"] {
		contents = append(contents, group.Children["content"]...)
	}

	for _, c := range contents {
		if isAudio(c.Attrs["type"]) && strings.TrimSpace(c.Attrs["url"]) != "" {
			return c, true
		}
	}
	return ext.Extension{}, false
}

func isAudio(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "audio/")
}

// mimeSubtype returns "mpeg" for "audio/mpeg; charset=binary".
func mimeSubtype(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	_, subtype, _ := strings.Cut(mimeType, "/")
	return subtype
}

// maxDurationSeconds is the largest duration accepted; anything longer is malformed.
const maxDurationSeconds = math.MaxInt32

// ParseDuration converts integer seconds, "MM:SS" or "HH:MM:SS" to whole seconds.
// Anything else, including values beyond maxDurationSeconds, yields nil.
func ParseDuration(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ":")
	if len(parts) == 1 {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n <= maxDurationSeconds {
			return &n
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 || math.IsNaN(f) || f > maxDurationSeconds {
			return nil
		}
		n := int(f)
		return &n
	}
	if len(parts) > 3 {
		return nil
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > maxDurationSeconds || total > (maxDurationSeconds-n)/60 {
			return nil
		}
		total = total*60 + n
	}
	return &total
}

func parseSize(raw string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func podcastDescription(item *gofeed.Item) string {
	raw := ""
	if item.ITunesExt != nil {
		raw = strings.TrimSpace(item.ITunesExt.Summary)
	}
	if raw == "" {
		raw = item.Description
	}
	if raw == "" {
		raw = item.Content
	}
	return sanitizer.PlainText(raw)
}
