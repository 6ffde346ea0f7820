package sanitizer

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Atom authors are often serialized as <name>..</name><email>..</email>.
var authorNameRegex = regexp.MustCompile(`<name>([^<]+)</name>`)

var contentPolicy = bluemonday.UGCPolicy()

// SanitizeAuthor returns the display name of a feed author.
// Atom-style nested markup yields the <name> element; any other markup is stripped.
func SanitizeAuthor(author string) string {
	author = strings.TrimSpace(author)
	if author == "" || !strings.Contains(author, "<") {
		return author
	}

	if matches := authorNameRegex.FindStringSubmatch(author); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return StripTags(author)
}

// StripTags returns the text nodes of input concatenated. Not an XSS filter; use SanitizeContent for that.
func StripTags(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(input))
	var buf strings.Builder

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return ""
		}
		if tt == html.TextToken {
			buf.WriteString(tokenizer.Token().Data)
		}
	}

	return strings.TrimSpace(buf.String())
}

// PlainText strips markup and collapses runs of whitespace into single spaces.
func PlainText(input string) string {
	return strings.Join(strings.Fields(StripTags(input)), " ")
}

// SanitizeContent removes scripts, event handlers and other unsafe markup from entry HTML.
func SanitizeContent(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return strings.TrimSpace(contentPolicy.Sanitize(input))
}

// Excerpt returns at most limit runes of input. It never splits a multi-byte character.
func Excerpt(input string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= limit {
		return input
	}
	runes := []rune(input)
	return string(runes[:limit])
}
