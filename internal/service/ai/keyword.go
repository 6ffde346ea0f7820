package ai

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"castmind/backend/internal/model"
	"castmind/backend/pkg/sanitizer"
)

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"

	keywordSummaryRunes = 300
	keywordLimit        = 10
	minKeywordRunes     = 3
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "that": {}, "with": {}, "this": {}, "from": {}, "have": {},
	"what": {}, "when": {}, "are": {}, "was": {}, "were": {}, "you": {}, "your": {}, "not": {},
	"but": {}, "can": {}, "will": {}, "has": {}, "had": {}, "its": {}, "our": {}, "they": {},
	"their": {}, "there": {}, "about": {}, "into": {}, "than": {}, "then": {}, "also": {},
}

var (
	positiveWords = []string{"good", "great", "excellent", "amazing", "wonderful", "best", "love", "happy"}
	negativeWords = []string{"bad", "terrible", "awful", "worst", "hate", "sad", "angry", "problem"}
)

// KeywordAnalyzer is a local analyzer: a leading excerpt as summary, the most frequent
// words as keywords and a word-list sentiment. It never fails.
type KeywordAnalyzer struct{}

func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

func (a *KeywordAnalyzer) Name() string {
	return ProviderKeyword
}

func (a *KeywordAnalyzer) Analyze(ctx context.Context, title, content string) (model.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return model.Analysis{}, err
	}
	text := sanitizer.PlainText(content)
	if text == "" {
		text = sanitizer.PlainText(title)
	}
	return model.Analysis{
		Summary:   keywordSummary(text),
		Keywords:  topWords(text, keywordLimit),
		Sentiment: lexiconSentiment(text),
	}, nil
}

func keywordSummary(text string) string {
	runes := []rune(text)
	if len(runes) <= keywordSummaryRunes {
		return text
	}
	cut := string(runes[:keywordSummaryRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

// topWords returns the limit most frequent words. Ties keep first-appearance order.
func topWords(text string, limit int) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, w := range words {
		if len([]rune(w)) < minKeywordRunes {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func lexiconSentiment(text string) string {
	lower := strings.ToLower(text)
	positive, negative := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}
	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	}
	return SentimentNeutral
}
