package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"castmind/backend/internal/model"
)

// maxPromptRunes bounds the article text sent to a remote model.
const maxPromptRunes = 8000

const analysisSystemPrompt = `You analyze articles and podcast episodes for a reading queue.
Answer with a single JSON object and nothing else:
{"summary": "<two or three sentences>", "keywords": ["<up to 8 short keywords>"], "sentiment": "positive|neutral|negative"}
Write the summary in the language of the article.`

var errNoJSON = errors.New("no json object in model answer")

// AnalysisPrompt builds the user message for one article.
func AnalysisPrompt(title, content string) string {
	return fmt.Sprintf("<article_title>%s</article_title>\n<article_content>\n%s\n</article_content>", title, truncateRunes(content, maxPromptRunes))
}

type analysisAnswer struct {
	Summary   string   `json:"summary"`
	Keywords  []string `json:"keywords"`
	Sentiment string   `json:"sentiment"`
}

// ParseAnalysis reads the JSON object out of a model answer. Code fences and text around
// the object are ignored.
func ParseAnalysis(answer string) (model.Analysis, error) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end <= start {
		return model.Analysis{}, errNoJSON
	}

	var parsed analysisAnswer
	if err := json.Unmarshal([]byte(answer[start:end+1]), &parsed); err != nil {
		return model.Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	keywords := make([]string, 0, len(parsed.Keywords))
	for _, k := range parsed.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return model.Analysis{
		Summary:   strings.TrimSpace(parsed.Summary),
		Keywords:  keywords,
		Sentiment: normalizeSentiment(parsed.Sentiment),
	}, nil
}

func normalizeSentiment(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case SentimentPositive, SentimentNegative:
		return s
	}
	return SentimentNeutral
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
