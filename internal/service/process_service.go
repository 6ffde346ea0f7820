//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"unicode/utf8"

	"castmind/backend/internal/model"
	"castmind/backend/internal/repository"
	"castmind/backend/internal/service/ai"
	"castmind/backend/pkg/logger"
	"castmind/backend/pkg/sanitizer"
)

const (
	defaultProcessBatch = 100
	// thinContentRunes is the plain-text length below which the article page is
	// fetched for more text, when readability extraction is enabled.
	thinContentRunes = 280
)

type ProcessSummary struct {
	Candidates int
	Processed  int
	Failed     int
}

type ProcessService interface {
	ProcessUnprocessed(ctx context.Context, limit int) (ProcessSummary, error)
}

type processService struct {
	articles    repository.ArticleRepository
	analyzer    ai.Analyzer
	readability ReadabilityService
}

// NewProcessService builds the analysis job body. readability may be nil.
func NewProcessService(articles repository.ArticleRepository, analyzer ai.Analyzer, readability ReadabilityService) ProcessService {
	return &processService{
		articles:    articles,
		analyzer:    analyzer,
		readability: readability,
	}
}

// ProcessUnprocessed analyzes up to limit of the oldest unprocessed articles. An article
// whose analysis fails stays unprocessed and is picked up by a later run.
func (s *processService) ProcessUnprocessed(ctx context.Context, limit int) (ProcessSummary, error) {
	if limit <= 0 {
		limit = defaultProcessBatch
	}
	articles, err := s.articles.ListUnprocessed(ctx, limit)
	if err != nil {
		logger.Error("process list articles", "module", "service", "action", "list", "resource", "article", "result", "failed", "error", err)
		return ProcessSummary{}, err
	}

	summary := ProcessSummary{Candidates: len(articles)}
	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		analysis, err := s.analyzer.Analyze(ctx, article.Title, s.analysisText(ctx, article))
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			logger.Warn("analyze article failed", "module", "service", "action", "analyze", "resource", "article", "result", "failed", "article_id", article.ID, "analyzer", s.analyzer.Name(), "error", err)
			summary.Failed++
			continue
		}

		if err := s.articles.MarkProcessed(ctx, article.ID, analysis); err != nil {
			logger.Warn("save analysis failed", "module", "service", "action", "save", "resource", "article", "result", "failed", "article_id", article.ID, "error", err)
			summary.Failed++
			continue
		}
		summary.Processed++
	}

	if summary.Candidates > 0 {
		logger.Info("articles processed", "module", "service", "action", "analyze", "resource", "article", "result", "ok", "count", summary.Candidates, "processed", summary.Processed, "failed", summary.Failed, "analyzer", s.analyzer.Name())
	}
	return summary, nil
}

// analysisText picks the text to analyze: the content, the podcast description for
// episodes without content, and the readable page text when both are thin.
func (s *processService) analysisText(ctx context.Context, article model.Article) string {
	text := deref(article.Content)
	if article.IsPodcast && sanitizer.PlainText(text) == "" {
		text = deref(article.PodcastDescription)
	}
	if s.readability == nil || utf8.RuneCountInString(sanitizer.PlainText(text)) >= thinContentRunes {
		return text
	}

	readable, err := s.readability.Extract(ctx, article)
	if err != nil {
		logger.Debug("readability skipped", "module", "service", "action", "fetch", "resource", "article", "result", "skipped", "article_id", article.ID, "error", err)
		return text
	}
	return readable
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
