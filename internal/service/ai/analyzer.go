//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package ai

import (
	"context"
	"fmt"

	"castmind/backend/internal/model"
	"castmind/backend/pkg/logger"
)

// Analyzer produces a summary, keywords and a sentiment label for one article.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, title, content string) (model.Analysis, error)
}

// NewAnalyzer returns the analyzer selected by cfg.Provider. The keyword analyzer needs
// no credentials and is used when no provider is named.
func NewAnalyzer(cfg Config) (Analyzer, error) {
	if cfg.Provider == "" || cfg.Provider == ProviderKeyword {
		return NewKeywordAnalyzer(), nil
	}
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewLLMAnalyzer(provider, NewRateLimiter(cfg.RateLimit)), nil
}

// LLMAnalyzer asks a remote Provider for a JSON analysis.
type LLMAnalyzer struct {
	provider Provider
	limiter  *RateLimiter
}

func NewLLMAnalyzer(provider Provider, limiter *RateLimiter) *LLMAnalyzer {
	if limiter == nil {
		limiter = NewRateLimiter(DefaultRateLimit)
	}
	return &LLMAnalyzer{provider: provider, limiter: limiter}
}

func (a *LLMAnalyzer) Name() string {
	return a.provider.Name()
}

func (a *LLMAnalyzer) Analyze(ctx context.Context, title, content string) (model.Analysis, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return model.Analysis{}, err
	}

	answer, err := a.provider.Complete(ctx, analysisSystemPrompt, AnalysisPrompt(title, content))
	if err != nil {
		logger.Warn("ai analyze failed", "module", "ai", "action", "analyze", "resource", "article", "result", "failed", "provider", a.provider.Name(), "error", err)
		return model.Analysis{}, fmt.Errorf("%s: %w", a.provider.Name(), err)
	}

	analysis, err := ParseAnalysis(answer)
	if err != nil {
		logger.Warn("ai answer unreadable", "module", "ai", "action", "analyze", "resource", "article", "result", "failed", "provider", a.provider.Name(), "error", err)
		return model.Analysis{}, err
	}
	return analysis, nil
}
