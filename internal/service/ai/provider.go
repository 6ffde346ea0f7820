package ai

import (
	"context"
	"errors"
	"strings"
)

const (
	ProviderKeyword    = "keyword"
	ProviderOpenAI     = "openai"
	ProviderCompatible = "compatible"
	ProviderAnthropic  = "anthropic"
)

var (
	ErrMissingAPIKey   = errors.New("ai api key is required")
	ErrMissingModel    = errors.New("ai model is required")
	ErrMissingBaseURL  = errors.New("ai base url is required for compatible providers")
	ErrInvalidProvider = errors.New("unknown ai provider")
)

// Provider is a remote language model that answers one prompt at a time.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
}

type Config struct {
	Provider  string
	APIKey    string
	BaseURL   string
	Model     string
	Endpoint  string
	RateLimit float64
}

// NewProvider builds the remote provider named by cfg.Provider. An empty name means OpenAI.
func NewProvider(cfg Config) (Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Endpoint)
	case ProviderCompatible:
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, ErrInvalidProvider
	}
}
