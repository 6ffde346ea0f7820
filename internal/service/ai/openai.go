package ai

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

const (
	EndpointResponses = "responses"
	EndpointChat      = "chat/completions"
)

// OpenAIProvider implements Provider for OpenAI and OpenAI-compatible APIs.
type OpenAIProvider struct {
	client   openai.Client
	name     string
	model    string
	endpoint string
}

// NewOpenAIProvider creates a provider for the OpenAI API. Endpoint selects the
// Responses API (default) or Chat Completions.
func NewOpenAIProvider(apiKey, baseURL, model, endpoint string) (*OpenAIProvider, error) {
	if endpoint == "" {
		endpoint = EndpointResponses
	}
	return newOpenAIProvider(ProviderOpenAI, apiKey, baseURL, model, endpoint), nil
}

// NewCompatibleProvider creates a provider for a third-party server speaking the
// Chat Completions protocol.
func NewCompatibleProvider(apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}
	return newOpenAIProvider(ProviderCompatible, apiKey, baseURL, model, EndpointChat), nil
}

func newOpenAIProvider(name, apiKey, baseURL, model, endpoint string) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIProvider{
		client:   openai.NewClient(opts...),
		name:     name,
		model:    model,
		endpoint: endpoint,
	}
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, content string) (string, error) {
	if p.endpoint == EndpointResponses {
		return p.completeWithResponses(ctx, systemPrompt, content)
	}
	return p.completeWithChat(ctx, systemPrompt, content)
}

func (p *OpenAIProvider) completeWithResponses(ctx context.Context, systemPrompt, content string) (string, error) {
	inputItems := []responses.ResponseInputItemUnionParam{}
	if systemPrompt != "" {
		inputItems = append(inputItems, responses.ResponseInputItemParamOfMessage(systemPrompt, responses.EasyInputMessageRoleSystem))
	}
	inputItems = append(inputItems, responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRoleUser))

	resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam(inputItems),
		},
	})
	if err != nil {
		return "", err
	}

	var result strings.Builder
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.AsMessage().Content {
			if part.Type == "output_text" {
				result.WriteString(part.Text)
			}
		}
	}
	return result.String(), nil
}

func (p *OpenAIProvider) completeWithChat(ctx context.Context, systemPrompt, content string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(content))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
