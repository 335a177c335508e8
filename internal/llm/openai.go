package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/tokenscope/internal/config"
)

// OpenAI client implementation
type OpenAI struct {
	client *openai.Client
	cfg    *config.OpenAIConfig
}

// NewClient builds the SDK client shared by the completion and speech
// providers. SDK retries are disabled: every external call is attempted once.
func NewClient(cfg *config.OpenAIConfig) *openai.Client {
	switch cfg.Provider {
	case "azure":
		return openai.NewClient(
			azure.WithEndpoint(cfg.APIEndpoint, cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		)
	default: // "openai"
		return openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.APIEndpoint),
			option.WithMaxRetries(0),
		)
	}
}

func NewOpenAI(cfg *config.OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key cannot be empty")
	}

	return &OpenAI{
		client: NewClient(cfg),
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error) {
	// Apply options
	options := &Options{
		Model:     "gpt-4o",
		MaxTokens: 1000,
		N:         1,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(systemMessages)+len(userMessages))
	for _, m := range systemMessages {
		messages = append(messages, openai.SystemMessage(m))
	}
	for _, m := range userMessages {
		messages = append(messages, openai.UserMessage(m))
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:            openai.F(openai.ChatModel(options.Model)),
		Messages:         openai.F(messages),
		MaxTokens:        openai.F(options.MaxTokens),
		Temperature:      openai.F(options.Temperature),
		TopP:             openai.F(options.TopP),
		N:                openai.F(options.N),
		PresencePenalty:  openai.F(options.PresencePenalty),
		FrequencyPenalty: openai.F(options.FrequencyPenalty),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			slog.Error("OpenAI API error", "status", apiErr.StatusCode, "error", err)
		}
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyCompletion
	}

	return &Response{
		Content: content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
