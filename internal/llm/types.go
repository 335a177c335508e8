package llm

import (
	"context"
	"errors"
)

var (
	// ErrNoChoices is returned when the provider answers without any choice.
	ErrNoChoices = errors.New("no choices returned by LLM")
	// ErrEmptyCompletion is returned when the first choice has no content.
	ErrEmptyCompletion = errors.New("LLM returned an empty completion")
)

type Provider interface {
	// Complete runs one chat completion and returns the first choice
	Complete(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

// Options are sent as-is; zero values are sent too, so a temperature of 0
// really means greedy decoding.
type Options struct {
	Model            string
	MaxTokens        int64
	Temperature      float64
	TopP             float64
	N                int64
	PresencePenalty  float64
	FrequencyPenalty float64
}

type Response struct {
	Content string
	Model   string
	Usage   Usage
}
