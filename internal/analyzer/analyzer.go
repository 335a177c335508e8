package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sozercan/tokenscope/apimodels"
	"github.com/sozercan/tokenscope/internal/classifier"
	"github.com/sozercan/tokenscope/internal/config"
	"github.com/sozercan/tokenscope/internal/llm"
	"github.com/sozercan/tokenscope/internal/speech"
	"github.com/sozercan/tokenscope/internal/tokendata"
)

type Analyzer struct {
	tokens      tokendata.Source
	llmProvider llm.Provider
	speech      speech.Synthesizer
	classifier  *classifier.Classifier
	chain       string
	generation  config.GenerationConfig
	chat        config.ChatConfig
}

type Option func(*Analyzer)

// WithSpeech enables the voice step; without it the analysis is text only.
func WithSpeech(s speech.Synthesizer) Option {
	return func(a *Analyzer) {
		a.speech = s
	}
}

// WithChat sets the persona and generation parameters of the chat variant.
func WithChat(cfg config.ChatConfig) Option {
	return func(a *Analyzer) {
		a.chat = cfg
	}
}

func New(tokens tokendata.Source, llmProvider llm.Provider, cl *classifier.Classifier, cfg config.AnalysisConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		tokens:      tokens,
		llmProvider: llmProvider,
		classifier:  cl,
		chain:       cfg.Chain,
		generation:  cfg.Generation,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// run carries per-invocation state from one step to the next.
type run struct {
	input   string
	details *tokendata.Details
	label   classifier.Label
	prompt  Prompt
	text    string
	audio   *speech.Audio
}

// A step either advances the run or ends it with an Outcome.
type step struct {
	name string
	fn   func(ctx context.Context, r *run) *Outcome
}

// Analyze runs the full token analysis for tokenID.
func (a *Analyzer) Analyze(ctx context.Context, tokenID string) Outcome {
	slog.Info("Starting analysis", "token", tokenID, "voice", a.speech != nil)
	startTime := time.Now()

	steps := []step{
		{"validate_input", a.validateInput},
		{"fetch_token_data", a.fetchTokenData},
		{"classify", a.classify},
		{"build_prompt", a.buildPrompt},
		{"analyze", a.analyze},
	}
	if a.speech != nil {
		steps = append(steps, step{"synthesize_speech", a.synthesize})
	}

	r := &run{input: tokenID}
	if out := execute(ctx, r, steps); out != nil {
		return *out
	}

	result := &apimodels.AnalysisResponse{Text: r.text}
	if r.audio != nil {
		result.AudioBase64 = r.audio.Base64
		result.AudioID = r.audio.ID
	}

	slog.Info("Analysis completed", "token", r.input, "label", r.label, "duration", time.Since(startTime))
	return Success(result)
}

// Lookup validates tokenID and returns the raw token details.
func (a *Analyzer) Lookup(ctx context.Context, tokenID string) Outcome {
	slog.Info("Looking up token details", "token", tokenID)

	r := &run{input: tokenID}
	if out := execute(ctx, r, []step{
		{"validate_input", a.validateInput},
		{"fetch_token_data", a.fetchTokenData},
	}); out != nil {
		return *out
	}
	return Success(r.details)
}

// Chat answers a free-text message with the generic assistant persona.
func (a *Analyzer) Chat(ctx context.Context, message string) Outcome {
	slog.Info("Handling chat message")

	r := &run{input: message}
	if out := execute(ctx, r, []step{
		{"validate_input", a.validateInput},
		{"complete", a.complete},
	}); out != nil {
		return *out
	}
	return Success(&apimodels.ChatResponse{Response: r.text})
}

func execute(ctx context.Context, r *run, steps []step) *Outcome {
	for _, s := range steps {
		if out := s.fn(ctx, r); out != nil {
			slog.Info("Pipeline stopped", "step", s.name, "outcome", out.Kind.String(), "reason", out.Reason)
			return out
		}
		slog.Debug("Step completed", "step", s.name)
	}
	return nil
}

func (a *Analyzer) validateInput(_ context.Context, r *run) *Outcome {
	r.input = strings.TrimSpace(r.input)
	if r.input == "" {
		return &Outcome{Kind: OutcomeEmptyInput}
	}
	return nil
}

func (a *Analyzer) fetchTokenData(ctx context.Context, r *run) *Outcome {
	details, err := a.tokens.FetchTokenDetails(ctx, a.chain, r.input)
	if err != nil {
		slog.Error("Failed to fetch token details", "token", r.input, "error", err)
		out := Failure(OutcomeDataFetchFailed, err)
		return &out
	}
	if details.Empty() {
		return &Outcome{Kind: OutcomeNotFound}
	}
	r.details = details
	return nil
}

func (a *Analyzer) classify(_ context.Context, r *run) *Outcome {
	r.label = a.classifier.Classify(r.input)
	if tag, ok := a.classifier.Tag(r.input); ok {
		slog.Info("Token is on the bullish list", "token", r.input, "tag", tag)
	}
	return nil
}

func (a *Analyzer) buildPrompt(_ context.Context, r *run) *Outcome {
	r.prompt = BuildPrompt(r.details.Audit, r.details.Price, r.label)
	slog.Debug("Built analysis prompt", "prompt", r.prompt.User)
	return nil
}

func (a *Analyzer) analyze(ctx context.Context, r *run) *Outcome {
	resp, err := a.llmProvider.Complete(ctx,
		[]string{r.prompt.System},
		[]string{r.prompt.User},
		generationOption(a.generation),
	)
	if err != nil {
		slog.Error("LLM analysis failed", "error", err)
		out := Failure(OutcomeAnalysisFailed, fmt.Errorf("LLM analysis failed: %w", err))
		return &out
	}

	slog.Debug("LLM analysis completed", "model", resp.Model, "tokens", resp.Usage.TotalTokens)
	r.text = resp.Content
	return nil
}

// synthesize turns the analysis into audio. A failure here discards the
// text analysis as well.
func (a *Analyzer) synthesize(ctx context.Context, r *run) *Outcome {
	audio, err := a.speech.Synthesize(ctx, r.text)
	if err != nil {
		slog.Error("Speech synthesis failed", "error", err)
		out := Failure(OutcomeSynthesisFailed, err)
		return &out
	}
	r.audio = audio
	return nil
}

func (a *Analyzer) complete(ctx context.Context, r *run) *Outcome {
	resp, err := a.llmProvider.Complete(ctx,
		[]string{a.chat.SystemPrompt},
		[]string{r.input},
		generationOption(a.chat.Generation),
	)
	if err != nil {
		slog.Error("Chat completion failed", "error", err)
		out := Failure(OutcomeCompletionFailed, err)
		return &out
	}
	r.text = resp.Content
	return nil
}

func generationOption(cfg config.GenerationConfig) llm.Option {
	return func(o *llm.Options) {
		if cfg.Model != "" {
			o.Model = cfg.Model
		}
		if cfg.MaxTokens != 0 {
			o.MaxTokens = cfg.MaxTokens
		}
		if cfg.N != 0 {
			o.N = cfg.N
		}
		o.Temperature = cfg.Temperature
		o.TopP = cfg.TopP
		o.PresencePenalty = cfg.PresencePenalty
		o.FrequencyPenalty = cfg.FrequencyPenalty
	}
}
