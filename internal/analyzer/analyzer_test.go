package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sozercan/tokenscope/apimodels"
	"github.com/sozercan/tokenscope/internal/classifier"
	"github.com/sozercan/tokenscope/internal/config"
	"github.com/sozercan/tokenscope/internal/tokendata"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testAnalysisConfig = config.AnalysisConfig{
	Chain: "solana",
	Generation: config.GenerationConfig{
		Model:            "gpt-4o",
		MaxTokens:        1250,
		Temperature:      0.5,
		TopP:             0.9,
		N:                1,
		PresencePenalty:  0.2,
		FrequencyPenalty: 0.2,
	},
}

var testChatConfig = config.ChatConfig{
	SystemPrompt: "You are a helpful assistant.",
	Generation: config.GenerationConfig{
		Model:     "gpt-3.5-turbo",
		MaxTokens: 50,
		N:         2,
	},
}

func newTestAnalyzer(src *fakeSource, provider *fakeProvider, synth *fakeSynthesizer) *Analyzer {
	opts := []Option{WithChat(testChatConfig)}
	if synth != nil {
		opts = append(opts, WithSpeech(synth))
	}
	return New(src, provider, classifier.New(classifier.DefaultEntries), testAnalysisConfig, opts...)
}

func TestAnalyzeSuccess(t *testing.T) {
	src := &fakeSource{details: &tokendata.Details{Audit: cleanAudit(), Price: risingPrice()}}
	provider := &fakeProvider{content: "🚀 BUY: looks healthy"}
	synth := &fakeSynthesizer{}

	out := newTestAnalyzer(src, provider, synth).Analyze(context.Background(), "  Mint111  ")

	require.Equal(t, OutcomeSuccess, out.Kind)
	result, ok := out.Payload.(*apimodels.AnalysisResponse)
	require.True(t, ok, "payload should be an analysis response")
	assert.Equal(t, "🚀 BUY: looks healthy", result.Text)
	assert.Equal(t, "SUQz", result.AudioBase64)
	assert.Equal(t, "audio-1", result.AudioID)

	assert.Equal(t, []string{"solana/Mint111"}, src.calls, "identifier is trimmed before fetching")
	require.Len(t, provider.calls, 1)
	assert.Equal(t, []string{SystemPrompt}, provider.calls[0].system)
	assert.Equal(t, []string{"🚀 BUY: looks healthy"}, synth.calls)

	opts := provider.calls[0].options
	assert.Equal(t, "gpt-4o", opts.Model)
	assert.Equal(t, int64(1250), opts.MaxTokens)
	assert.InDelta(t, 0.5, opts.Temperature, 1e-9)
	assert.InDelta(t, 0.9, opts.TopP, 1e-9)
	assert.Equal(t, int64(1), opts.N)
	assert.InDelta(t, 0.2, opts.PresencePenalty, 1e-9)
	assert.InDelta(t, 0.2, opts.FrequencyPenalty, 1e-9)
}

func TestAnalyzeWithoutVoice(t *testing.T) {
	src := &fakeSource{details: &tokendata.Details{Price: risingPrice()}}
	provider := &fakeProvider{content: "⚖️ HOLD"}

	out := newTestAnalyzer(src, provider, nil).Analyze(context.Background(), "Mint111")

	require.Equal(t, OutcomeSuccess, out.Kind)
	result := out.Payload.(*apimodels.AnalysisResponse)
	assert.Equal(t, "⚖️ HOLD", result.Text)
	assert.Empty(t, result.AudioBase64)
	assert.Empty(t, result.AudioID)
}

func TestAnalyzeEmptyInputMakesNoCalls(t *testing.T) {
	for _, input := range []string{"", " ", "\t\n  "} {
		src := &fakeSource{}
		provider := &fakeProvider{}
		synth := &fakeSynthesizer{}

		out := newTestAnalyzer(src, provider, synth).Analyze(context.Background(), input)

		assert.Equal(t, OutcomeEmptyInput, out.Kind, "input %q", input)
		assert.Empty(t, src.calls)
		assert.Empty(t, provider.calls)
		assert.Empty(t, synth.calls)
	}
}

func TestAnalyzeNotFoundRegardlessOfLabel(t *testing.T) {
	for _, token := range []string{"UnknownMint", classifier.DefaultEntries[0].Address} {
		src := &fakeSource{details: &tokendata.Details{}}
		provider := &fakeProvider{content: "unused"}

		out := newTestAnalyzer(src, provider, &fakeSynthesizer{}).Analyze(context.Background(), token)

		assert.Equal(t, OutcomeNotFound, out.Kind, "token %s", token)
		assert.Empty(t, provider.calls, "no LLM call for unknown tokens")
	}
}

func TestAnalyzeDataFetchFailed(t *testing.T) {
	src := &fakeSource{err: errProvider}
	provider := &fakeProvider{}

	out := newTestAnalyzer(src, provider, nil).Analyze(context.Background(), "Mint111")

	assert.Equal(t, OutcomeDataFetchFailed, out.Kind)
	assert.Equal(t, "provider unavailable", out.Reason)
	assert.Empty(t, provider.calls)
}

func TestAnalyzeLLMFailure(t *testing.T) {
	src := &fakeSource{details: &tokendata.Details{Audit: cleanAudit(), Price: risingPrice()}}
	provider := &fakeProvider{err: errProvider}
	synth := &fakeSynthesizer{}

	out := newTestAnalyzer(src, provider, synth).Analyze(context.Background(), "Mint111")

	assert.Equal(t, OutcomeAnalysisFailed, out.Kind)
	assert.Contains(t, out.Reason, "provider unavailable")
	assert.Nil(t, out.Payload)
	assert.Empty(t, synth.calls)
}

func TestAnalyzeSynthesisFailureDiscardsText(t *testing.T) {
	src := &fakeSource{details: &tokendata.Details{Audit: cleanAudit()}}
	provider := &fakeProvider{content: "🚀 BUY"}
	synth := &fakeSynthesizer{err: errProvider}

	out := newTestAnalyzer(src, provider, synth).Analyze(context.Background(), "Mint111")

	assert.Equal(t, OutcomeSynthesisFailed, out.Kind)
	assert.Equal(t, "provider unavailable", out.Reason)
	assert.Nil(t, out.Payload, "text is not returned when synthesis fails")
}

func TestAnalyzeBullishPrompt(t *testing.T) {
	bullish := classifier.DefaultEntries[1].Address
	src := &fakeSource{details: &tokendata.Details{Price: risingPrice()}}
	provider := &fakeProvider{content: "🚀🚀 HIGHLY RECOMMEND"}

	out := newTestAnalyzer(src, provider, nil).Analyze(context.Background(), bullish)

	require.Equal(t, OutcomeSuccess, out.Kind)
	require.Len(t, provider.calls, 1)
	assert.Contains(t, provider.calls[0].user[0], "HIGHLY RECOMMEND")
}

func TestAnalyzeCanceledContext(t *testing.T) {
	src := &fakeSource{details: &tokendata.Details{Price: risingPrice()}}
	provider := &fakeProvider{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := newTestAnalyzer(src, provider, nil).Analyze(ctx, "Mint111")

	assert.Equal(t, OutcomeDataFetchFailed, out.Kind)
	assert.Equal(t, context.Canceled.Error(), out.Reason)
	assert.Empty(t, provider.calls)
}

func TestLookup(t *testing.T) {
	details := &tokendata.Details{Audit: cleanAudit()}
	src := &fakeSource{details: details}
	provider := &fakeProvider{}

	a := newTestAnalyzer(src, provider, nil)

	out := a.Lookup(context.Background(), "Mint111")
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Same(t, details, out.Payload)
	assert.Empty(t, provider.calls)

	assert.Equal(t, OutcomeEmptyInput, a.Lookup(context.Background(), " ").Kind)

	src.details = &tokendata.Details{}
	assert.Equal(t, OutcomeNotFound, a.Lookup(context.Background(), "Mint111").Kind)
}

func TestChat(t *testing.T) {
	provider := &fakeProvider{content: "Hello!"}
	a := newTestAnalyzer(&fakeSource{}, provider, nil)

	out := a.Chat(context.Background(), "Test message")
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, &apimodels.ChatResponse{Response: "Hello!"}, out.Payload)

	require.Len(t, provider.calls, 1)
	assert.Equal(t, []string{"You are a helpful assistant."}, provider.calls[0].system)
	assert.Equal(t, []string{"Test message"}, provider.calls[0].user)
	assert.Equal(t, "gpt-3.5-turbo", provider.calls[0].options.Model)
	assert.Equal(t, int64(50), provider.calls[0].options.MaxTokens)
	assert.Equal(t, int64(2), provider.calls[0].options.N)
}

func TestChatEmptyMessage(t *testing.T) {
	provider := &fakeProvider{}
	out := newTestAnalyzer(&fakeSource{}, provider, nil).Chat(context.Background(), "")

	assert.Equal(t, OutcomeEmptyInput, out.Kind)
	assert.Empty(t, provider.calls)
}

func TestChatFailure(t *testing.T) {
	provider := &fakeProvider{err: errProvider}
	out := newTestAnalyzer(&fakeSource{}, provider, nil).Chat(context.Background(), "hi")

	assert.Equal(t, OutcomeCompletionFailed, out.Kind)
	assert.Equal(t, "provider unavailable", out.Reason)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "unknown", OutcomeKind(99).String())
}
