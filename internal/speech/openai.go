package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/openai/openai-go"

	"github.com/sozercan/tokenscope/internal/config"
)

// OpenAI synthesizes speech with the OpenAI text-to-speech endpoint.
type OpenAI struct {
	client *openai.Client
	cfg    *config.SpeechConfig
}

func NewOpenAI(client *openai.Client, cfg *config.SpeechConfig) *OpenAI {
	return &OpenAI{
		client: client,
		cfg:    cfg,
	}
}

func (o *OpenAI) Synthesize(ctx context.Context, text string) (*Audio, error) {
	if text == "" {
		return nil, errors.New("nothing to synthesize")
	}

	resp, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.F(openai.SpeechModel(o.cfg.Model)),
		Input:          openai.F(text),
		Voice:          openai.F(openai.AudioSpeechNewParamsVoice(o.cfg.Voice)),
		ResponseFormat: openai.F(openai.AudioSpeechNewParamsResponseFormat(o.cfg.Format)),
	})
	if err != nil {
		slog.Error("Speech synthesis request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech API error: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("speech API returned no audio")
	}

	audio := &Audio{
		Base64: base64.StdEncoding.EncodeToString(data),
		ID:     uuid.NewString(),
	}
	slog.Debug("Synthesized speech", "audio_id", audio.ID, "bytes", len(data))
	return audio, nil
}
