package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sozercan/tokenscope/internal/classifier"
)

type Config struct {
	Handler    string           `mapstructure:"handler_type"`
	Log        LogConfig        `mapstructure:"log"`
	Server     ServerConfig     `mapstructure:"server"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	TokenData  TokenDataConfig  `mapstructure:"tokendata"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type OpenAIConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	APIEndpoint string `mapstructure:"endpoint"`
	APIVersion  string `mapstructure:"api_version"`
}

// GenerationConfig is the fixed set of completion parameters for one variant.
type GenerationConfig struct {
	Model            string  `mapstructure:"model"`
	MaxTokens        int64   `mapstructure:"max_tokens"`
	Temperature      float64 `mapstructure:"temperature"`
	TopP             float64 `mapstructure:"top_p"`
	N                int64   `mapstructure:"n"`
	PresencePenalty  float64 `mapstructure:"presence_penalty"`
	FrequencyPenalty float64 `mapstructure:"frequency_penalty"`
}

type AnalysisConfig struct {
	Chain      string           `mapstructure:"chain"`
	Voice      bool             `mapstructure:"voice"`
	Generation GenerationConfig `mapstructure:"generation"`
}

type ChatConfig struct {
	SystemPrompt string           `mapstructure:"system_prompt"`
	Generation   GenerationConfig `mapstructure:"generation"`
}

type SpeechConfig struct {
	Model  string `mapstructure:"model"`
	Voice  string `mapstructure:"voice"`
	Format string `mapstructure:"format"`
}

type TokenDataConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type ClassifierConfig struct {
	Bullish []classifier.Entry `mapstructure:"bullish"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("handler_type", "health")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.port", "8000")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")

	v.SetDefault("openai.provider", "openai")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.endpoint", "https://api.openai.com/v1/")
	v.SetDefault("openai.api_version", "2024-06-01")

	v.SetDefault("analysis.chain", "solana")
	v.SetDefault("analysis.voice", true)
	v.SetDefault("analysis.generation.model", "gpt-4o")
	v.SetDefault("analysis.generation.max_tokens", 1250)
	v.SetDefault("analysis.generation.temperature", 0.5)
	v.SetDefault("analysis.generation.top_p", 0.9)
	v.SetDefault("analysis.generation.n", 1)
	v.SetDefault("analysis.generation.presence_penalty", 0.2)
	v.SetDefault("analysis.generation.frequency_penalty", 0.2)

	v.SetDefault("chat.system_prompt", "You are a helpful assistant.")
	v.SetDefault("chat.generation.model", "gpt-3.5-turbo")
	v.SetDefault("chat.generation.max_tokens", 50)
	v.SetDefault("chat.generation.temperature", 0.0)
	v.SetDefault("chat.generation.top_p", 0.0)
	v.SetDefault("chat.generation.n", 2)
	v.SetDefault("chat.generation.presence_penalty", 0.0)
	v.SetDefault("chat.generation.frequency_penalty", 0.0)

	v.SetDefault("speech.model", "tts-1")
	v.SetDefault("speech.voice", "alloy")
	v.SetDefault("speech.format", "mp3")

	v.SetDefault("tokendata.provider", "dextools")
	v.SetDefault("tokendata.api_key", "")
	v.SetDefault("tokendata.endpoint", "")
	v.SetDefault("tokendata.timeout", "15s")

	v.SetDefault("classifier.bullish", classifier.DefaultEntries)
}

// LoadConfig reads defaults, then the optional config file, then the
// environment. Nested keys map to upper-case env vars with "." replaced by
// "_", e.g. openai.api_key -> OPENAI_API_KEY.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Info("using config file", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.Handler = NormalizeHandler(cfg.Handler)

	slog.Info("configuration loaded successfully", "handler", cfg.Handler)
	return &cfg, nil
}

// NormalizeHandler folds a handler name to the form the handler table uses.
func NormalizeHandler(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate checks that the secrets the given handler needs are present, so a
// misconfigured deployment fails at startup rather than on the first request.
func (c *Config) Validate(handler string) error {
	var errs []error

	handler = NormalizeHandler(handler)
	needsOpenAI := handler == "analyze" || handler == "chat"
	needsTokenData := handler == "analyze" || handler == "token_info"

	if needsOpenAI && c.OpenAI.APIKey == "" {
		errs = append(errs, errors.New("OPENAI_API_KEY is required"))
	}
	if needsTokenData && c.TokenData.APIKey == "" {
		errs = append(errs, errors.New("TOKENDATA_API_KEY is required"))
	}
	if handler == "analyze" && c.Analysis.Chain == "" {
		errs = append(errs, errors.New("ANALYSIS_CHAIN cannot be empty"))
	}

	return errors.Join(errs...)
}
