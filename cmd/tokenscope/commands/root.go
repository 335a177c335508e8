package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sozercan/tokenscope/internal/analyzer"
	"github.com/sozercan/tokenscope/internal/classifier"
	"github.com/sozercan/tokenscope/internal/config"
	"github.com/sozercan/tokenscope/internal/llm"
	"github.com/sozercan/tokenscope/internal/speech"
	"github.com/sozercan/tokenscope/internal/tokendata"
)

var (
	configFile string
	logLevel   string
	logFormat  string

	cfg *config.Config
)

func Execute() error {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tokenscope",
		Short:         "LLM trading analysis for crypto tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Log.Format = logFormat
			}
			return setupLogging(cfg.Log)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(lambdaCmd(), serveCmd(), analyzeCmd())
	return root
}

func setupLogging(lc config.LogConfig) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(lc.Format) {
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	case "", "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format %q", lc.Format)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// newAnalyzer wires the token data source, LLM provider, classifier and
// (when voice is enabled) the speech client from cfg.
func newAnalyzer(cfg *config.Config, voice bool) (*analyzer.Analyzer, error) {
	tokens, err := tokendata.New(&cfg.TokenData)
	if err != nil {
		return nil, fmt.Errorf("failed to create token data client: %w", err)
	}

	llmProvider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	cl := classifier.New(cfg.Classifier.Bullish)
	slog.Info("Loaded bullish token list", "entries", cl.Len())

	opts := []analyzer.Option{analyzer.WithChat(cfg.Chat)}
	if voice {
		opts = append(opts, analyzer.WithSpeech(speech.NewOpenAI(llm.NewClient(&cfg.OpenAI), &cfg.Speech)))
	}

	return analyzer.New(tokens, llmProvider, cl, cfg.Analysis, opts...), nil
}
