package commands

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/spf13/cobra"

	"github.com/sozercan/tokenscope/apimodels"
	"github.com/sozercan/tokenscope/internal/config"
	"github.com/sozercan/tokenscope/internal/handler"
)

func lambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run the configured handler (HANDLER_TYPE) under AWS Lambda",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := configuredHandler(cfg)
			if err != nil {
				return err
			}

			name := config.NormalizeHandler(cfg.Handler)
			slog.Info("Starting Lambda runtime", "handler", name)
			lambda.Start(func(ctx context.Context, req apimodels.Request) (*apimodels.Response, error) {
				if lc, ok := lambdacontext.FromContext(ctx); ok {
					slog.Info("Invocation received", "handler", name, "request_id", lc.AwsRequestID)
				}
				return h.Handle(ctx, &req)
			})
			return nil
		},
	}
}

// configuredHandler checks credentials for cfg.Handler and builds it. The
// health handler needs no clients, so none are created for it.
func configuredHandler(cfg *config.Config) (handler.Handler, error) {
	name := config.NormalizeHandler(cfg.Handler)
	if _, err := handler.Lookup(name, nil); err != nil {
		return nil, err
	}
	if err := cfg.Validate(name); err != nil {
		return nil, err
	}

	var svc handler.Service
	if name != "health" {
		a, err := newAnalyzer(cfg, cfg.Analysis.Voice)
		if err != nil {
			return nil, err
		}
		svc = a
	}

	return handler.Lookup(name, svc)
}
