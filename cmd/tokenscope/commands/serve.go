package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sozercan/tokenscope/internal/handler"
	"github.com/sozercan/tokenscope/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve every handler over HTTP under /api/v1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// analyze needs every credential the other handlers need
			if err := cfg.Validate("analyze"); err != nil {
				return err
			}

			a, err := newAnalyzer(cfg, cfg.Analysis.Voice)
			if err != nil {
				return err
			}

			handlers := make(map[string]handler.Handler)
			for _, name := range handler.Names() {
				h, err := handler.Lookup(name, a)
				if err != nil {
					return err
				}
				handlers[name] = h
			}

			srv := server.New(cfg.Server, handlers)
			slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
			return srv.Run(cmd.Context())
		},
	}
}
