package commands

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sozercan/tokenscope/apimodels"
	"github.com/sozercan/tokenscope/internal/analyzer"
	"github.com/sozercan/tokenscope/internal/handler"
)

func analyzeCmd() *cobra.Command {
	var (
		voice   bool
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "analyze <token_id>",
		Short: "Analyze one token and print the response body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate("analyze"); err != nil {
				return err
			}

			a, err := newAnalyzer(cfg, voice)
			if err != nil {
				return err
			}

			out := a.Analyze(cmd.Context(), args[0])
			resp, err := handler.Assemble(out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Body)

			if out.Kind != analyzer.OutcomeSuccess {
				return fmt.Errorf("analysis ended with %s (HTTP %d)", out.Kind, resp.StatusCode)
			}

			result, ok := out.Payload.(*apimodels.AnalysisResponse)
			if !ok || outFile == "" || result.AudioBase64 == "" {
				return nil
			}
			audio, err := base64.StdEncoding.DecodeString(result.AudioBase64)
			if err != nil {
				return fmt.Errorf("failed to decode audio: %w", err)
			}
			if err := os.WriteFile(outFile, audio, 0o644); err != nil {
				return fmt.Errorf("failed to write audio: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "audio written to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&voice, "voice", false, "also synthesize speech")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the decoded audio to this file")
	return cmd
}
