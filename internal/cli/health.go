package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the lobby server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.StatusResponse
			if err := client.Get(cmd.Context(), "/health", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			if result.Status != "ok" {
				return fmt.Errorf("server at %s reports status %q", cfg.ServerURL, result.Status)
			}
			return nil
		},
	}
}
