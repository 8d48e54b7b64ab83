package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerRenameCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.PlayersResponse
			if err := client.Get(cmd.Context(), "/players", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("player", args[0])
			if err != nil {
				return err
			}

			var result response.PlayerEnvelope
			if err := client.Get(cmd.Context(), playerPath(id), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayerCreateCmd() *cobra.Command {
	var (
		name string
		save bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]nameRef{"player": {Name: name}}

			var result response.PlayerEnvelope
			if err := client.Post(cmd.Context(), "/players", req, &result); err != nil {
				return err
			}

			if save {
				if err := cfg.SavePlayer(int64(result.Player.ID)); err != nil {
					return fmt.Errorf("failed to save player: %w", err)
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (server default if empty)")
	cmd.Flags().BoolVar(&save, "save", false, "Use this player for later commands")

	return cmd
}

func newPlayerRenameCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <id>",
		Short: "Rename a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("player", args[0])
			if err != nil {
				return err
			}

			req := map[string]nameRef{"player": {Name: name}}

			var result response.PlayerEnvelope
			if err := client.Patch(cmd.Context(), playerPath(id), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
