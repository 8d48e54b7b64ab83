package cli

import (
	"github.com/spf13/cobra"

	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameLeaveCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GamesResponse
			if err := client.Get(cmd.Context(), "/games", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game>",
		Short: "Show a game with its players and teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}

			var result response.GameEnvelope
			if err := client.Get(cmd.Context(), gamePath(gameID), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game owned by the acting player",
		Long: `Create a game owned by the acting player.

The owner is not a member of the new game; use 'game join' to enter it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := actingPlayerBody()
			if err != nil {
				return err
			}
			req := struct {
				playerBody
				Game nameRef `json:"game"`
			}{owner, nameRef{Name: name}}

			var result response.GameEnvelope
			if err := client.Post(cmd.Context(), "/games", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (game<id> if empty)")

	return cmd
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game>",
		Short: "Join a game, leaving any current game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			req, err := actingPlayerBody()
			if err != nil {
				return err
			}

			var result response.GameEnvelope
			if err := client.Put(cmd.Context(), gamePath(gameID), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <game>",
		Short: "Leave a game",
		Long: `Leave a game. A team owned by the acting player is disbanded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			id, err := cfg.ActingPlayer()
			if err != nil {
				return err
			}

			if err := client.Patch(cmd.Context(), gamePath(gameID), leaveBody{DelPlayer: idRef{ID: id}}, nil); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Left game")
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game>",
		Short: "Delete a game (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			req, err := actingPlayerBody()
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), gamePath(gameID), req); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game deleted")
			return nil
		},
	}
}
