package cli

import (
	"github.com/spf13/cobra"

	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team commands",
	}

	cmd.AddCommand(newTeamListCmd())
	cmd.AddCommand(newTeamGetCmd())
	cmd.AddCommand(newTeamCreateCmd())
	cmd.AddCommand(newTeamJoinCmd())
	cmd.AddCommand(newTeamLeaveCmd())
	cmd.AddCommand(newTeamDeleteCmd())

	return cmd
}

func teamArgs(args []string) (gameID, teamID int64, err error) {
	if gameID, err = parseID("game", args[0]); err != nil {
		return 0, 0, err
	}
	if teamID, err = parseID("team", args[1]); err != nil {
		return 0, 0, err
	}
	return gameID, teamID, nil
}

func newTeamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <game>",
		Short: "List the teams of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}

			var result response.TeamsResponse
			if err := client.Get(cmd.Context(), teamsPath(gameID), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newTeamGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game> <team>",
		Short: "Show a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, teamID, err := teamArgs(args)
			if err != nil {
				return err
			}

			var result response.TeamEnvelope
			if err := client.Get(cmd.Context(), teamPath(gameID, teamID), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newTeamCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <game>",
		Short: "Create a team and join it (acting player must be in the game)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}
			creator, err := actingPlayerBody()
			if err != nil {
				return err
			}
			req := struct {
				playerBody
				Team nameRef `json:"team"`
			}{creator, nameRef{Name: name}}

			var result response.TeamEnvelope
			if err := client.Post(cmd.Context(), teamsPath(gameID), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name")

	return cmd
}

func newTeamJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game> <team>",
		Short: "Join a team in the acting player's game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, teamID, err := teamArgs(args)
			if err != nil {
				return err
			}
			req, err := actingPlayerBody()
			if err != nil {
				return err
			}

			var result response.TeamEnvelope
			if err := client.Put(cmd.Context(), teamPath(gameID, teamID), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newTeamLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <game> <team>",
		Short: "Leave a team; the owner leaving disbands it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, teamID, err := teamArgs(args)
			if err != nil {
				return err
			}
			id, err := cfg.ActingPlayer()
			if err != nil {
				return err
			}

			if err := client.Patch(cmd.Context(), teamPath(gameID, teamID), leaveBody{DelPlayer: idRef{ID: id}}, nil); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Left team")
			return nil
		},
	}
}

func newTeamDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game> <team>",
		Short: "Delete a team (owner only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, teamID, err := teamArgs(args)
			if err != nil {
				return err
			}
			req, err := actingPlayerBody()
			if err != nil {
				return err
			}

			if err := client.Delete(cmd.Context(), teamPath(gameID, teamID), req); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Team deleted")
			return nil
		},
	}
}
