package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/miikama/game-lobby-REST-backend/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.PlayerEnvelope:
		o.printPlayer(v.Player)
	case response.PlayersResponse:
		for _, p := range v.Players {
			o.printPlayer(p.Player)
		}
	case response.GameEnvelope:
		o.printGame(v.Game)
	case response.GamesResponse:
		for i, g := range v.Games {
			if i > 0 {
				fmt.Fprintln(o.w)
			}
			o.printGame(g.Game)
		}
	case response.TeamEnvelope:
		o.printTeam(v.Team, "")
	case response.TeamsResponse:
		for _, t := range v.Teams {
			o.printTeam(t.Team, "")
		}
	case response.StatusResponse:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	fmt.Fprintf(o.w, "Player: %s (%d)\n", p.Name, p.ID)
}

func ownerName(owner *response.PlayerEnvelope) string {
	if owner == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", owner.Player.Name, owner.Player.ID)
}

func (o *Output) printGame(g response.Game) {
	fmt.Fprintf(o.w, "Game: %s (%d)\n", g.Name, g.ID)
	fmt.Fprintf(o.w, "Owner: %s\n", ownerName(g.Owner))
	fmt.Fprintf(o.w, "Created: %s\n", g.CreatedTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(o.w, "Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		fmt.Fprintf(o.w, "  - %s (%d)\n", p.Player.Name, p.Player.ID)
	}
	fmt.Fprintf(o.w, "Teams (%d):\n", len(g.Teams))
	for _, t := range g.Teams {
		o.printTeam(t.Team, "  ")
	}
}

func (o *Output) printTeam(t response.Team, indent string) {
	fmt.Fprintf(o.w, "%sTeam: %s (%d) in game %d, owner %s\n", indent, t.Name, t.ID, t.GameID, ownerName(t.Owner))
	for _, p := range t.Players {
		fmt.Fprintf(o.w, "%s  - %s (%d)\n", indent, p.Player.Name, p.Player.ID)
	}
}
