package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <game>",
		Short: "Stream membership events from a game",
		Long: `Follow a game's membership changes as they happen.

Events include:
  - player_joined / player_left: game membership changed
  - team_created / team_joined / team_left: team membership changed
  - team_disbanded: a team was removed
  - game_deleted: the game is gone; the stream ends

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseID("game", args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return streamEvents(ctx, cmd.OutOrStdout(), gameID, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent is one event as printed by --json
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, gameID int64, jsonOutput bool) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + gamePath(gameID) + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// The default client has no timeout, which a stream needs
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return decodeAPIError(resp.StatusCode, body)
	}

	if !jsonOutput {
		fmt.Fprintf(w, "Connected to game %d\n", gameID)
	}

	frames := newFrameReader(resp.Body)
	for {
		name, data, ok := frames.next()
		if !ok {
			break
		}
		printEvent(w, name, data, jsonOutput)
		if name == string(model.EventGameDeleted) {
			break
		}
	}

	if err := frames.err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

// frameReader splits an SSE body into named events. Comment lines such as
// keepalives and frames without an event name are skipped.
type frameReader struct {
	sc *bufio.Scanner
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{sc: bufio.NewScanner(r)}
}

func (f *frameReader) next() (name, data string, ok bool) {
	var lines []string
	for f.sc.Scan() {
		line := f.sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			lines = append(lines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if name != "" {
				return name, strings.Join(lines, "\n"), true
			}
			lines = nil
		}
	}
	return "", "", false
}

func (f *frameReader) err() error {
	return f.sc.Err()
}

func printEvent(w io.Writer, name, data string, jsonOutput bool) {
	var ev model.Event
	parsed := json.Unmarshal([]byte(data), &ev) == nil && ev.Type != ""

	at := time.Now()
	if parsed && !ev.Timestamp.IsZero() {
		at = ev.Timestamp
	}

	if jsonOutput {
		line, _ := json.Marshal(SSEEvent{Time: at, Event: name, Data: data})
		fmt.Fprintln(w, string(line))
		return
	}

	summary := strings.ReplaceAll(data, "\n", " ")
	if parsed {
		summary = describeEvent(ev)
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", at.Local().Format("15:04:05"), name, summary)
}

func describeEvent(ev model.Event) string {
	var team int64
	if ev.TeamID != nil {
		team = int64(*ev.TeamID)
	}
	switch ev.Type {
	case model.EventPlayerJoined:
		return fmt.Sprintf("player %d joined", ev.PlayerID)
	case model.EventPlayerLeft:
		return fmt.Sprintf("player %d left", ev.PlayerID)
	case model.EventTeamCreated:
		return fmt.Sprintf("player %d created team %d", ev.PlayerID, team)
	case model.EventTeamJoined:
		return fmt.Sprintf("player %d joined team %d", ev.PlayerID, team)
	case model.EventTeamLeft:
		return fmt.Sprintf("player %d left team %d", ev.PlayerID, team)
	case model.EventTeamDisbanded:
		return fmt.Sprintf("team %d disbanded", team)
	case model.EventGameDeleted:
		return fmt.Sprintf("game %d deleted", ev.GameID)
	default:
		return string(ev.Type)
	}
}
