// Package membership implements the player, game and team lifecycle.
//
// Every transition runs under one coordinator-wide lock: all preconditions
// are checked against storage first, then the full change (including any
// disband cascade) is committed as a single storage batch. A rejected
// transition therefore writes nothing.
package membership

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/miikama/game-lobby-REST-backend/internal/dependencies/clock"
	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// Publisher receives membership events after they are committed
type Publisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// Coordinator owns the membership state machine for players, games and teams
type Coordinator struct {
	mu      sync.Mutex
	storage storage.Storage
	clock   clock.Clock
	events  Publisher
	logger  *slog.Logger
}

// NewCoordinator creates a new Coordinator. events may be nil.
func NewCoordinator(
	storage storage.Storage,
	clock clock.Clock,
	events Publisher,
	logger *slog.Logger,
) *Coordinator {
	if events == nil {
		events = nopPublisher{}
	}
	return &Coordinator{
		storage: storage,
		clock:   clock,
		events:  events,
		logger:  logger.With(slog.String("component", "membership")),
	}
}

// change stages the writes and events of one transition.
// Players are staged by id so a cascade that touches the same player twice
// edits a single copy.
type change struct {
	now     time.Time
	batch   storage.Batch
	players map[model.PlayerID]*model.Player
	order   []model.PlayerID
	events  []model.Event
}

func (c *Coordinator) newChange() *change {
	return &change{
		now:     c.clock.Now(),
		players: make(map[model.PlayerID]*model.Player),
	}
}

// stage returns the staged copy of p, staging p itself if it is new
func (ch *change) stage(p *model.Player) *model.Player {
	if staged, ok := ch.players[p.ID]; ok {
		return staged
	}
	ch.players[p.ID] = p
	ch.order = append(ch.order, p.ID)
	return p
}

func (ch *change) emit(typ model.EventType, gameID model.GameID, teamID *model.TeamID, playerID model.PlayerID) {
	ev := model.Event{
		Type:      typ,
		Timestamp: ch.now,
		GameID:    gameID,
		PlayerID:  playerID,
	}
	if teamID != nil {
		t := *teamID
		ev.TeamID = &t
	}
	ch.events = append(ch.events, ev)
}

// commit applies the staged change atomically, then publishes its events
func (c *Coordinator) commit(ctx context.Context, ch *change) error {
	for _, id := range ch.order {
		ch.batch.SavePlayers = append(ch.batch.SavePlayers, ch.players[id])
	}
	if err := c.storage.Apply(ctx, &ch.batch); err != nil {
		return fmt.Errorf("apply membership change: %w", err)
	}
	for _, ev := range ch.events {
		c.logger.Debug("membership event",
			slog.String("type", string(ev.Type)),
			slog.String("game_id", ev.GameID.String()),
			slog.String("player_id", ev.PlayerID.String()))
		c.events.Publish(ev)
	}
	return nil
}

// nextID allocates an id from the store sequence for kind
func (c *Coordinator) nextID(ctx context.Context, kind storage.Kind) (int64, error) {
	id, err := c.storage.NextID(ctx, kind)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", kind, err)
	}
	return id, nil
}
