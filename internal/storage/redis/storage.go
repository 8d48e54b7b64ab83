package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
)

// ErrTxConflict is returned when a batch could not be committed because
// watched keys kept changing underneath it
var ErrTxConflict = errors.New("redis transaction conflict")

// Storage is a Redis-backed implementation of the storage interface.
// Records are JSON values; membership lookups are served from SET indexes
// of record keys that Apply maintains in the same transaction.
type Storage struct {
	client *redis.Client
	cfg    Config
	lease  *lease
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	l, err := acquireLease(ctx, client, cfg.LeaseTTL)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		lease:  l,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing).
// No lease is taken; the caller owns the keyspace.
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close releases the lease and closes the Redis connection
func (s *Storage) Close() error {
	var leaseErr error
	if s.lease != nil {
		leaseErr = s.lease.release()
	}
	return errors.Join(leaseErr, s.client.Close())
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextID(ctx context.Context, kind storage.Kind) (int64, error) {
	return s.client.Incr(ctx, sequenceKey(kind)).Result()
}

func (s *Storage) Apply(ctx context.Context, batch *storage.Batch) error {
	if batch.Empty() {
		return nil
	}
	if s.lease != nil && s.lease.lost.Load() {
		return ErrLeaseLost
	}

	games, err := marshalAll(batch.SaveGames)
	if err != nil {
		return err
	}
	teams, err := marshalAll(batch.SaveTeams)
	if err != nil {
		return err
	}
	players, err := marshalAll(batch.SavePlayers)
	if err != nil {
		return err
	}

	// Index maintenance depends on the stored player and team records, so
	// those keys are watched and re-read inside the transaction.
	watch := make([]string, 0, len(batch.SavePlayers)+len(batch.DeleteTeams))
	for _, p := range batch.SavePlayers {
		watch = append(watch, playerKey(p.ID))
	}
	for _, id := range batch.DeleteTeams {
		watch = append(watch, teamKey(id))
	}

	txf := func(tx *redis.Tx) error {
		previous := make(map[model.PlayerID]*model.Player, len(batch.SavePlayers))
		for _, p := range batch.SavePlayers {
			old, err := getRecord[model.Player](ctx, tx, playerKey(p.ID), model.ErrPlayerNotFound)
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			previous[p.ID] = old
		}

		deleted := make([]*model.Team, 0, len(batch.DeleteTeams))
		for _, id := range batch.DeleteTeams {
			team, err := getRecord[model.Team](ctx, tx, teamKey(id), model.ErrTeamNotFound)
			if errors.Is(err, model.ErrTeamNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			deleted = append(deleted, team)
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, g := range batch.SaveGames {
				key := gameKey(g.ID)
				pipe.Set(ctx, key, games[i], 0)
				pipe.SAdd(ctx, allIndexKey(storage.KindGame), key)
			}

			for i, t := range batch.SaveTeams {
				key := teamKey(t.ID)
				pipe.Set(ctx, key, teams[i], 0)
				pipe.SAdd(ctx, allIndexKey(storage.KindTeam), key)
				pipe.SAdd(ctx, gameTeamsIndexKey(t.GameID), key)
			}

			for i, p := range batch.SavePlayers {
				key := playerKey(p.ID)
				pipe.Set(ctx, key, players[i], 0)
				pipe.SAdd(ctx, allIndexKey(storage.KindPlayer), key)

				if old := previous[p.ID]; old != nil {
					if old.GameID != nil {
						pipe.SRem(ctx, gamePlayersIndexKey(*old.GameID), key)
					}
					if old.TeamID != nil {
						pipe.SRem(ctx, teamPlayersIndexKey(*old.TeamID), key)
					}
				}
				if p.GameID != nil {
					pipe.SAdd(ctx, gamePlayersIndexKey(*p.GameID), key)
				}
				if p.TeamID != nil {
					pipe.SAdd(ctx, teamPlayersIndexKey(*p.TeamID), key)
				}
			}

			for _, t := range deleted {
				key := teamKey(t.ID)
				pipe.Del(ctx, key, teamPlayersIndexKey(t.ID))
				pipe.SRem(ctx, allIndexKey(storage.KindTeam), key)
				pipe.SRem(ctx, gameTeamsIndexKey(t.GameID), key)
			}

			for _, id := range batch.DeleteGames {
				key := gameKey(id)
				pipe.Del(ctx, key, gamePlayersIndexKey(id), gameTeamsIndexKey(id))
				pipe.SRem(ctx, allIndexKey(storage.KindGame), key)
			}
			return nil
		})
		return err
	}

	retries := s.cfg.MaxTxRetries
	if retries < 1 {
		retries = 1
	}
	for attempt := 0; attempt < retries; attempt++ {
		err := s.client.Watch(ctx, txf, watch...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return ErrTxConflict
}

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return getRecord[model.Player](ctx, s.client, playerKey(id), model.ErrPlayerNotFound)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.listPlayers(ctx, allIndexKey(storage.KindPlayer))
}

func (s *Storage) ListPlayersInGame(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	return s.listPlayers(ctx, gamePlayersIndexKey(gameID))
}

func (s *Storage) ListPlayersInTeam(ctx context.Context, teamID model.TeamID) ([]*model.Player, error) {
	return s.listPlayers(ctx, teamPlayersIndexKey(teamID))
}

func (s *Storage) listPlayers(ctx context.Context, indexKey string) ([]*model.Player, error) {
	players, err := listRecords[model.Player](ctx, s.client, indexKey)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

// Game operations

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return getRecord[model.Game](ctx, s.client, gameKey(id), model.ErrGameNotFound)
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	games, err := listRecords[model.Game](ctx, s.client, allIndexKey(storage.KindGame))
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

// Team operations

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return getRecord[model.Team](ctx, s.client, teamKey(id), model.ErrTeamNotFound)
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.listTeams(ctx, allIndexKey(storage.KindTeam))
}

func (s *Storage) ListTeamsInGame(ctx context.Context, gameID model.GameID) ([]*model.Team, error) {
	return s.listTeams(ctx, gameTeamsIndexKey(gameID))
}

func (s *Storage) listTeams(ctx context.Context, indexKey string) ([]*model.Team, error) {
	teams, err := listRecords[model.Team](ctx, s.client, indexKey)
	if err != nil {
		return nil, err
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

// Helpers

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getRecord[T any](ctx context.Context, c getter, key string, notFound error) (*T, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound
		}
		return nil, err
	}

	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &record, nil
}

func listRecords[T any](ctx context.Context, c redis.Cmdable, indexKey string) ([]*T, error) {
	// Get all record keys from the index
	keys, err := c.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*T{}, nil
	}

	values, err := c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*T, 0, len(values))
	for i, val := range values {
		if val == nil {
			continue
		}
		str, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type %T for %s", val, keys[i])
		}
		var record T
		if err := json.Unmarshal([]byte(str), &record); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		records = append(records, &record)
	}
	return records, nil
}

func marshalAll[T any](records []*T) ([][]byte, error) {
	out := make([][]byte, len(records))
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}
