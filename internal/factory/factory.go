package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/miikama/game-lobby-REST-backend/internal/config"
	"github.com/miikama/game-lobby-REST-backend/internal/dependencies/clock"
	"github.com/miikama/game-lobby-REST-backend/internal/services/membership"
	"github.com/miikama/game-lobby-REST-backend/internal/sse"
	"github.com/miikama/game-lobby-REST-backend/internal/storage"
	"github.com/miikama/game-lobby-REST-backend/internal/storage/memory"
	pgstorage "github.com/miikama/game-lobby-REST-backend/internal/storage/postgres"
	redisstorage "github.com/miikama/game-lobby-REST-backend/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = config.StorageMemory
	StorageTypeRedis    = config.StorageRedis
	StorageTypePostgres = config.StoragePostgres
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Clock   clock.Clock

	Coordinator *membership.Coordinator
	HubManager  *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig is required if StorageType is "redis"
	RedisConfig *redisstorage.Config
	// PostgresConfig is required if StorageType is "postgres"
	PostgresConfig *pgstorage.Config
}

// ConfigFrom builds a factory config from loaded server configuration
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	out := Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
	}
	switch cfg.StorageType {
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		out.RedisConfig = &redisCfg
	case StorageTypePostgres:
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.DSN = cfg.DatabaseURL
		out.PostgresConfig = &pgCfg
	}
	return out
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("storage ready", slog.String("type", storageType(cfg)))

	return newWithDependencies(store, clock.New(), logger), nil
}

func storageType(cfg Config) string {
	if cfg.StorageType == "" {
		return StorageTypeMemory
	}
	return cfg.StorageType
}

func newStorage(cfg Config) (storage.Storage, error) {
	switch storageType(cfg) {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return store, nil
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		return pgstorage.New(*cfg.PostgresConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis or postgres", cfg.StorageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	coordinator := membership.NewCoordinator(store, clk, hubManager, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Coordinator: coordinator,
		HubManager:  hubManager,
	}
}

// Close releases the event hubs and the storage connection
func (a *App) Close() error {
	a.HubManager.Close()
	return a.Storage.Close()
}
