package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/miikama/game-lobby-REST-backend/internal/api/apierr"
	"github.com/miikama/game-lobby-REST-backend/internal/api/handler"
	"github.com/miikama/game-lobby-REST-backend/internal/api/request"
	"github.com/miikama/game-lobby-REST-backend/internal/middleware"
	"github.com/miikama/game-lobby-REST-backend/internal/services/membership"
	"github.com/miikama/game-lobby-REST-backend/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Coordinator *membership.Coordinator
	HubManager  *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	decoder := request.NewDecoder()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.Coordinator, decoder)
	gameHandler := handler.NewGameHandler(cfg.Coordinator, decoder)
	teamHandler := handler.NewTeamHandler(cfg.Coordinator, decoder)
	eventsHandler := handler.NewEventsHandler(cfg.Coordinator, cfg.HubManager)

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger, apierr.PanicHandler))
	r.Use(middleware.Logging(cfg.Logger))

	// Health
	r.HandleFunc("/", handler.Health).Methods(http.MethodGet)
	r.HandleFunc("/index", handler.Health).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// Players
	r.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	player := "/players/player{" + handler.VarPlayerID + ":[0-9]+}"
	r.HandleFunc(player, playerHandler.Get).Methods(http.MethodGet)
	r.HandleFunc(player, playerHandler.Rename).Methods(http.MethodPatch)

	// Games
	r.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	game := "/games/game{" + handler.VarGameID + ":[0-9]+}"
	r.HandleFunc(game, gameHandler.Get).Methods(http.MethodGet)
	r.HandleFunc(game, gameHandler.Join).Methods(http.MethodPut)
	r.HandleFunc(game, gameHandler.Leave).Methods(http.MethodPatch)
	r.HandleFunc(game, gameHandler.Delete).Methods(http.MethodDelete)
	r.HandleFunc(game+"/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Teams
	r.HandleFunc(game+"/teams", teamHandler.List).Methods(http.MethodGet)
	r.HandleFunc(game+"/teams", teamHandler.Create).Methods(http.MethodPost)
	team := game + "/teams/team{" + handler.VarTeamID + ":[0-9]+}"
	r.HandleFunc(team, teamHandler.Get).Methods(http.MethodGet)
	r.HandleFunc(team, teamHandler.Join).Methods(http.MethodPut)
	r.HandleFunc(team, teamHandler.Leave).Methods(http.MethodPatch)
	r.HandleFunc(team, teamHandler.Delete).Methods(http.MethodDelete)

	return r
}
