package api

import (
	"context"
	"net/http"

	service "github.com/okian/stormcast/internal/app"
	"github.com/okian/stormcast/pkg/logger"
)

// GameDependencies exposes the storm in play.
type GameDependencies interface {
	GameState(ctx context.Context) (service.GameState, error)
	Storms(ctx context.Context) []service.StormSummary
}

// GameHandler handles game state requests.
type GameHandler struct {
	deps   GameDependencies
	logger logger.Logger
}

// NewGameHandler creates a new game handler.
func NewGameHandler(deps GameDependencies, l logger.Logger) *GameHandler {
	return &GameHandler{deps: deps, logger: l}
}

// HandleGameState handles GET /game/state requests.
func (h *GameHandler) HandleGameState(w http.ResponseWriter, r *http.Request) {
	gs, err := h.deps.GameState(r.Context())
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("api.game_state", err))
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

// HandleStorms handles GET /storms requests.
func (h *GameHandler) HandleStorms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Storms(r.Context()))
}
