package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, stormID string, limit int) ([]model.LeaderboardEntry, error)
	GlobalLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps   LeaderboardDependencies
	logger logger.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, l logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, logger: l}
}

// HandleStorm handles GET /leaderboard/{stormId}?limit=N requests.
func (h *LeaderboardHandler) HandleStorm(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	n, err := limitParam(r)
	if err != nil {
		fail(r.Context(), h.logger, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	entries, err := h.deps.Leaderboard(r.Context(), chi.URLParam(r, "stormId"), n)
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleGlobal handles GET /leaderboard/all-time/global?limit=N requests.
func (h *LeaderboardHandler) HandleGlobal(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_global_leaderboard"
	n, err := limitParam(r)
	if err != nil {
		fail(r.Context(), h.logger, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	entries, err := h.deps.GlobalLeaderboard(r.Context(), n)
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
