package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/stormcast/internal/domain/badges"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
)

// UsersDependencies defines per-user reads and the badge catalog.
type UsersDependencies interface {
	UserStats(ctx context.Context, username string) (model.UserStats, error)
	UserPredictions(ctx context.Context, username string) ([]model.Prediction, error)
	UserBadges(ctx context.Context, username string) ([]model.UserBadge, error)
	BadgeDefinitions(ctx context.Context) ([]model.BadgeDefinition, error)
	BadgeProgress(ctx context.Context, username string) ([]badges.Progress, error)
}

// UsersHandler handles user and badge requests.
type UsersHandler struct {
	deps   UsersDependencies
	logger logger.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UsersDependencies, l logger.Logger) *UsersHandler {
	return &UsersHandler{deps: deps, logger: l}
}

// respond writes v, or err mapped to its status.
func respond[T any](h *UsersHandler, w http.ResponseWriter, r *http.Request, op string, v T, err error) {
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HandleStats handles GET /user/{username}/stats requests.
func (h *UsersHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.UserStats(r.Context(), chi.URLParam(r, "username"))
	respond(h, w, r, "api.user_stats", stats, err)
}

// HandlePredictions handles GET /user/{username}/predictions requests.
func (h *UsersHandler) HandlePredictions(w http.ResponseWriter, r *http.Request) {
	preds, err := h.deps.UserPredictions(r.Context(), chi.URLParam(r, "username"))
	respond(h, w, r, "api.user_predictions", preds, err)
}

// HandleBadges handles GET /user/{username}/badges requests.
func (h *UsersHandler) HandleBadges(w http.ResponseWriter, r *http.Request) {
	held, err := h.deps.UserBadges(r.Context(), chi.URLParam(r, "username"))
	respond(h, w, r, "api.user_badges", held, err)
}

// HandleBadgeProgress handles GET /user/{username}/badge-progress requests.
func (h *UsersHandler) HandleBadgeProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.deps.BadgeProgress(r.Context(), chi.URLParam(r, "username"))
	respond(h, w, r, "api.badge_progress", progress, err)
}

// HandleBadgeDefinitions handles GET /badges/definitions requests.
func (h *UsersHandler) HandleBadgeDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.deps.BadgeDefinitions(r.Context())
	respond(h, w, r, "api.badge_definitions", defs, err)
}
