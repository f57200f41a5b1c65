package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/stormcast/internal/domain/scoring"
	"github.com/okian/stormcast/pkg/logger"
)

// AdminDependencies runs manual scoring.
type AdminDependencies interface {
	ScoreCheckpoint(ctx context.Context, stormID, label string) (scoring.PassResult, error)
}

// AdminHandler handles operator requests.
type AdminHandler struct {
	deps   AdminDependencies
	logger logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(deps AdminDependencies, l logger.Logger) *AdminHandler {
	return &AdminHandler{deps: deps, logger: l}
}

type scoreResponse struct {
	StormID    string `json:"stormId"`
	Checkpoint string `json:"checkpoint"`
	Candidates int    `json:"candidates"`
	Scored     int    `json:"scored"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	Awarded    int    `json:"badgesAwarded"`
	DurationMs int64  `json:"durationMs"`
}

// HandleScore handles POST /admin/score/{stormId}/{checkpoint} requests.
// Rows that failed individually are reported in the body, not as an error.
func (h *AdminHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	res, err := h.deps.ScoreCheckpoint(r.Context(), chi.URLParam(r, "stormId"), chi.URLParam(r, "checkpoint"))
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("api.admin_score", err))
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		StormID:    res.StormID,
		Checkpoint: res.Checkpoint,
		Candidates: res.Candidates,
		Scored:     res.Scored,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		Awarded:    res.Awarded,
		DurationMs: res.Duration.Milliseconds(),
	})
}
