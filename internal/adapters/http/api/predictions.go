package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/stormcast/internal/app"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/pkg/logger"
)

const maxBodyBytes = 1 << 16

// PredictionsDependencies accepts forecasts.
type PredictionsDependencies interface {
	SubmitPrediction(ctx context.Context, in service.SubmitInput) (model.Prediction, error)
}

// PredictionsHandler handles forecast submissions.
type PredictionsHandler struct {
	deps   PredictionsDependencies
	logger logger.Logger
}

// NewPredictionsHandler creates a new predictions handler.
func NewPredictionsHandler(deps PredictionsDependencies, l logger.Logger) *PredictionsHandler {
	return &PredictionsHandler{deps: deps, logger: l}
}

// HandlePostPrediction handles POST /predictions requests.
func (h *PredictionsHandler) HandlePostPrediction(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_prediction"

	var in service.SubmitInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		fail(r.Context(), h.logger, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	p, err := h.deps.SubmitPrediction(r.Context(), in)
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}
