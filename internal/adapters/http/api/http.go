// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	service "github.com/okian/stormcast/internal/app"
	"github.com/okian/stormcast/internal/domain/badges"
	"github.com/okian/stormcast/internal/domain/model"
	"github.com/okian/stormcast/internal/domain/scoring"
	"github.com/okian/stormcast/pkg/logger"
)

const defaultRequestTimeout = 30 * time.Second

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	SubmitPrediction(ctx context.Context, in service.SubmitInput) (model.Prediction, error)
	GameState(ctx context.Context) (service.GameState, error)
	Storms(ctx context.Context) []service.StormSummary

	Leaderboard(ctx context.Context, stormID string, limit int) ([]model.LeaderboardEntry, error)
	GlobalLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)

	UserStats(ctx context.Context, username string) (model.UserStats, error)
	UserPredictions(ctx context.Context, username string) ([]model.Prediction, error)
	UserBadges(ctx context.Context, username string) ([]model.UserBadge, error)
	BadgeDefinitions(ctx context.Context) ([]model.BadgeDefinition, error)
	BadgeProgress(ctx context.Context, username string) ([]badges.Progress, error)

	ScoreCheckpoint(ctx context.Context, stormID, label string) (scoring.PassResult, error)
	Health(ctx context.Context) service.Health
}

// Server wires HTTP routes for the game API.
type Server struct {
	healthHandler      *HealthHandler
	predictionsHandler *PredictionsHandler
	gameHandler        *GameHandler
	leaderboardHandler *LeaderboardHandler
	usersHandler       *UsersHandler
	adminHandler       *AdminHandler

	timeout time.Duration
	logger  logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithRequestTimeout bounds each request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		timeout: defaultRequestTimeout,
		logger:  logger.Get().Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler(deps)
	s.predictionsHandler = NewPredictionsHandler(deps, s.logger)
	s.gameHandler = NewGameHandler(deps, s.logger)
	s.leaderboardHandler = NewLeaderboardHandler(deps, s.logger)
	s.usersHandler = NewUsersHandler(deps, s.logger)
	s.adminHandler = NewAdminHandler(deps, s.logger)
	return s
}

// Router returns a chi router with the base middleware stack and every
// route registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(s.timeout))
	s.Register(r)
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)

	r.Post("/predictions", MetricsMiddleware(s.predictionsHandler.HandlePostPrediction, "predictions"))
	r.Get("/game/state", MetricsMiddleware(s.gameHandler.HandleGameState, "game_state"))
	r.Get("/storms", MetricsMiddleware(s.gameHandler.HandleStorms, "storms"))

	r.Get("/leaderboard/all-time/global", MetricsMiddleware(s.leaderboardHandler.HandleGlobal, "leaderboard_global"))
	r.Get("/leaderboard/{stormId}", MetricsMiddleware(s.leaderboardHandler.HandleStorm, "leaderboard_storm"))

	r.Route("/user/{username}", func(u chi.Router) {
		u.Get("/stats", MetricsMiddleware(s.usersHandler.HandleStats, "user_stats"))
		u.Get("/predictions", MetricsMiddleware(s.usersHandler.HandlePredictions, "user_predictions"))
		u.Get("/badges", MetricsMiddleware(s.usersHandler.HandleBadges, "user_badges"))
		u.Get("/badge-progress", MetricsMiddleware(s.usersHandler.HandleBadgeProgress, "user_badge_progress"))
	})
	r.Get("/badges/definitions", MetricsMiddleware(s.usersHandler.HandleBadgeDefinitions, "badge_definitions"))

	r.Post("/admin/score/{stormId}/{checkpoint}", MetricsMiddleware(s.adminHandler.HandleScore, "admin_score"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// fail writes err with the status its kind maps to. Server-side failures
// are logged; client errors are not.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed",
			logger.Int("status", status),
			logger.String("code", code),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}

// limitParam reads ?limit; absent means zero, which the service treats
// as the maximum.
func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrBadRequest
	}
	return n, nil
}
