// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/ghostboard/internal/app"
	"github.com/okian/ghostboard/internal/domain/types"
	"github.com/okian/ghostboard/pkg/logger"
)

const defaultMaxLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	BoardDependencies
	RankDependencies
	CohortDependencies
}

// Entry mirrors the row shape returned by board queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	cohortHandler      *CohortHandler

	limiter *ipLimiter
	logger  logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxLimit  int
	rateRPS   float64
	rateBurst int
	logger    logger.Logger
}

// WithMaxLimit caps the limit query parameter on /leaderboard.
func WithMaxLimit(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithRateLimit enables a per-client token bucket. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(c *serverConfig) {
		c.rateRPS = rps
		c.rateBurst = burst
	}
}

// WithLogger logs server-side failures.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = l
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps, cfg.maxLimit),
		rankHandler:        NewRankHandler(deps),
		cohortHandler:      NewCohortHandler(deps),
		logger:             cfg.logger,
	}
	if cfg.rateRPS > 0 {
		s.limiter = newIPLimiter(cfg.rateRPS, cfg.rateBurst)
	}
	s.leaderboardHandler.logger = cfg.logger
	s.rankHandler.logger = cfg.logger
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.Handle("/healthz", s.chain(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.chain(s.healthHandler.HandleMetrics, "metrics"))
	mux.Handle("/stats", s.chain(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/leaderboard", s.chain(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.Handle("/rank/", s.chain(s.rankHandler.HandleGetRank, "rank"))
	mux.Handle("/cohort", s.chain(s.cohortHandler.HandleGetCohort, "cohort"))
	mux.Handle("/", s.chain(handleNotFound, "not_found"))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
}

// chain applies request id, metrics and rate limiting, outermost first.
// Rejected requests are still counted by status.
func (s *Server) chain(h http.HandlerFunc, endpoint string) http.Handler {
	next := h
	if s.limiter != nil {
		next = rateLimitMiddleware(next, s.limiter)
	}
	return RequestIDMiddleware(MetricsMiddleware(next, endpoint))
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

// writeServiceError maps service failures to HTTP statuses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		if l != nil {
			l.Error(ctx, "request failed", logger.String("requestID", RequestID(ctx)), logger.Error(err))
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// intParam reads an optional non-negative integer query parameter.
// A missing parameter yields 0.
func intParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, ErrBadRequest
	}
	return n, nil
}
