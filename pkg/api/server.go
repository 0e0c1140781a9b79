// Package api exposes the reveal service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/rs/cors"

	"github.com/fadedpez/cardvault/internal/logging"
	"github.com/fadedpez/cardvault/internal/types"
	"github.com/fadedpez/cardvault/pkg/entities"
	"github.com/fadedpez/cardvault/pkg/repositories/showdown"
	"github.com/fadedpez/cardvault/pkg/services/reveal"
)

const (
	maxBodyBytes            = 1 << 20
	defaultDisagreementPage = 50
)

// Options configures the HTTP surface
type Options struct {
	// CORSOrigins lists allowed browser origins. Empty allows any origin.
	CORSOrigins []string
	// Showdowns stores evaluated showdowns. When nil the showdown routes are
	// not registered and reveal/all results are not persisted.
	Showdowns showdown.Repository
	// Registry collects route metrics. Defaults to a fresh registry.
	Registry metrics.Registry
}

// Server routes HTTP requests to the reveal service
type Server struct {
	reveals   reveal.RevealService
	showdowns showdown.Repository
	registry  metrics.Registry
	logger    *logging.Logger
	handler   http.Handler
}

// NewServer creates a new API server
func NewServer(reveals reveal.RevealService, options Options) *Server {
	s := &Server{
		reveals:   reveals,
		showdowns: options.Showdowns,
		registry:  options.Registry,
		logger:    logging.Default,
	}
	if s.registry == nil {
		s.registry = metrics.NewRegistry()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /debug/metrics", s.handleMetrics)
	mux.HandleFunc("POST /api/reveal/community", s.instrument("reveal.community", s.handleRevealCommunity))
	mux.HandleFunc("POST /api/reveal/private", s.instrument("reveal.private", s.handleRevealPrivate))
	mux.HandleFunc("POST /api/reveal/all", s.instrument("reveal.all", s.handleRevealAll))
	mux.HandleFunc("POST /api/mapping/generate", s.instrument("mapping.generate", s.handleGenerateMapping))
	if s.showdowns != nil {
		mux.HandleFunc("GET /api/showdowns/disagreements", s.instrument("showdowns.disagreements", s.handleDisagreements))
		mux.HandleFunc("GET /api/showdowns/{gameId}", s.instrument("showdowns.get", s.handleGetShowdown))
	}

	s.handler = cors.New(cors.Options{
		AllowedOrigins: options.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler(mux)

	return s
}

// SetLogger replaces the server logger
func (s *Server) SetLogger(logger *logging.Logger) {
	s.logger = logger
}

// Handler returns the root handler with CORS applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleRevealCommunity(w http.ResponseWriter, r *http.Request) {
	var req CommunityRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.GameID == nil {
		s.writeError(w, types.NewError(types.ErrInvalidRequest, "gameId is required"))
		return
	}

	cards, err := s.reveals.RevealCommunityCards(r.Context(), uint64(*req.GameID), req.Identifiers)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, CardsResponse{Cards: cards})
}

func (s *Server) handleRevealPrivate(w http.ResponseWriter, r *http.Request) {
	var req PrivateRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.normalize()
	if req.GameID == nil || req.PublicKey == "" || req.Signature == "" {
		s.writeError(w, types.NewError(types.ErrInvalidRequest, "gameId, publicKey and signature are required"))
		return
	}

	proof := reveal.Proof{Message: req.Message, Signature: req.Signature}
	cards, err := s.reveals.RevealPlayerHand(r.Context(), uint64(*req.GameID), req.PublicKey, proof)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, CardsResponse{Cards: cards})
}

func (s *Server) handleRevealAll(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.GameID == nil {
		s.writeError(w, types.NewError(types.ErrInvalidRequest, "gameId is required"))
		return
	}

	record, err := s.reveals.RevealShowdown(r.Context(), uint64(*req.GameID))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.showdowns != nil {
		if err := s.showdowns.SaveShowdown(r.Context(), record); err != nil {
			// The evaluation is still valid, only the archive copy is missing
			s.logger.Warn("Failed to archive showdown of game %d: %v", record.GameID, err)
		}
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleGenerateMapping(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.GameID == nil {
		s.writeError(w, types.NewError(types.ErrInvalidRequest, "gameId is required"))
		return
	}

	created, err := s.reveals.GenerateMapping(r.Context(), uint64(*req.GameID))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, GenerateResponse{GameID: uint64(*req.GameID), Created: created})
}

func (s *Server) handleGetShowdown(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseUint(r.PathValue("gameId"), 10, 64)
	if err != nil {
		s.writeError(w, types.Errorf(types.ErrInvalidRequest, "invalid game id %q", r.PathValue("gameId")))
		return
	}

	record, err := s.showdowns.GetShowdown(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, showdown.ErrShowdownNotFound) {
			s.writeError(w, types.Errorf(types.ErrGameNotFound, "no showdown recorded for game %d", gameID))
			return
		}
		s.writeError(w, types.WrapError(types.ErrInternal, "failed to load showdown", err))
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDisagreements(w http.ResponseWriter, r *http.Request) {
	limit := defaultDisagreementPage
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, types.Errorf(types.ErrInvalidRequest, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	records, err := s.showdowns.ListDisagreements(r.Context(), limit)
	if err != nil {
		s.writeError(w, types.WrapError(types.ErrInternal, "failed to list disagreements", err))
		return
	}
	if records == nil {
		records = []*entities.ShowdownRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

// decode reads a JSON body, writing an InvalidRequest envelope on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		s.writeError(w, types.WrapError(types.ErrInvalidRequest, "malformed request body", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response: %v", err)
	}
}
