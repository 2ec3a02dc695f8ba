// Package api exposes a backend.Backend over HTTP with the REST routes the
// game client expects.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/vovakirdan/bike-city/internal/backend"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8001"

const codeInvalidRequest = "invalid_request"

// Server serves the game API.
type Server struct {
	backend backend.Backend
	logger  *log.Logger
	router  chi.Router
}

// NewServer creates an API server for b. A nil logger discards output.
func NewServer(b backend.Backend, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		backend: b,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(allowAllOrigins)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/bicycles", s.handleBicycles)
		r.Get("/shops", s.handleShops)
		r.Get("/missions", s.handleMissions)

		r.Post("/player/create", s.handleCreatePlayer)
		r.Route("/player/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPlayer)
			r.Put("/position", s.handleSetPosition)
			r.Post("/purchase_bicycle", s.handlePurchaseBicycle)
			r.Post("/mission/start", s.handleStartMission)
			r.Post("/mission/complete", s.handleCompleteMission)
		})
	})

	return r
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("Stopping API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, backend.HealthResponse{Status: "ok", Message: "Bike City API is running"})
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := s.backend.CreatePlayer(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.CreatePlayerResponse{PlayerID: id, Message: "Player created successfully"})
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := s.backend.GetPlayer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusUnprocessableEntity, "x and y must be numbers", codeInvalidRequest)
		return
	}

	if err := s.backend.SetPlayerPosition(r.Context(), chi.URLParam(r, "id"), x, y); err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeMessage(w, "Position updated successfully")
}

func (s *Server) handlePurchaseBicycle(w http.ResponseWriter, r *http.Request) {
	bicycleID := r.URL.Query().Get("bicycle_id")
	if bicycleID == "" {
		writeError(w, http.StatusUnprocessableEntity, "bicycle_id is required", codeInvalidRequest)
		return
	}

	p, err := s.backend.PurchaseBicycle(r.Context(), chi.URLParam(r, "id"), bicycleID)
	if err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleStartMission(w http.ResponseWriter, r *http.Request) {
	missionID := r.URL.Query().Get("mission_id")
	if missionID == "" {
		writeError(w, http.StatusUnprocessableEntity, "mission_id is required", codeInvalidRequest)
		return
	}

	if err := s.backend.StartMission(r.Context(), chi.URLParam(r, "id"), missionID); err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeMessage(w, "Mission started successfully")
}

func (s *Server) handleCompleteMission(w http.ResponseWriter, r *http.Request) {
	missionID := r.URL.Query().Get("mission_id")
	if missionID == "" {
		writeError(w, http.StatusUnprocessableEntity, "mission_id is required", codeInvalidRequest)
		return
	}

	rewards, err := s.backend.CompleteMission(r.Context(), chi.URLParam(r, "id"), missionID)
	if err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, backend.CompleteMissionResponse{Message: "Mission completed successfully", Rewards: rewards})
}

func (s *Server) handleBicycles(w http.ResponseWriter, r *http.Request) {
	list, err := s.backend.ListBicycles(r.Context())
	if err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (s *Server) handleShops(w http.ResponseWriter, r *http.Request) {
	list, err := s.backend.ListShops(r.Context())
	if err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	list, err := s.backend.ListMissions(r.Context())
	if err != nil {
		s.writeBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

// writeBackendError maps a backend error onto a status code and wire code.
func (s *Server) writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	code := backend.ErrorCode(err)
	switch {
	case code == backend.CodeNotFound:
		writeError(w, http.StatusNotFound, backend.ErrNotFound.Error(), code)
	case backend.IsRuleViolation(err):
		writeError(w, http.StatusBadRequest, backend.ErrorForCode(code).Error(), code)
	default:
		s.logger.Error("backend call failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error", code)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func writeError(w http.ResponseWriter, status int, detail, code string) {
	writeJSON(w, status, backend.ErrorResponse{Detail: detail, Code: code})
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
