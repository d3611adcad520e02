// Package api - Thin, deterministic HTTP layer over the tower engine.
// The API is only responsible for input ingestion, engine orchestration
// and output serialization. It never performs tower logic and holds no
// tower state: every request carries its own stack and receives back a
// fully consistent one.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lcalmvr/sub-assistant-sub001/core/quote"
	"github.com/lcalmvr/sub-assistant-sub001/internal/config"
	"github.com/lcalmvr/sub-assistant-sub001/internal/logging"
)

// Server is the API server
type Server struct {
	handler *Handler
	router  chi.Router
	version string
}

// NewServer creates a new API server
func NewServer(version string, cfg *config.Config) *Server {
	s := &Server{
		handler: NewHandler(cfg),
		version: version,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/tower/recalculate", s.handleRecalculate)
		r.Post("/tower/name", s.handleName)
		r.Post("/tower/validate", s.handleValidate)
		r.Post("/tower/layers/add", s.handleAddLayer)
		r.Post("/tower/layers/remove", s.handleRemoveLayer)
		r.Post("/tower/edit", s.handleEdit)
		r.Post("/associations/normalize", s.handleNormalize)
	})

	s.router = r
	return s
}

// Router exposes the route tree for embedding and tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the API on the given address.
func (s *Server) ListenAndServe(addr string) error {
	logging.Info("api server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.router)
}

// handleRecalculate handles POST /v1/tower/recalculate
func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req TowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	t, err := s.handler.recalculate(req.Tower)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	resp := s.handler.towerResponse(t)
	resp.Metadata = s.metadata(start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handleName handles POST /v1/tower/name
func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	var req TowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	t, err := s.handler.recalculate(req.Tower)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, map[string]string{"name": t.Name}, http.StatusOK)
}

// handleValidate handles POST /v1/tower/validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req TowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, s.handler.validate(req.Tower), http.StatusOK)
}

// handleAddLayer handles POST /v1/tower/layers/add
func (s *Server) handleAddLayer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req AddLayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	t, err := s.handler.addLayer(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	resp := s.handler.towerResponse(t)
	resp.Metadata = s.metadata(start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handleRemoveLayer handles POST /v1/tower/layers/remove
func (s *Server) handleRemoveLayer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req RemoveLayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	t, err := s.handler.removeLayer(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	resp := s.handler.towerResponse(t)
	resp.Metadata = s.metadata(start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handleEdit handles POST /v1/tower/edit
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req EditLayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	t, err := s.handler.editLayer(&req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	resp := s.handler.towerResponse(t)
	resp.Metadata = s.metadata(start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handleNormalize handles POST /v1/associations/normalize
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	var raw any
	if len(req.Raw) > 0 {
		if err := json.Unmarshal(req.Raw, &raw); err != nil {
			s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
			return
		}
	}

	ids, err := quote.NormalizeIDList(raw)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, NormalizeResponse{IDs: ids}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"version": s.version}, http.StatusOK)
}

func (s *Server) metadata(start time.Time) *ResponseMetadata {
	return &ResponseMetadata{
		RequestID:  uuid.NewString(),
		DurationMs: time.Since(start).Milliseconds(),
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encoding response", zap.Error(err))
	}
}

// writeError writes a uniform error envelope
func (s *Server) writeError(w http.ResponseWriter, code, details string, status int) {
	s.writeJSON(w, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	}, status)
}

// writeEngineError translates the engine error taxonomy
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	code, status := statusFor(err)
	s.writeError(w, code, err.Error(), status)
}
