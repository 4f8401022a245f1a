package acp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"assistant-agents/internal/common/logger"
)

// AgentFunc handles one run of a named agent.
type AgentFunc func(ctx context.Context, input []Message) ([]Message, error)

// Server exposes registered agents over HTTP.
type Server struct {
	agents map[string]AgentFunc
	logger logger.Logger
	mux    *http.ServeMux
}

func NewServer(log logger.Logger) *Server {
	s := &Server{
		agents: make(map[string]AgentFunc),
		logger: log,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/runs", s.handleRun)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Register binds an agent name to its handler. Registration happens once
// at startup, before ListenAndServe.
func (s *Server) Register(name string, fn AgentFunc) {
	s.agents[name] = fn
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	s.logger.Info("agent server listening", map[string]interface{}{"address": addr})
	return srv.ListenAndServe()
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, RunResponse{Error: "invalid run request: " + err.Error()})
		return
	}

	fn, ok := s.agents[req.Agent]
	if !ok {
		s.writeJSON(w, http.StatusNotFound, RunResponse{Error: "unknown agent: " + req.Agent})
		return
	}

	s.logger.Info("running agent", map[string]interface{}{
		"agent":    req.Agent,
		"messages": len(req.Input),
	})

	output, err := fn(r.Context(), req.Input)
	if err != nil {
		s.logger.Error("agent run failed", map[string]interface{}{
			"agent": req.Agent,
			"error": err.Error(),
		})
		s.writeJSON(w, http.StatusInternalServerError, RunResponse{Error: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, RunResponse{Output: output})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to write response", map[string]interface{}{"error": err.Error()})
	}
}
