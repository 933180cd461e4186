// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/specdraft/specdraft/internal/common"
	"github.com/specdraft/specdraft/internal/workflow"
)

type Server struct {
	router  chi.Router
	manager *workflow.Manager
}

func NewServer(manager *workflow.Manager) *Server {
	srv := &Server{
		router:  chi.NewRouter(),
		manager: manager,
	}
	srv.routes()
	common.Logger().Info("api: server ready")
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":   true,
			"date": time.Now().UTC().Format("2006-01-02"),
		})
	})

	s.router.Post("/v1/generate", s.handleGenerate)
	s.router.Get("/v1/generate/{jobID}", s.handleJob)
	s.router.Post("/v1/generate/direct", s.handleGenerateDirect)
	s.router.Get("/v1/jobs", s.handleJobs)
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
