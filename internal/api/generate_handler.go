// File path: internal/api/generate_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/specdraft/specdraft/internal/common"
	"github.com/specdraft/specdraft/internal/jobs"
	"github.com/specdraft/specdraft/internal/section"
	"github.com/specdraft/specdraft/internal/templates"
	"github.com/specdraft/specdraft/internal/workflow"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req workflow.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	job, err := s.manager.Submit(req)
	if err != nil {
		writeError(w, generateStatus(err), err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

// handleJob reports progress until the job finishes, then serves the
// document or the recorded failure.
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	jobID := strings.TrimSpace(chi.URLParam(r, "jobID"))
	if jobID == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("job id required"))
		return
	}
	job, err := s.manager.Job(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if job.Status != jobs.StatusDone {
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"status":   job.Status,
			"attempts": job.Attempts,
		})
		return
	}
	if job.Error != "" || job.ResultPath == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": job.Status,
			"error":  job.Error,
		})
		return
	}
	common.Logger().Info("api: serving artifact", "job", job.ID, "path", job.ResultPath)
	serveDocx(w, r, job.ResultPath)
}

// handleGenerateDirect runs the whole pipeline synchronously and streams the
// document back, for callers that prefer one round trip over polling.
func (s *Server) handleGenerateDirect(w http.ResponseWriter, r *http.Request) {
	var req workflow.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.FSDText) == "" {
		writeError(w, http.StatusBadRequest, workflow.ErrFSDRequired)
		return
	}
	payload, err := s.manager.BuildDocument(r.Context(), req)
	if err != nil {
		writeError(w, generateStatus(err), err)
		return
	}
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="UDD.docx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	list, err := s.manager.Jobs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": list})
}

func generateStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrFSDRequired),
		errors.Is(err, section.ErrMapNotFound),
		errors.Is(err, section.ErrMapInvalid),
		errors.Is(err, templates.ErrStoreNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func serveDocx(w http.ResponseWriter, r *http.Request, path string) {
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("artifact missing: %w", err))
		return
	}
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}
