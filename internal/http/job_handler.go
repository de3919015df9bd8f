package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// JobHandler handles HTTP requests related to background jobs
type JobHandler struct {
	service domain.JobService
	logger  logger.Logger
}

// NewJobHandler creates a new job handler
func NewJobHandler(service domain.JobService, logger logger.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		logger:  logger,
	}
}

type runJobsRequest struct {
	MaxJobs int `json:"max_jobs,omitempty"`
}

// RegisterRoutes registers the job-related routes
func (h *JobHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/jobs.list", h.handleList)
	mux.HandleFunc("/api/jobs.get", h.handleGet)
	mux.HandleFunc("/api/jobs.retry", h.handleRetry)
	mux.HandleFunc("/api/jobs.run", h.handleRun)
}

func (h *JobHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ListJobsRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.service.ListJobs(r.Context(), req.ToFilter())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list jobs")
		WriteJSONError(w, "Failed to list jobs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *JobHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetJobRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job, err := h.service.GetJob(r.Context(), req.ID)
	if err != nil {
		var notFound *domain.ErrJobNotFound
		if errors.As(err, &notFound) {
			WriteJSONError(w, "Job not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get job")
		WriteJSONError(w, "Failed to get job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"job": job,
	})
}

func (h *JobHandler) handleRetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RetryJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing job ID", http.StatusBadRequest)
		return
	}

	if err := h.service.RetryJob(r.Context(), req.ID); err != nil {
		var notFound *domain.ErrJobNotFound
		var validationErr domain.ValidationError
		switch {
		case errors.As(err, &notFound):
			WriteJSONError(w, "Job not found", http.StatusNotFound)
		case errors.As(err, &validationErr):
			WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
		default:
			h.logger.WithField("error", err.Error()).Error("Failed to retry job")
			WriteJSONError(w, "Failed to retry job", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// handleRun triggers a queue poll outside the scheduler cadence
func (h *JobHandler) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req runJobsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	startTime := time.Now()
	if err := h.service.ExecutePendingJobs(r.Context(), req.MaxJobs); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to execute pending jobs")
		WriteJSONError(w, "Failed to execute pending jobs", http.StatusInternalServerError)
		return
	}
	elapsed := time.Since(startTime)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"elapsed": elapsed.String(),
	})
}
