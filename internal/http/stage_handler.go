package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// StageHandler handles HTTP requests related to pipeline stages
type StageHandler struct {
	service domain.StageService
	logger  logger.Logger
}

// NewStageHandler creates a new stage handler
func NewStageHandler(service domain.StageService, logger logger.Logger) *StageHandler {
	return &StageHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the stage-related routes
func (h *StageHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/stages.list", h.handleList)
	mux.HandleFunc("/api/stages.create", h.handleCreate)
	mux.HandleFunc("/api/stages.update", h.handleUpdate)
	mux.HandleFunc("/api/stages.delete", h.handleDelete)
}

func (h *StageHandler) writeStageError(w http.ResponseWriter, err error, failMsg string) {
	var validationErr domain.ValidationError
	var notFound *domain.ErrStageNotFound

	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		WriteJSONError(w, "Stage not found", http.StatusNotFound)
	default:
		h.logger.WithField("error", err.Error()).Error(failMsg)
		WriteJSONError(w, failMsg, http.StatusInternalServerError)
	}
}

func (h *StageHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stages, err := h.service.ListStages(r.Context())
	if err != nil {
		h.writeStageError(w, err, "Failed to list stages")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stages": stages,
	})
}

func (h *StageHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stage, err := h.service.CreateStage(r.Context(), &req)
	if err != nil {
		h.writeStageError(w, err, "Failed to create stage")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"stage": stage,
	})
}

func (h *StageHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stage, err := h.service.UpdateStage(r.Context(), &req)
	if err != nil {
		h.writeStageError(w, err, "Failed to update stage")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stage": stage,
	})
}

func (h *StageHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DeleteStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteStage(r.Context(), &req); err != nil {
		h.writeStageError(w, err, "Failed to delete stage")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
