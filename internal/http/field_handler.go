package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// FieldHandler handles HTTP requests related to field metadata
type FieldHandler struct {
	service domain.FieldService
	logger  logger.Logger
}

// NewFieldHandler creates a new field handler
func NewFieldHandler(service domain.FieldService, logger logger.Logger) *FieldHandler {
	return &FieldHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the field-related routes
func (h *FieldHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/fields.list", h.handleList)
	mux.HandleFunc("/api/fields.create", h.handleCreate)
	mux.HandleFunc("/api/fields.update", h.handleUpdate)
	mux.HandleFunc("/api/fields.archive", h.handleArchive)
}

func (h *FieldHandler) writeFieldError(w http.ResponseWriter, err error, failMsg string) {
	var validationErr domain.ValidationError
	var notFound *domain.ErrFieldNotFound

	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		WriteJSONError(w, "Field not found", http.StatusNotFound)
	default:
		h.logger.WithField("error", err.Error()).Error(failMsg)
		WriteJSONError(w, failMsg, http.StatusInternalServerError)
	}
}

func (h *FieldHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ListFieldsRequest
	if err := req.FromQueryParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fields, err := h.service.ListFields(r.Context(), req.IncludeArchived)
	if err != nil {
		h.writeFieldError(w, err, "Failed to list fields")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fields": fields,
	})
}

func (h *FieldHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	field, err := h.service.CreateField(r.Context(), &req)
	if err != nil {
		h.writeFieldError(w, err, "Failed to create field")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"field": field,
	})
}

func (h *FieldHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	field, err := h.service.UpdateField(r.Context(), &req)
	if err != nil {
		h.writeFieldError(w, err, "Failed to update field")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"field": field,
	})
}

func (h *FieldHandler) handleArchive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ArchiveFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.ArchiveField(r.Context(), req.Key); err != nil {
		h.writeFieldError(w, err, "Failed to archive field")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
