package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/internal/service"
	"github.com/altocrm/altocrm/pkg/logger"
)

// importMaxUploadMemory bounds the in-memory part of a multipart CSV upload
const importMaxUploadMemory = 10 << 20

// LeadHandler handles HTTP requests related to leads
type LeadHandler struct {
	service           domain.LeadService
	fieldService      domain.FieldService
	enrichmentService domain.EnrichmentService
	jobService        domain.JobService
	logger            logger.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(
	leadService domain.LeadService,
	fieldService domain.FieldService,
	enrichmentService domain.EnrichmentService,
	jobService domain.JobService,
	logger logger.Logger,
) *LeadHandler {
	return &LeadHandler{
		service:           leadService,
		fieldService:      fieldService,
		enrichmentService: enrichmentService,
		jobService:        jobService,
		logger:            logger,
	}
}

// RegisterRoutes registers the lead-related routes
func (h *LeadHandler) RegisterRoutes(mux *http.ServeMux) {
	// Register RPC-style endpoints with dot notation
	mux.HandleFunc("/api/leads.list", h.handleList)
	mux.HandleFunc("/api/leads.get", h.handleGet)
	mux.HandleFunc("/api/leads.create", h.handleCreate)
	mux.HandleFunc("/api/leads.update", h.handleUpdate)
	mux.HandleFunc("/api/leads.delete", h.handleDelete)
	mux.HandleFunc("/api/leads.restore", h.handleRestore)
	mux.HandleFunc("/api/leads.purge", h.handlePurge)
	mux.HandleFunc("/api/leads.moveStage", h.handleMoveStage)
	mux.HandleFunc("/api/leads.board", h.handleBoard)
	mux.HandleFunc("/api/leads.history", h.handleHistory)
	mux.HandleFunc("/api/leads.undo", h.handleUndo)
	mux.HandleFunc("/api/leads.lockField", h.handleLockField)
	mux.HandleFunc("/api/leads.unlockField", h.handleUnlockField)
	mux.HandleFunc("/api/leads.enrich", h.handleEnrich)
	mux.HandleFunc("/api/leads.import", h.handleImport)
	mux.HandleFunc("/api/leads.export", h.handleExport)
}

// writeLeadError maps domain errors onto HTTP statuses. Anything
// unrecognized is logged and surfaces as a plain 500.
func (h *LeadHandler) writeLeadError(w http.ResponseWriter, err error, failMsg string) {
	var validationErr domain.ValidationError
	var leadNotFound *domain.ErrLeadNotFound
	var fieldNotFound *domain.ErrFieldNotFound
	var stageNotFound *domain.ErrStageNotFound
	var leadDeleted *domain.ErrLeadDeleted
	var fieldLocked *domain.ErrFieldLocked
	var nothingToUndo *domain.ErrNothingToUndo

	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &leadNotFound):
		WriteJSONError(w, "Lead not found", http.StatusNotFound)
	case errors.As(err, &fieldNotFound):
		WriteJSONError(w, "Field not found", http.StatusNotFound)
	case errors.As(err, &stageNotFound):
		WriteJSONError(w, stageNotFound.Error(), http.StatusBadRequest)
	case errors.As(err, &leadDeleted):
		WriteJSONError(w, leadDeleted.Error(), http.StatusConflict)
	case errors.As(err, &fieldLocked):
		WriteJSONError(w, fieldLocked.Error(), http.StatusConflict)
	case errors.As(err, &nothingToUndo):
		WriteJSONError(w, nothingToUndo.Error(), http.StatusConflict)
	default:
		h.logger.WithField("error", err.Error()).Error(failMsg)
		WriteJSONError(w, failMsg, http.StatusInternalServerError)
	}
}

func (h *LeadHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetLeadsRequest
	if err := req.FromQueryParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.service.GetLeads(r.Context(), &req)
	if err != nil {
		h.writeLeadError(w, err, "Failed to list leads")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *LeadHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetLeadRequest
	if err := req.FromQueryParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := h.service.GetLead(r.Context(), req.ID, req.IncludeDeleted)
	if err != nil {
		h.writeLeadError(w, err, "Failed to get lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lead": lead,
	})
}

func (h *LeadHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.service.CreateLead(r.Context(), &req)
	if err != nil {
		h.writeLeadError(w, err, "Failed to create lead")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"lead": lead,
	})
}

func (h *LeadHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.service.UpdateLead(r.Context(), &req)
	if err != nil {
		h.writeLeadError(w, err, "Failed to update lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lead": lead,
	})
}

func (h *LeadHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LeadIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteLead(r.Context(), req.ID); err != nil {
		h.writeLeadError(w, err, "Failed to delete lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LeadHandler) handleRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LeadIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.RestoreLead(r.Context(), req.ID); err != nil {
		h.writeLeadError(w, err, "Failed to restore lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LeadHandler) handlePurge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LeadIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.PurgeLead(r.Context(), req.ID); err != nil {
		h.writeLeadError(w, err, "Failed to purge lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LeadHandler) handleMoveStage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.MoveStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.MoveStage(r.Context(), &req); err != nil {
		h.writeLeadError(w, err, "Failed to move lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LeadHandler) handleBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetBoardRequest
	if err := req.FromQueryParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, err := h.service.GetBoard(r.Context(), &req)
	if err != nil {
		h.writeLeadError(w, err, "Failed to get board")
		return
	}

	writeJSON(w, http.StatusOK, board)
}

func (h *LeadHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ListLeadHistoryRequest
	if err := req.FromQueryParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := h.service.ListLeadHistory(r.Context(), &req)
	if err != nil {
		h.writeLeadError(w, err, "Failed to list lead history")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *LeadHandler) handleUndo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LeadIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.service.UndoLastChange(r.Context(), req.ID)
	if err != nil {
		h.writeLeadError(w, err, "Failed to undo last change")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entry": entry,
	})
}

func (h *LeadHandler) handleLockField(w http.ResponseWriter, r *http.Request) {
	h.handleLockToggle(w, r, true)
}

func (h *LeadHandler) handleUnlockField(w http.ResponseWriter, r *http.Request) {
	h.handleLockToggle(w, r, false)
}

func (h *LeadHandler) handleLockToggle(w http.ResponseWriter, r *http.Request, lock bool) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LockFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var err error
	if lock {
		err = h.service.LockField(r.Context(), req.ID, req.FieldKey)
	} else {
		err = h.service.UnlockField(r.Context(), req.ID, req.FieldKey)
	}
	if err != nil {
		h.writeLeadError(w, err, "Failed to toggle field lock")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *LeadHandler) handleEnrich(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LeadIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.enrichmentService.EnrichLead(r.Context(), req.ID)
	if err != nil {
		h.writeLeadError(w, err, "Failed to enrich lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
	})
}

func (h *LeadHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	upsert := r.URL.Query().Get("upsert") == "true"

	// The CSV arrives either as a multipart "file" part or as the raw body
	var reader io.Reader
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(importMaxUploadMemory); err != nil {
			WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			WriteJSONError(w, "Missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()
		reader = file

		if r.FormValue("upsert") == "true" {
			upsert = true
		}
	} else {
		reader = r.Body
	}

	fields, err := h.fieldService.GetActiveFields(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to load fields for import")
		WriteJSONError(w, "Failed to load fields", http.StatusInternalServerError)
		return
	}

	payload, err := service.ParseLeadsCSV(reader, fields)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.Upsert = upsert

	createRequest := &domain.CreateJobRequest{
		Kind:    domain.JobKindLeadsImport,
		Payload: &domain.JobPayload{Import: payload},
	}
	job, err := createRequest.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.jobService.CreateJob(r.Context(), job); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to enqueue import job")
		WriteJSONError(w, "Failed to enqueue import job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id": job.ID,
		"rows":   len(payload.Rows),
	})
}

func (h *LeadHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ExportLeadsRequest
	if err := req.FromQueryParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leads.csv"`)

	if err := h.service.ExportLeads(r.Context(), &req, w); err != nil {
		// The csv writer buffers, so early failures can still replace the response
		h.logger.WithField("error", err.Error()).Error("Failed to export leads")
		w.Header().Del("Content-Disposition")
		WriteJSONError(w, "Failed to export leads", http.StatusInternalServerError)
		return
	}
}
