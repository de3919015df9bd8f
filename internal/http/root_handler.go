package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// healthPingTimeout caps how long the health check waits on the database
const healthPingTimeout = 2 * time.Second

// RootHandler serves the API root and the health endpoint
type RootHandler struct {
	db         *sql.DB
	jobService domain.JobService
	logger     logger.Logger
	version    string
}

// NewRootHandler creates a new root handler
func NewRootHandler(db *sql.DB, jobService domain.JobService, logger logger.Logger, version string) *RootHandler {
	return &RootHandler{
		db:         db,
		jobService: jobService,
		logger:     logger,
		version:    version,
	}
}

// RegisterRoutes registers the root-level routes
func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	// catch all route
	mux.HandleFunc("/", h.handleRoot)
}

func (h *RootHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "AltoCRM API",
		"version": h.version,
		"status":  "ok",
	})
}

// handleHealth reports API liveness, database reachability and when the
// job queue was last polled
func (h *RootHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := http.StatusOK
	health := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.WithField("error", err.Error()).Error("Database ping failed")
			health["status"] = "degraded"
			health["database"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			health["database"] = "up"
		}
	}

	if h.jobService != nil {
		lastPoll, err := h.jobService.GetLastPollAt(r.Context())
		if err != nil {
			h.logger.WithField("error", err.Error()).Error("Failed to read last poll time")
		} else if lastPoll != nil {
			health["jobs_last_poll_at"] = lastPoll.UTC().Format(time.RFC3339)
		}
	}

	writeJSON(w, status, health)
}
