package domain

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination mocks/mock_audit_repository.go -package mocks github.com/altocrm/altocrm/internal/domain AuditRepository

// Audit operations recorded against a lead
const (
	AuditOpCreate      = "create"
	AuditOpUpdate      = "update"
	AuditOpDelete      = "delete"
	AuditOpRestore     = "restore"
	AuditOpStageChange = "stage_change"
	AuditOpLock        = "lock"
	AuditOpUnlock      = "unlock"
	AuditOpUndo        = "undo"
	AuditOpEnrich      = "enrich"
	AuditOpImport      = "import"
)

// IsUndoableOperation reports whether an audit operation can be reverted
// by undo. Lifecycle operations and undo itself cannot, which keeps
// repeated undo calls from ping-ponging between two values.
func IsUndoableOperation(op string) bool {
	switch op {
	case AuditOpUpdate, AuditOpStageChange, AuditOpEnrich:
		return true
	}
	return false
}

// AuditEntry is one recorded change on a lead. FieldKey is nil for
// lead-level operations such as stage changes and deletion.
type AuditEntry struct {
	ID        string       `json:"id"`
	LeadID    string       `json:"lead_id"`
	FieldKey  *string      `json:"field_key,omitempty"`
	Operation string       `json:"operation"`
	OldValue  NullableJSON `json:"old_value"`
	NewValue  NullableJSON `json:"new_value"`
	Source    string       `json:"source,omitempty"`
	Actor     string       `json:"actor,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewAuditEntry builds an entry with a generated ID and current timestamp
func NewAuditEntry(leadID string, fieldKey *string, operation string, oldValue, newValue interface{}, source, actor string) *AuditEntry {
	return &AuditEntry{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		FieldKey:  fieldKey,
		Operation: operation,
		OldValue:  NullableJSON{Data: oldValue, IsNull: oldValue == nil},
		NewValue:  NullableJSON{Data: newValue, IsNull: newValue == nil},
		Source:    source,
		Actor:     actor,
		CreatedAt: time.Now().UTC(),
	}
}

// ListLeadHistoryRequest is used to extract query parameters for
// listing a lead's audit trail
type ListLeadHistoryRequest struct {
	LeadID string `json:"lead_id"`
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// FromQueryParams parses URL query parameters into the request
func (r *ListLeadHistoryRequest) FromQueryParams(values url.Values) error {
	r.LeadID = values.Get("lead_id")
	if r.LeadID == "" {
		return fmt.Errorf("lead_id is required")
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return fmt.Errorf("invalid limit parameter")
		}
		r.Limit = limit
	}
	if r.Limit == 0 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}

	r.Cursor = values.Get("cursor")
	return nil
}

// ListLeadHistoryResponse is the paginated audit trail of one lead
type ListLeadHistoryResponse struct {
	Entries    []*AuditEntry `json:"entries"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// AuditRepository defines methods for audit log persistence
type AuditRepository interface {
	// CreateTx records an entry within an existing transaction
	CreateTx(ctx context.Context, tx *sql.Tx, entry *AuditEntry) error

	// ListByLead returns entries for a lead, newest first, with
	// cursor pagination
	ListByLead(ctx context.Context, leadID string, limit int, cursor string) ([]*AuditEntry, string, error)

	// GetLatestUndoableTx returns the most recent undoable entry for
	// a lead within an existing transaction
	GetLatestUndoableTx(ctx context.Context, tx *sql.Tx, leadID string) (*AuditEntry, error)
}

// ErrAuditEntryNotFound is returned when an audit entry is not found
type ErrAuditEntryNotFound struct {
	Message string
}

func (e *ErrAuditEntryNotFound) Error() string {
	return e.Message
}

// ErrNothingToUndo is returned when a lead has no undoable change
type ErrNothingToUndo struct {
	Message string
}

func (e *ErrNothingToUndo) Error() string {
	return e.Message
}
