package domain

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

//go:generate mockgen -destination mocks/mock_lead_service.go -package mocks github.com/altocrm/altocrm/internal/domain LeadService
//go:generate mockgen -destination mocks/mock_lead_repository.go -package mocks github.com/altocrm/altocrm/internal/domain LeadRepository

// Sources a lead value can be written by. Enrichment only ever overwrites
// values whose source is ValueSourceAI.
const (
	ValueSourceManual      = "manual"
	ValueSourceAI          = "ai"
	ValueSourceImport      = "import"
	ValueSourceIntegration = "integration"
)

// ValidValueSources lists the accepted value sources
var ValidValueSources = []string{ValueSourceManual, ValueSourceAI, ValueSourceImport, ValueSourceIntegration}

// IsValidValueSource returns whether the given source is accepted
func IsValidValueSource(source string) bool {
	for _, s := range ValidValueSources {
		if s == source {
			return true
		}
	}
	return false
}

// LeadValue is one attribute of a lead. A locked value rejects every write
// path until it is unlocked. A value row may exist with a nil Value when a
// field was locked before anything was stored.
type LeadValue struct {
	Value     interface{} `json:"value"`
	Source    string      `json:"source"`
	Locked    bool        `json:"locked"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Lead holds identity and workflow state; every attribute lives in Values,
// keyed by the field key
type Lead struct {
	ID        string                `json:"id"`
	Stage     string                `json:"stage"`
	Values    map[string]*LeadValue `json:"values"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	DeletedAt *time.Time            `json:"deleted_at,omitempty"`
}

// IsDeleted returns whether the lead is soft-deleted
func (l *Lead) IsDeleted() bool {
	return l.DeletedAt != nil
}

// StringValue returns the value of a field as a string, or "" when the
// value is absent or not a string
func (l *Lead) StringValue(fieldKey string) string {
	v, ok := l.Values[fieldKey]
	if !ok || v == nil || v.Value == nil {
		return ""
	}
	s, ok := v.Value.(string)
	if !ok {
		return ""
	}
	return s
}

// HasValue returns whether the lead has a non-nil value for the field
func (l *Lead) HasValue(fieldKey string) bool {
	v, ok := l.Values[fieldKey]
	return ok && v != nil && v.Value != nil
}

// ValuesFromJSON parses a {"field_key": value} JSON object into a plain map.
// Values keep their JSON types (string, float64, bool); nested objects and
// arrays are rejected since no field kind stores them.
func ValuesFromJSON(data []byte) (map[string]interface{}, error) {
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("values must be an object")
	}

	values := make(map[string]interface{})
	var parseErr error
	result.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String:
			values[key.String()] = value.String()
		case gjson.Number:
			values[key.String()] = value.Float()
		case gjson.True, gjson.False:
			values[key.String()] = value.Bool()
		case gjson.Null:
			values[key.String()] = nil
		default:
			parseErr = fmt.Errorf("invalid value for %s: objects and arrays are not supported", key.String())
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return values, nil
}

// CreateLeadRequest defines the request to create a new lead
type CreateLeadRequest struct {
	ID     string          `json:"id,omitempty"`
	Stage  string          `json:"stage,omitempty"`
	Values json.RawMessage `json:"values,omitempty"`
	Source string          `json:"source,omitempty"`
}

// Validate validates the request and returns the lead shell plus the raw
// field values to store. Field keys are checked against crm_fields by the
// service, not here.
func (r *CreateLeadRequest) Validate() (*Lead, map[string]interface{}, error) {
	if r.ID != "" {
		if _, err := uuid.Parse(r.ID); err != nil {
			return nil, nil, fmt.Errorf("invalid lead id: %w", err)
		}
	} else {
		r.ID = uuid.New().String()
	}

	if r.Source == "" {
		r.Source = ValueSourceManual
	}
	if !IsValidValueSource(r.Source) {
		return nil, nil, fmt.Errorf("invalid source: %s", r.Source)
	}

	values := map[string]interface{}{}
	if len(r.Values) > 0 {
		parsed, err := ValuesFromJSON(r.Values)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid values: %w", err)
		}
		values = parsed
	}

	now := time.Now().UTC()
	lead := &Lead{
		ID:        r.ID,
		Stage:     r.Stage,
		Values:    make(map[string]*LeadValue),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return lead, values, nil
}

// UpdateLeadRequest defines a partial update of a lead's values
type UpdateLeadRequest struct {
	ID     string          `json:"id"`
	Values json.RawMessage `json:"values"`
	Source string          `json:"source,omitempty"`
}

// Validate validates the request and returns the raw field values to merge
func (r *UpdateLeadRequest) Validate() (map[string]interface{}, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("lead id is required")
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return nil, fmt.Errorf("invalid lead id: %w", err)
	}

	if r.Source == "" {
		r.Source = ValueSourceManual
	}
	if !IsValidValueSource(r.Source) {
		return nil, fmt.Errorf("invalid source: %s", r.Source)
	}

	if len(r.Values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	values, err := ValuesFromJSON(r.Values)
	if err != nil {
		return nil, fmt.Errorf("invalid values: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("values are required")
	}

	return values, nil
}

// GetLeadRequest is used to extract query parameters for getting a single lead
type GetLeadRequest struct {
	ID             string `json:"id"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

// FromQueryParams parses URL query parameters into the request
func (r *GetLeadRequest) FromQueryParams(values url.Values) error {
	r.ID = values.Get("id")
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid lead id: %w", err)
	}

	r.IncludeDeleted = values.Get("include_deleted") == "true"

	return nil
}

// LeadIDRequest covers the operations that only need a lead id
// (delete, restore, purge, undo, enrich)
type LeadIDRequest struct {
	ID string `json:"id"`
}

// Validate validates the request
func (r *LeadIDRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("lead id is required")
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid lead id: %w", err)
	}
	return nil
}

// MoveStageRequest defines the request to move a lead to another pipeline stage
type MoveStageRequest struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`
}

// Validate validates the request
func (r *MoveStageRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("lead id is required")
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid lead id: %w", err)
	}
	if r.Stage == "" {
		return fmt.Errorf("stage is required")
	}
	return nil
}

// LockFieldRequest defines the request to lock or unlock a lead field
type LockFieldRequest struct {
	ID       string `json:"id"`
	FieldKey string `json:"field_key"`
}

// Validate validates the request
func (r *LockFieldRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("lead id is required")
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("invalid lead id: %w", err)
	}
	if r.FieldKey == "" {
		return fmt.Errorf("field_key is required")
	}
	return nil
}

// GetLeadsRequest defines list filters and cursor pagination
type GetLeadsRequest struct {
	Stage          string `json:"stage,omitempty"`
	Query          string `json:"query,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Cursor         string `json:"cursor,omitempty"`
}

// FromQueryParams parses URL query parameters into the request
func (r *GetLeadsRequest) FromQueryParams(values url.Values) error {
	r.Stage = values.Get("stage")
	r.Query = strings.TrimSpace(values.Get("q"))
	r.IncludeDeleted = values.Get("include_deleted") == "true"
	r.Cursor = values.Get("cursor")

	if limitStr := values.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("invalid limit: %w", err)
		}
		r.Limit = limit
	}

	return r.Validate()
}

// Validate ensures that the request has valid values and applies defaults
func (r *GetLeadsRequest) Validate() error {
	if r.Limit <= 0 {
		r.Limit = 20
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	return nil
}

// GetLeadsResponse represents the response from listing leads
type GetLeadsResponse struct {
	Leads      []*Lead `json:"leads"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// GetBoardRequest defines the request for the kanban board view
type GetBoardRequest struct {
	ColumnLimit int `json:"column_limit,omitempty"`
}

// FromQueryParams parses URL query parameters into the request
func (r *GetBoardRequest) FromQueryParams(values url.Values) error {
	if limitStr := values.Get("column_limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("invalid column_limit: %w", err)
		}
		r.ColumnLimit = limit
	}

	if r.ColumnLimit <= 0 {
		r.ColumnLimit = 50
	}
	if r.ColumnLimit > 200 {
		r.ColumnLimit = 200
	}

	return nil
}

// BoardColumn is one pipeline stage with its leads
type BoardColumn struct {
	Stage      *Stage  `json:"stage"`
	Leads      []*Lead `json:"leads"`
	TotalCount int     `json:"total_count"`
}

// BoardResponse is the kanban board: all stages in position order
type BoardResponse struct {
	Columns []*BoardColumn `json:"columns"`
}

// ExportLeadsRequest defines filters for the CSV export
type ExportLeadsRequest struct {
	Stage          string `json:"stage,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
	Limit          int    `json:"limit,omitempty"` // page size while streaming
}

// FromQueryParams parses URL query parameters into the request
func (r *ExportLeadsRequest) FromQueryParams(values url.Values) error {
	r.Stage = values.Get("stage")
	r.IncludeDeleted = values.Get("include_deleted") == "true"
	return nil
}

// LeadService provides operations for managing leads
type LeadService interface {
	// CreateLead validates field keys and stores the lead with its values
	CreateLead(ctx context.Context, req *CreateLeadRequest) (*Lead, error)

	// GetLead retrieves a lead with all its values
	GetLead(ctx context.Context, id string, includeDeleted bool) (*Lead, error)

	// UpdateLead merges the given values into the lead, honoring field locks
	UpdateLead(ctx context.Context, req *UpdateLeadRequest) (*Lead, error)

	// DeleteLead soft-deletes a lead
	DeleteLead(ctx context.Context, id string) error

	// RestoreLead clears the soft-delete marker
	RestoreLead(ctx context.Context, id string) error

	// PurgeLead permanently removes a soft-deleted lead
	PurgeLead(ctx context.Context, id string) error

	// MoveStage moves a lead to another pipeline stage
	MoveStage(ctx context.Context, req *MoveStageRequest) error

	// GetLeads retrieves leads with filters and cursor pagination
	GetLeads(ctx context.Context, req *GetLeadsRequest) (*GetLeadsResponse, error)

	// GetBoard returns the kanban board grouped by pipeline stage
	GetBoard(ctx context.Context, req *GetBoardRequest) (*BoardResponse, error)

	// LockField blocks all writes to a lead field
	LockField(ctx context.Context, leadID, fieldKey string) error

	// UnlockField re-enables writes to a lead field
	UnlockField(ctx context.Context, leadID, fieldKey string) error

	// ListLeadHistory returns the audit trail of a lead, newest first
	ListLeadHistory(ctx context.Context, req *ListLeadHistoryRequest) (*ListLeadHistoryResponse, error)

	// UndoLastChange reverts the most recent undoable change of the lead
	UndoLastChange(ctx context.Context, leadID string) (*AuditEntry, error)

	// ExportLeads streams the matching leads to the writer as CSV
	ExportLeads(ctx context.Context, req *ExportLeadsRequest, w io.Writer) error
}

// LeadRepository defines methods for lead persistence
type LeadRepository interface {
	// Transaction support
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error

	// CreateLead inserts the lead row
	CreateLead(ctx context.Context, lead *Lead) error
	CreateLeadTx(ctx context.Context, tx *sql.Tx, lead *Lead) error

	// GetLead retrieves a lead with all its values
	GetLead(ctx context.Context, id string, includeDeleted bool) (*Lead, error)
	GetLeadTx(ctx context.Context, tx *sql.Tx, id string, includeDeleted bool) (*Lead, error)

	// GetLeads retrieves leads (values included) with filters and pagination
	GetLeads(ctx context.Context, req *GetLeadsRequest) (*GetLeadsResponse, error)

	// GetLeadsByStage retrieves non-deleted leads of one stage plus the
	// total count for that stage
	GetLeadsByStage(ctx context.Context, stage string, limit int) ([]*Lead, int, error)

	// UpsertValueTx writes one value row, replacing source and timestamps
	UpsertValueTx(ctx context.Context, tx *sql.Tx, leadID, fieldKey string, value *LeadValue) error

	// GetValuesTx loads the value rows of a lead with FOR UPDATE
	GetValuesTx(ctx context.Context, tx *sql.Tx, leadID string) (map[string]*LeadValue, error)

	// SetValueLockTx flips the locked flag, inserting a null-value row when
	// the field has no value yet
	SetValueLockTx(ctx context.Context, tx *sql.Tx, leadID, fieldKey string, locked bool) error

	// UpdateStageTx moves the lead to another stage
	UpdateStageTx(ctx context.Context, tx *sql.Tx, leadID, stage string) error

	// SoftDeleteLead marks the lead deleted; idempotent
	SoftDeleteLead(ctx context.Context, tx *sql.Tx, id string, deletedAt time.Time) error

	// RestoreLead clears the deleted marker
	RestoreLead(ctx context.Context, tx *sql.Tx, id string) error

	// PurgeLead hard-deletes the lead row (values and audit cascade)
	PurgeLead(ctx context.Context, id string) error

	// TouchLeadTx bumps updated_at after a value write
	TouchLeadTx(ctx context.Context, tx *sql.Tx, id string, updatedAt time.Time) error
}

// ErrLeadNotFound is returned when a lead is not found
type ErrLeadNotFound struct {
	Message string
}

func (e *ErrLeadNotFound) Error() string {
	return e.Message
}

// ErrLeadDeleted is returned when an operation conflicts with the lead's
// deletion state: writes against a soft-deleted lead, or a purge of a
// lead that was never soft-deleted
type ErrLeadDeleted struct {
	Message string
}

func (e *ErrLeadDeleted) Error() string {
	return e.Message
}

// ErrFieldLocked is returned when a write hits a locked field
type ErrFieldLocked struct {
	FieldKey string
}

func (e *ErrFieldLocked) Error() string {
	return fmt.Sprintf("field %s is locked", e.FieldKey)
}
