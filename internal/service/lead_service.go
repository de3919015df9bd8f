package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
	"github.com/altocrm/altocrm/pkg/tracing"
)

// DefaultStage is where leads land when no stage is given at creation
const DefaultStage = "new"

// Audit actors recorded with each change. There is no authentication
// layer, so the actor only distinguishes API calls from job writes.
const (
	actorAPI    = "api"
	actorSystem = "system"
)

// actorFor maps a value source to the audit actor recorded with it
func actorFor(source string) string {
	if source == domain.ValueSourceManual {
		return actorAPI
	}
	return actorSystem
}

// LeadService implements domain.LeadService
type LeadService struct {
	repo      domain.LeadRepository
	fieldRepo domain.FieldRepository
	stageRepo domain.StageRepository
	auditRepo domain.AuditRepository
	logger    logger.Logger
}

// NewLeadService creates a new lead service
func NewLeadService(
	repo domain.LeadRepository,
	fieldRepo domain.FieldRepository,
	stageRepo domain.StageRepository,
	auditRepo domain.AuditRepository,
	logger logger.Logger,
) *LeadService {
	return &LeadService{
		repo:      repo,
		fieldRepo: fieldRepo,
		stageRepo: stageRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// CreateLead validates the field keys against crm_fields and writes the
// lead, its value rows and the audit trail in one transaction. Leads
// created through an import are audited as "import" instead of "create".
func (s *LeadService) CreateLead(ctx context.Context, req *domain.CreateLeadRequest) (*domain.Lead, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "LeadService", "CreateLead")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	lead, values, err := req.Validate()
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if lead.Stage == "" {
		lead.Stage = DefaultStage
	}
	if _, err := s.stageRepo.Get(ctx, lead.Stage); err != nil {
		return nil, err
	}

	fields, err := s.activeFields(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateValues(fields, values); err != nil {
		return nil, err
	}

	op := domain.AuditOpCreate
	if req.Source == domain.ValueSourceImport {
		op = domain.AuditOpImport
	}
	actor := actorFor(req.Source)

	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.repo.CreateLeadTx(ctx, tx, lead); err != nil {
			return fmt.Errorf("failed to create lead: %w", err)
		}

		entry := domain.NewAuditEntry(lead.ID, nil, op, nil, map[string]interface{}{"stage": lead.Stage}, req.Source, actor)
		if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		for _, key := range sortedKeys(values) {
			value := values[key]
			leadValue := &domain.LeadValue{
				Value:     value,
				Source:    req.Source,
				UpdatedAt: lead.CreatedAt,
			}
			if err := s.repo.UpsertValueTx(ctx, tx, lead.ID, key, leadValue); err != nil {
				return fmt.Errorf("failed to write value %s: %w", key, err)
			}
			lead.Values[key] = leadValue

			fieldKey := key
			entry := domain.NewAuditEntry(lead.ID, &fieldKey, op, nil, value, req.Source, actor)
			if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
				return fmt.Errorf("failed to record audit entry for %s: %w", key, err)
			}
		}

		return nil
	})
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		s.logger.WithField("lead_id", lead.ID).Error(fmt.Sprintf("Failed to create lead: %v", err))
		return nil, err
	}

	return lead, nil
}

// GetLead retrieves a lead with all its values
func (s *LeadService) GetLead(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error) {
	return s.repo.GetLead(ctx, id, includeDeleted)
}

// UpdateLead merges the given values into the lead. Locked fields reject
// the whole request; unchanged values are skipped and produce no audit row.
func (s *LeadService) UpdateLead(ctx context.Context, req *domain.UpdateLeadRequest) (*domain.Lead, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "LeadService", "UpdateLead")
	defer tracing.EndSpan(span, nil)
	tracing.AddAttribute(ctx, "lead_id", req.ID)
	// codecov:ignore:end

	values, err := req.Validate()
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	fields, err := s.activeFields(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateValues(fields, values); err != nil {
		return nil, err
	}

	actor := actorFor(req.Source)

	var updated *domain.Lead
	err = s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		lead, err := s.repo.GetLeadTx(ctx, tx, req.ID, true)
		if err != nil {
			return err
		}
		if lead.IsDeleted() {
			return &domain.ErrLeadDeleted{Message: "lead is deleted"}
		}

		current, err := s.repo.GetValuesTx(ctx, tx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to load current values: %w", err)
		}

		now := time.Now().UTC()
		changed := 0
		for _, key := range sortedKeys(values) {
			value := values[key]
			existing := current[key]

			if existing != nil && existing.Locked {
				return &domain.ErrFieldLocked{FieldKey: key}
			}
			if existing != nil && reflect.DeepEqual(existing.Value, value) {
				continue
			}

			leadValue := &domain.LeadValue{
				Value:     value,
				Source:    req.Source,
				UpdatedAt: now,
			}
			if err := s.repo.UpsertValueTx(ctx, tx, req.ID, key, leadValue); err != nil {
				return fmt.Errorf("failed to write value %s: %w", key, err)
			}

			var oldValue interface{}
			if existing != nil {
				oldValue = existing.Value
			}
			fieldKey := key
			entry := domain.NewAuditEntry(req.ID, &fieldKey, domain.AuditOpUpdate, oldValue, value, req.Source, actor)
			if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
				return fmt.Errorf("failed to record audit entry for %s: %w", key, err)
			}
			changed++
		}

		if changed > 0 {
			if err := s.repo.TouchLeadTx(ctx, tx, req.ID, now); err != nil {
				return fmt.Errorf("failed to touch lead: %w", err)
			}
		}

		updated, err = s.repo.GetLeadTx(ctx, tx, req.ID, false)
		return err
	})
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		return nil, err
	}

	return updated, nil
}

// DeleteLead soft-deletes a lead. Deleting an already deleted lead is a
// no-op and records nothing.
func (s *LeadService) DeleteLead(ctx context.Context, id string) error {
	return s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		lead, err := s.repo.GetLeadTx(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if lead.IsDeleted() {
			return nil
		}

		now := time.Now().UTC()
		if err := s.repo.SoftDeleteLead(ctx, tx, id, now); err != nil {
			return fmt.Errorf("failed to delete lead: %w", err)
		}

		entry := domain.NewAuditEntry(id, nil, domain.AuditOpDelete, nil, nil, domain.ValueSourceManual, actorAPI)
		if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		return nil
	})
}

// RestoreLead clears the soft-delete marker. Restoring a live lead is a
// no-op.
func (s *LeadService) RestoreLead(ctx context.Context, id string) error {
	return s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		lead, err := s.repo.GetLeadTx(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !lead.IsDeleted() {
			return nil
		}

		if err := s.repo.RestoreLead(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to restore lead: %w", err)
		}

		entry := domain.NewAuditEntry(id, nil, domain.AuditOpRestore, nil, nil, domain.ValueSourceManual, actorAPI)
		if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		return nil
	})
}

// PurgeLead permanently removes a soft-deleted lead. Values and audit
// entries go with it through the FK cascade.
func (s *LeadService) PurgeLead(ctx context.Context, id string) error {
	lead, err := s.repo.GetLead(ctx, id, true)
	if err != nil {
		return err
	}
	if !lead.IsDeleted() {
		return &domain.ErrLeadDeleted{Message: "lead must be deleted before purge"}
	}

	if err := s.repo.PurgeLead(ctx, id); err != nil {
		s.logger.WithField("lead_id", id).Error(fmt.Sprintf("Failed to purge lead: %v", err))
		return fmt.Errorf("failed to purge lead: %w", err)
	}

	return nil
}

// MoveStage moves a lead to another pipeline stage and audits the change
func (s *LeadService) MoveStage(ctx context.Context, req *domain.MoveStageRequest) error {
	if err := req.Validate(); err != nil {
		return domain.NewValidationError(err.Error())
	}

	if _, err := s.stageRepo.Get(ctx, req.Stage); err != nil {
		return err
	}

	return s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		lead, err := s.repo.GetLeadTx(ctx, tx, req.ID, true)
		if err != nil {
			return err
		}
		if lead.IsDeleted() {
			return &domain.ErrLeadDeleted{Message: "lead is deleted"}
		}
		if lead.Stage == req.Stage {
			return nil
		}

		if err := s.repo.UpdateStageTx(ctx, tx, req.ID, req.Stage); err != nil {
			return fmt.Errorf("failed to move stage: %w", err)
		}

		entry := domain.NewAuditEntry(req.ID, nil, domain.AuditOpStageChange, lead.Stage, req.Stage, domain.ValueSourceManual, actorAPI)
		if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		return nil
	})
}

// GetLeads retrieves leads with filters and cursor pagination
func (s *LeadService) GetLeads(ctx context.Context, req *domain.GetLeadsRequest) (*domain.GetLeadsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	response, err := s.repo.GetLeads(ctx, req)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to get leads: %v", err))
		return nil, fmt.Errorf("failed to get leads: %w", err)
	}

	return response, nil
}

// GetBoard returns the kanban board: every stage in position order with
// its leads and per-stage totals
func (s *LeadService) GetBoard(ctx context.Context, req *domain.GetBoardRequest) (*domain.BoardResponse, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "LeadService", "GetBoard")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	stages, err := s.stageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}

	columns := make([]*domain.BoardColumn, 0, len(stages))
	for _, stage := range stages {
		leads, total, err := s.repo.GetLeadsByStage(ctx, stage.Key, req.ColumnLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load stage %s: %w", stage.Key, err)
		}
		columns = append(columns, &domain.BoardColumn{
			Stage:      stage,
			Leads:      leads,
			TotalCount: total,
		})
	}

	return &domain.BoardResponse{Columns: columns}, nil
}

// LockField blocks all writes to a lead field
func (s *LeadService) LockField(ctx context.Context, leadID, fieldKey string) error {
	return s.setFieldLock(ctx, leadID, fieldKey, true)
}

// UnlockField re-enables writes to a lead field
func (s *LeadService) UnlockField(ctx context.Context, leadID, fieldKey string) error {
	return s.setFieldLock(ctx, leadID, fieldKey, false)
}

func (s *LeadService) setFieldLock(ctx context.Context, leadID, fieldKey string, locked bool) error {
	if _, err := s.fieldRepo.Get(ctx, fieldKey); err != nil {
		return err
	}

	return s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		lead, err := s.repo.GetLeadTx(ctx, tx, leadID, true)
		if err != nil {
			return err
		}
		if lead.IsDeleted() {
			return &domain.ErrLeadDeleted{Message: "lead is deleted"}
		}

		values, err := s.repo.GetValuesTx(ctx, tx, leadID)
		if err != nil {
			return fmt.Errorf("failed to load current values: %w", err)
		}

		current := values[fieldKey]
		wasLocked := current != nil && current.Locked
		if wasLocked == locked {
			return nil
		}

		if err := s.repo.SetValueLockTx(ctx, tx, leadID, fieldKey, locked); err != nil {
			return fmt.Errorf("failed to set field lock: %w", err)
		}

		op := domain.AuditOpLock
		if !locked {
			op = domain.AuditOpUnlock
		}
		entry := domain.NewAuditEntry(leadID, &fieldKey, op, wasLocked, locked, domain.ValueSourceManual, actorAPI)
		if err := s.auditRepo.CreateTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		return nil
	})
}

// ListLeadHistory returns the audit trail of a lead, newest first. The
// history of a soft-deleted lead stays readable.
func (s *LeadService) ListLeadHistory(ctx context.Context, req *domain.ListLeadHistoryRequest) (*domain.ListLeadHistoryResponse, error) {
	if _, err := s.repo.GetLead(ctx, req.LeadID, true); err != nil {
		return nil, err
	}

	entries, nextCursor, err := s.auditRepo.ListByLead(ctx, req.LeadID, req.Limit, req.Cursor)
	if err != nil {
		s.logger.WithField("lead_id", req.LeadID).Error(fmt.Sprintf("Failed to list lead history: %v", err))
		return nil, fmt.Errorf("failed to list lead history: %w", err)
	}

	return &domain.ListLeadHistoryResponse{
		Entries:    entries,
		NextCursor: nextCursor,
	}, nil
}

// UndoLastChange reverts the most recent undoable change of the lead and
// records the reversal as an "undo" entry. Undo entries are themselves
// not undoable, so repeated calls converge instead of ping-ponging.
func (s *LeadService) UndoLastChange(ctx context.Context, leadID string) (*domain.AuditEntry, error) {
	// codecov:ignore:start
	ctx, span := tracing.StartServiceSpan(ctx, "LeadService", "UndoLastChange")
	defer tracing.EndSpan(span, nil)
	tracing.AddAttribute(ctx, "lead_id", leadID)
	// codecov:ignore:end

	var undoEntry *domain.AuditEntry
	err := s.repo.WithTransaction(ctx, func(tx *sql.Tx) error {
		lead, err := s.repo.GetLeadTx(ctx, tx, leadID, true)
		if err != nil {
			return err
		}
		if lead.IsDeleted() {
			return &domain.ErrLeadDeleted{Message: "lead is deleted"}
		}

		last, err := s.auditRepo.GetLatestUndoableTx(ctx, tx, leadID)
		if err != nil {
			var notFound *domain.ErrAuditEntryNotFound
			if errors.As(err, &notFound) {
				return &domain.ErrNothingToUndo{Message: "lead has no undoable change"}
			}
			return fmt.Errorf("failed to find undoable entry: %w", err)
		}

		now := time.Now().UTC()

		if last.FieldKey == nil {
			// A lead-level undoable entry is a stage change
			oldStage, ok := last.OldValue.Data.(string)
			if !ok || oldStage == "" {
				return fmt.Errorf("audit entry %s has no previous stage", last.ID)
			}
			if _, err := s.stageRepo.Get(ctx, oldStage); err != nil {
				return err
			}
			if err := s.repo.UpdateStageTx(ctx, tx, leadID, oldStage); err != nil {
				return fmt.Errorf("failed to revert stage: %w", err)
			}
			undoEntry = domain.NewAuditEntry(leadID, nil, domain.AuditOpUndo, lead.Stage, oldStage, domain.ValueSourceManual, actorAPI)
		} else {
			key := *last.FieldKey
			values, err := s.repo.GetValuesTx(ctx, tx, leadID)
			if err != nil {
				return fmt.Errorf("failed to load current values: %w", err)
			}

			current := values[key]
			if current != nil && current.Locked {
				return &domain.ErrFieldLocked{FieldKey: key}
			}

			var oldValue interface{}
			if !last.OldValue.IsNull {
				oldValue = last.OldValue.Data
			}
			leadValue := &domain.LeadValue{
				Value:     oldValue,
				Source:    domain.ValueSourceManual,
				UpdatedAt: now,
			}
			if err := s.repo.UpsertValueTx(ctx, tx, leadID, key, leadValue); err != nil {
				return fmt.Errorf("failed to revert value %s: %w", key, err)
			}
			if err := s.repo.TouchLeadTx(ctx, tx, leadID, now); err != nil {
				return fmt.Errorf("failed to touch lead: %w", err)
			}

			var currentValue interface{}
			if current != nil {
				currentValue = current.Value
			}
			undoEntry = domain.NewAuditEntry(leadID, last.FieldKey, domain.AuditOpUndo, currentValue, oldValue, domain.ValueSourceManual, actorAPI)
		}

		if err := s.auditRepo.CreateTx(ctx, tx, undoEntry); err != nil {
			return fmt.Errorf("failed to record undo entry: %w", err)
		}

		return nil
	})
	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(ctx, err)
		// codecov:ignore:end
		return nil, err
	}

	return undoEntry, nil
}

// activeFields loads the non-archived fields keyed by field key
func (s *LeadService) activeFields(ctx context.Context) (map[string]*domain.Field, error) {
	fields, err := s.fieldRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}

	byKey := make(map[string]*domain.Field, len(fields))
	for _, field := range fields {
		byKey[field.Key] = field
	}
	return byKey, nil
}

// validateValues checks every value against its field definition. Unknown
// and archived field keys are rejected.
func validateValues(fields map[string]*domain.Field, values map[string]interface{}) error {
	for _, key := range sortedKeys(values) {
		field, ok := fields[key]
		if !ok {
			return domain.NewValidationError(fmt.Sprintf("unknown field: %s", key))
		}
		if err := field.ValidateValue(values[key]); err != nil {
			return domain.NewValidationError(err.Error())
		}
	}
	return nil
}

// sortedKeys keeps value iteration deterministic so audit rows of one
// request always appear in the same order
func sortedKeys(values map[string]interface{}) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
