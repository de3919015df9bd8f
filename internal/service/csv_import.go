package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

const (
	importChunkSize = 50  // Rows handled per continuation step
	importMaxErrors = 100 // Row errors kept on the job, the rest are only counted
)

// Special CSV columns handled outside crm_fields
const (
	importColumnID    = "id"
	importColumnStage = "stage"
)

// ParseLeadsCSV reads a leads CSV into an import payload. The header row
// names the target columns: id and stage are allowed alongside the active
// field keys, anything else is an error. Cell values stay raw strings
// here, coercion happens row by row inside the processor.
func ParseLeadsCSV(r io.Reader, fields map[string]*domain.Field) (*domain.ImportJobPayload, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Ragged rows become per-row errors during processing

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	headers := make([]string, len(records[0]))
	seen := make(map[string]bool, len(records[0]))
	var unknown []string
	for i, header := range records[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if key == "" {
			return nil, fmt.Errorf("column %d has an empty header", i+1)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate column: %s", key)
		}
		seen[key] = true

		if key != importColumnID && key != importColumnStage {
			if _, ok := fields[key]; !ok {
				unknown = append(unknown, key)
			}
		}
		headers[i] = key
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown columns: %s", strings.Join(unknown, ", "))
	}

	rows := records[1:]
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv has no data rows")
	}

	return &domain.ImportJobPayload{
		Headers: headers,
		Rows:    rows,
	}, nil
}

// ImportJobProcessor handles the leads import job kind. Rows are imported
// in chunks, with the row offset checkpointed on the payload between
// continuation steps so a long file survives worker restarts.
type ImportJobProcessor struct {
	leadService  domain.LeadService
	fieldService domain.FieldService
	logger       logger.Logger
}

// NewImportJobProcessor creates a new import job processor
func NewImportJobProcessor(
	leadService domain.LeadService,
	fieldService domain.FieldService,
	logger logger.Logger,
) *ImportJobProcessor {
	return &ImportJobProcessor{
		leadService:  leadService,
		fieldService: fieldService,
		logger:       logger,
	}
}

// CanProcess returns whether this processor can handle the given job kind
func (p *ImportJobProcessor) CanProcess(kind string) bool {
	return kind == domain.JobKindLeadsImport
}

// Process executes or continues a leads import job
func (p *ImportJobProcessor) Process(ctx context.Context, job *domain.Job) (bool, error) {
	if job.Payload == nil || job.Payload.Import == nil || len(job.Payload.Import.Headers) == 0 {
		return false, fmt.Errorf("import payload with headers is required")
	}
	state := job.Payload.Import

	p.logger.WithFields(map[string]interface{}{
		"job_id":     job.ID,
		"total_rows": len(state.Rows),
		"row_offset": state.RowOffset,
	}).Info("Processing leads import job")

	fields, err := p.fieldService.GetActiveFields(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load fields: %w", err)
	}

	end := state.RowOffset + importChunkSize
	if end > len(state.Rows) {
		end = len(state.Rows)
	}

	for i := state.RowOffset; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		if err := p.importRow(ctx, state, fields, state.Rows[i]); err != nil {
			state.Failed++
			if len(state.Errors) < importMaxErrors {
				// The header occupies line 1, so the first data row is line 2
				state.Errors = append(state.Errors, fmt.Sprintf("line %d: %v", i+2, err))
			}
			continue
		}
		state.Imported++
	}

	state.RowOffset = end
	if len(state.Rows) > 0 {
		job.Progress = float64(state.RowOffset) / float64(len(state.Rows)) * 100
	} else {
		job.Progress = 100
	}

	if state.RowOffset < len(state.Rows) {
		return false, nil
	}

	job.Result = &domain.JobResult{
		Message:  fmt.Sprintf("imported %d of %d rows", state.Imported, len(state.Rows)),
		Imported: state.Imported,
		Failed:   state.Failed,
		Errors:   state.Errors,
	}
	return true, nil
}

// importRow imports a single CSV row. A row with an id updates the
// matching lead when upsert is on, otherwise an existing id is a row
// error. Rows without an id always create. The stage column only applies
// on create, updates never move a lead between stages.
func (p *ImportJobProcessor) importRow(ctx context.Context, state *domain.ImportJobPayload, fields map[string]*domain.Field, row []string) error {
	if len(row) != len(state.Headers) {
		return fmt.Errorf("expected %d columns, got %d", len(state.Headers), len(row))
	}

	var id, stage string
	values := make(map[string]interface{})
	for i, header := range state.Headers {
		cell := strings.TrimSpace(row[i])
		switch header {
		case importColumnID:
			id = cell
		case importColumnStage:
			stage = cell
		default:
			field, ok := fields[header]
			if !ok {
				return fmt.Errorf("unknown field: %s", header)
			}
			value, err := field.CoerceString(cell)
			if err != nil {
				return err
			}
			if value == nil {
				// Empty cells leave the field untouched
				continue
			}
			values[header] = value
		}
	}

	if id == "" {
		return p.createLead(ctx, id, stage, values)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid lead id: %w", err)
	}

	lead, err := p.leadService.GetLead(ctx, id, true)
	if err != nil {
		var notFound *domain.ErrLeadNotFound
		if errors.As(err, &notFound) {
			return p.createLead(ctx, id, stage, values)
		}
		return fmt.Errorf("failed to look up lead: %w", err)
	}

	if lead.IsDeleted() {
		return fmt.Errorf("lead %s is deleted", id)
	}
	if !state.Upsert {
		return fmt.Errorf("lead %s already exists", id)
	}
	return p.updateLead(ctx, id, values)
}

func (p *ImportJobProcessor) createLead(ctx context.Context, id, stage string, values map[string]interface{}) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	req := &domain.CreateLeadRequest{
		ID:     id,
		Stage:  stage,
		Values: raw,
		Source: domain.ValueSourceImport,
	}
	if _, err := p.leadService.CreateLead(ctx, req); err != nil {
		return err
	}
	return nil
}

func (p *ImportJobProcessor) updateLead(ctx context.Context, id string, values map[string]interface{}) error {
	if len(values) == 0 {
		// The row carried nothing beyond the id, leave the lead as is
		return nil
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	req := &domain.UpdateLeadRequest{
		ID:     id,
		Values: raw,
		Source: domain.ValueSourceImport,
	}
	if _, err := p.leadService.UpdateLead(ctx, req); err != nil {
		return err
	}
	return nil
}
