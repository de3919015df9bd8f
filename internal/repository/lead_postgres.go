package repository

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/altocrm/altocrm/internal/domain"
	"github.com/lib/pq"
)

type leadRepository struct {
	db *sql.DB
}

// NewLeadRepository creates a new PostgreSQL lead repository
func NewLeadRepository(db *sql.DB) domain.LeadRepository {
	return &leadRepository{db: db}
}

// WithTransaction executes a function within a transaction
func (r *leadRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *leadRepository) CreateLead(ctx context.Context, lead *domain.Lead) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		return r.CreateLeadTx(ctx, tx, lead)
	})
}

func (r *leadRepository) CreateLeadTx(ctx context.Context, tx *sql.Tx, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (id, stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := tx.ExecContext(ctx, query, lead.ID, lead.Stage, lead.CreatedAt, lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}

func (r *leadRepository) GetLead(ctx context.Context, id string, includeDeleted bool) (*domain.Lead, error) {
	lead, err := r.getLeadRow(ctx, r.db, id, includeDeleted)
	if err != nil {
		return nil, err
	}

	values, err := r.getValues(ctx, r.db, lead.ID)
	if err != nil {
		return nil, err
	}
	lead.Values = values

	return lead, nil
}

func (r *leadRepository) GetLeadTx(ctx context.Context, tx *sql.Tx, id string, includeDeleted bool) (*domain.Lead, error) {
	lead, err := r.getLeadRow(ctx, tx, id, includeDeleted)
	if err != nil {
		return nil, err
	}

	values, err := r.getValues(ctx, tx, lead.ID)
	if err != nil {
		return nil, err
	}
	lead.Values = values

	return lead, nil
}

// querier covers *sql.DB and *sql.Tx so lead loading works inside and
// outside a transaction
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (r *leadRepository) getLeadRow(ctx context.Context, q querier, id string, includeDeleted bool) (*domain.Lead, error) {
	query := `
		SELECT id, stage, created_at, updated_at, deleted_at
		FROM leads
		WHERE id = $1
	`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	lead, err := scanLead(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrLeadNotFound{Message: "lead not found"}
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return lead, nil
}

func (r *leadRepository) GetLeads(ctx context.Context, req *domain.GetLeadsRequest) (*domain.GetLeadsResponse, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	q := psql.Select("id", "stage", "created_at", "updated_at", "deleted_at").
		From("leads")

	if !req.IncludeDeleted {
		q = q.Where("deleted_at IS NULL")
	}

	if req.Stage != "" {
		q = q.Where(sq.Eq{"stage": req.Stage})
	}

	if req.Query != "" {
		q = q.Where("EXISTS (SELECT 1 FROM lead_values lv WHERE lv.lead_id = leads.id AND lv.value::text ILIKE ?)",
			"%"+req.Query+"%")
	}

	if req.Cursor != "" {
		decodedCursor, err := decodeCursor(req.Cursor)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor: %w", err)
		}

		// Cursor format: "timestamp|id"
		parts := strings.Split(decodedCursor, "|")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid cursor format")
		}

		cursorTime, err := time.Parse(time.RFC3339Nano, parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
		}
		cursorID := parts[1]

		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", cursorTime, cursorTime, cursorID)
	}

	// Fetch one extra row to determine if there's a next page
	q = q.OrderBy("created_at DESC", "id DESC").Limit(uint64(req.Limit + 1))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leads query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead rows: %w", err)
	}

	var nextCursor string
	if len(leads) > req.Limit {
		last := leads[req.Limit-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
		leads = leads[:req.Limit]
	}

	if err := r.attachValues(ctx, leads); err != nil {
		return nil, err
	}

	return &domain.GetLeadsResponse{
		Leads:      leads,
		NextCursor: nextCursor,
	}, nil
}

func (r *leadRepository) GetLeadsByStage(ctx context.Context, stage string, limit int) ([]*domain.Lead, int, error) {
	var totalCount int
	countQuery := `SELECT COUNT(*) FROM leads WHERE stage = $1 AND deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, stage).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count leads for stage: %w", err)
	}

	query := `
		SELECT id, stage, created_at, updated_at, deleted_at
		FROM leads
		WHERE stage = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, stage, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leads for stage: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating lead rows: %w", err)
	}

	if err := r.attachValues(ctx, leads); err != nil {
		return nil, 0, err
	}

	return leads, totalCount, nil
}

func (r *leadRepository) UpsertValueTx(ctx context.Context, tx *sql.Tx, leadID, fieldKey string, value *domain.LeadValue) error {
	valueJSON, err := marshalValue(value.Value)
	if err != nil {
		return err
	}

	// The locked flag is owned by SetValueLockTx and survives value writes
	query := `
		INSERT INTO lead_values (lead_id, field_key, value, source, locked, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (lead_id, field_key) DO UPDATE SET
			value = EXCLUDED.value,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at
	`

	_, err = tx.ExecContext(ctx, query, leadID, fieldKey, valueJSON, value.Source, value.Locked, value.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert lead value: %w", err)
	}

	return nil
}

func (r *leadRepository) GetValuesTx(ctx context.Context, tx *sql.Tx, leadID string) (map[string]*domain.LeadValue, error) {
	query := `
		SELECT field_key, value, source, locked, updated_at
		FROM lead_values
		WHERE lead_id = $1
		FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]*domain.LeadValue)
	for rows.Next() {
		fieldKey, value, err := scanLeadValue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead value: %w", err)
		}
		values[fieldKey] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead value rows: %w", err)
	}

	return values, nil
}

func (r *leadRepository) SetValueLockTx(ctx context.Context, tx *sql.Tx, leadID, fieldKey string, locked bool) error {
	now := time.Now().UTC()

	// A lock on a field with no value yet inserts a null-value row so the
	// flag has somewhere to live
	query := `
		INSERT INTO lead_values (lead_id, field_key, value, source, locked, updated_at)
		VALUES ($1, $2, NULL, $3, $4, $5)
		ON CONFLICT (lead_id, field_key) DO UPDATE SET
			locked = EXCLUDED.locked,
			updated_at = EXCLUDED.updated_at
	`

	_, err := tx.ExecContext(ctx, query, leadID, fieldKey, domain.ValueSourceManual, locked, now)
	if err != nil {
		return fmt.Errorf("failed to set value lock: %w", err)
	}

	return nil
}

func (r *leadRepository) UpdateStageTx(ctx context.Context, tx *sql.Tx, leadID, stage string) error {
	query := `
		UPDATE leads SET stage = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
	`

	result, err := tx.ExecContext(ctx, query, stage, time.Now().UTC(), leadID)
	if err != nil {
		return fmt.Errorf("failed to update lead stage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrLeadNotFound{Message: "lead not found"}
	}

	return nil
}

func (r *leadRepository) SoftDeleteLead(ctx context.Context, tx *sql.Tx, id string, deletedAt time.Time) error {
	// COALESCE keeps the original deletion time on a repeated delete
	query := `
		UPDATE leads SET deleted_at = COALESCE(deleted_at, $1), updated_at = $2
		WHERE id = $3
	`

	result, err := tx.ExecContext(ctx, query, deletedAt, deletedAt, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrLeadNotFound{Message: "lead not found"}
	}

	return nil
}

func (r *leadRepository) RestoreLead(ctx context.Context, tx *sql.Tx, id string) error {
	query := `
		UPDATE leads SET deleted_at = NULL, updated_at = $1
		WHERE id = $2
	`

	result, err := tx.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to restore lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrLeadNotFound{Message: "lead not found"}
	}

	return nil
}

func (r *leadRepository) PurgeLead(ctx context.Context, id string) error {
	query := `DELETE FROM leads WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to purge lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrLeadNotFound{Message: "lead not found"}
	}

	return nil
}

func (r *leadRepository) TouchLeadTx(ctx context.Context, tx *sql.Tx, id string, updatedAt time.Time) error {
	query := `UPDATE leads SET updated_at = $1 WHERE id = $2`

	if _, err := tx.ExecContext(ctx, query, updatedAt, id); err != nil {
		return fmt.Errorf("failed to touch lead: %w", err)
	}

	return nil
}

// getValues loads the value rows of one lead
func (r *leadRepository) getValues(ctx context.Context, q querier, leadID string) (map[string]*domain.LeadValue, error) {
	query := `
		SELECT field_key, value, source, locked, updated_at
		FROM lead_values
		WHERE lead_id = $1
	`

	rows, err := q.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]*domain.LeadValue)
	for rows.Next() {
		fieldKey, value, err := scanLeadValue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead value: %w", err)
		}
		values[fieldKey] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead value rows: %w", err)
	}

	return values, nil
}

// attachValues loads the value rows for a page of leads in one query
func (r *leadRepository) attachValues(ctx context.Context, leads []*domain.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	ids := make([]string, len(leads))
	byID := make(map[string]*domain.Lead, len(leads))
	for i, lead := range leads {
		ids[i] = lead.ID
		byID[lead.ID] = lead
		lead.Values = make(map[string]*domain.LeadValue)
	}

	query := `
		SELECT lead_id, field_key, value, source, locked, updated_at
		FROM lead_values
		WHERE lead_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query lead values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var leadID, fieldKey, source string
		var valueJSON []byte
		var locked bool
		var updatedAt time.Time

		if err := rows.Scan(&leadID, &fieldKey, &valueJSON, &source, &locked, &updatedAt); err != nil {
			return fmt.Errorf("failed to scan lead value: %w", err)
		}

		value, err := unmarshalValue(valueJSON)
		if err != nil {
			return err
		}

		if lead, ok := byID[leadID]; ok {
			lead.Values[fieldKey] = &domain.LeadValue{
				Value:     value,
				Source:    source,
				Locked:    locked,
				UpdatedAt: updatedAt,
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating lead value rows: %w", err)
	}

	return nil
}

// scanLead reads one lead row without its values
func scanLead(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Lead, error) {
	var lead domain.Lead
	var deletedAt domain.NullableTime

	err := scanner.Scan(
		&lead.ID,
		&lead.Stage,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.DeletedAt = deletedAt.Ptr()
	lead.Values = make(map[string]*domain.LeadValue)

	return &lead, nil
}

// scanLeadValue reads one value row keyed by field
func scanLeadValue(scanner interface {
	Scan(dest ...interface{}) error
}) (string, *domain.LeadValue, error) {
	var fieldKey, source string
	var valueJSON []byte
	var locked bool
	var updatedAt time.Time

	if err := scanner.Scan(&fieldKey, &valueJSON, &source, &locked, &updatedAt); err != nil {
		return "", nil, err
	}

	value, err := unmarshalValue(valueJSON)
	if err != nil {
		return "", nil, err
	}

	return fieldKey, &domain.LeadValue{
		Value:     value,
		Source:    source,
		Locked:    locked,
		UpdatedAt: updatedAt,
	}, nil
}

// marshalValue encodes a scalar value for the jsonb column, nil becomes NULL
func marshalValue(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	return data, nil
}

// unmarshalValue decodes a jsonb column, NULL stays nil
func unmarshalValue(data []byte) (interface{}, error) {
	if data == nil {
		return nil, nil
	}
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return value, nil
}

// encodeCursor creates a cursor string from timestamp and ID
func encodeCursor(timestamp time.Time, id string) string {
	cursorData := fmt.Sprintf("%s|%s", timestamp.Format(time.RFC3339Nano), id)
	return base64.StdEncoding.EncodeToString([]byte(cursorData))
}

// decodeCursor decodes a cursor string
func decodeCursor(cursor string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
