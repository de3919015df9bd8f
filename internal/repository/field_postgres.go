package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
)

type fieldRepository struct {
	db *sql.DB
}

// NewFieldRepository creates a new PostgreSQL field repository
func NewFieldRepository(db *sql.DB) domain.FieldRepository {
	return &fieldRepository{db: db}
}

func (r *fieldRepository) List(ctx context.Context, includeArchived bool) ([]*domain.Field, error) {
	query := `
		SELECT key, label, kind, options, required, position, archived_at, created_at, updated_at
		FROM crm_fields
	`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY position, key`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var fields []*domain.Field
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating field rows: %w", err)
	}

	return fields, nil
}

func (r *fieldRepository) Get(ctx context.Context, key string) (*domain.Field, error) {
	query := `
		SELECT key, label, kind, options, required, position, archived_at, created_at, updated_at
		FROM crm_fields
		WHERE key = $1
	`

	field, err := scanField(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrFieldNotFound{Message: fmt.Sprintf("field not found: %s", key)}
		}
		return nil, fmt.Errorf("failed to get field: %w", err)
	}

	return field, nil
}

func (r *fieldRepository) Create(ctx context.Context, field *domain.Field) error {
	optionsJSON, err := marshalOptions(field.Options)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO crm_fields (key, label, kind, options, required, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		field.Key,
		field.Label,
		field.Kind,
		optionsJSON,
		field.Required,
		field.Position,
		field.CreatedAt,
		field.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert field: %w", err)
	}

	return nil
}

func (r *fieldRepository) Update(ctx context.Context, field *domain.Field) error {
	optionsJSON, err := marshalOptions(field.Options)
	if err != nil {
		return err
	}

	// The kind is immutable once values exist, so it never appears here
	query := `
		UPDATE crm_fields
		SET label = $1, options = $2, required = $3, position = $4, updated_at = $5
		WHERE key = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		field.Label,
		optionsJSON,
		field.Required,
		field.Position,
		field.UpdatedAt,
		field.Key,
	)
	if err != nil {
		return fmt.Errorf("failed to update field: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrFieldNotFound{Message: fmt.Sprintf("field not found: %s", field.Key)}
	}

	return nil
}

func (r *fieldRepository) Archive(ctx context.Context, key string, archivedAt time.Time) error {
	// COALESCE keeps the original archive time on a repeated archive
	query := `
		UPDATE crm_fields
		SET archived_at = COALESCE(archived_at, $1), updated_at = $2
		WHERE key = $3
	`

	result, err := r.db.ExecContext(ctx, query, archivedAt, archivedAt, key)
	if err != nil {
		return fmt.Errorf("failed to archive field: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrFieldNotFound{Message: fmt.Sprintf("field not found: %s", key)}
	}

	return nil
}

func marshalOptions(options []string) ([]byte, error) {
	if options == nil {
		return nil, nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal options: %w", err)
	}
	return data, nil
}

func scanField(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Field, error) {
	var field domain.Field
	var optionsJSON []byte
	var archivedAt domain.NullableTime

	err := scanner.Scan(
		&field.Key,
		&field.Label,
		&field.Kind,
		&optionsJSON,
		&field.Required,
		&field.Position,
		&archivedAt,
		&field.CreatedAt,
		&field.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	field.ArchivedAt = archivedAt.Ptr()

	if optionsJSON != nil {
		if err := json.Unmarshal(optionsJSON, &field.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}
	}

	return &field, nil
}
