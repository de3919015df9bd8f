package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/altocrm/altocrm/internal/domain"
)

// undoableOperations mirrors domain.IsUndoableOperation for SQL filtering
var undoableOperations = []string{
	domain.AuditOpUpdate,
	domain.AuditOpStageChange,
	domain.AuditOpEnrich,
}

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new PostgreSQL audit log repository
func NewAuditRepository(db *sql.DB) domain.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CreateTx(ctx context.Context, tx *sql.Tx, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO lead_audit_logs (id, lead_id, field_key, operation, old_value, new_value, source, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.ExecContext(ctx, query,
		entry.ID,
		entry.LeadID,
		entry.FieldKey,
		entry.Operation,
		entry.OldValue,
		entry.NewValue,
		entry.Source,
		entry.Actor,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return nil
}

func (r *auditRepository) ListByLead(ctx context.Context, leadID string, limit int, cursor string) ([]*domain.AuditEntry, string, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	q := psql.Select("id", "lead_id", "field_key", "operation", "old_value", "new_value", "source", "actor", "created_at").
		From("lead_audit_logs").
		Where(sq.Eq{"lead_id": leadID})

	if cursor != "" {
		decodedCursor, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", err)
		}

		// Cursor format: "timestamp|id"
		parts := strings.Split(decodedCursor, "|")
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("invalid cursor format")
		}

		cursorTime, err := time.Parse(time.RFC3339Nano, parts[0])
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor timestamp: %w", err)
		}
		cursorID := parts[1]

		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", cursorTime, cursorTime, cursorID)
	}

	// Fetch one extra row to determine if there's a next page
	q = q.OrderBy("created_at DESC", "id DESC").Limit(uint64(limit + 1))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build audit query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating audit rows: %w", err)
	}

	var nextCursor string
	if len(entries) > limit {
		last := entries[limit-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
		entries = entries[:limit]
	}

	return entries, nextCursor, nil
}

func (r *auditRepository) GetLatestUndoableTx(ctx context.Context, tx *sql.Tx, leadID string) (*domain.AuditEntry, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Select("id", "lead_id", "field_key", "operation", "old_value", "new_value", "source", "actor", "created_at").
		From("lead_audit_logs").
		Where(sq.Eq{
			"lead_id":   leadID,
			"operation": undoableOperations,
		}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		Suffix("FOR UPDATE")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	entry, err := scanAuditEntry(tx.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrAuditEntryNotFound{Message: "no undoable audit entry for lead"}
		}
		return nil, fmt.Errorf("failed to get latest undoable entry: %w", err)
	}

	return entry, nil
}

func scanAuditEntry(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.AuditEntry, error) {
	var entry domain.AuditEntry
	var fieldKey domain.NullableString

	err := scanner.Scan(
		&entry.ID,
		&entry.LeadID,
		&fieldKey,
		&entry.Operation,
		&entry.OldValue,
		&entry.NewValue,
		&entry.Source,
		&entry.Actor,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.FieldKey = fieldKey.Ptr()

	return &entry, nil
}
