package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
)

type stageRepository struct {
	db *sql.DB
}

// NewStageRepository creates a new PostgreSQL stage repository
func NewStageRepository(db *sql.DB) domain.StageRepository {
	return &stageRepository{db: db}
}

func (r *stageRepository) List(ctx context.Context) ([]*domain.Stage, error) {
	query := `
		SELECT key, label, position, color, created_at, updated_at
		FROM pipeline_stages
		ORDER BY position, key
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stages: %w", err)
	}
	defer rows.Close()

	var stages []*domain.Stage
	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage: %w", err)
		}
		stages = append(stages, stage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stage rows: %w", err)
	}

	return stages, nil
}

func (r *stageRepository) Get(ctx context.Context, key string) (*domain.Stage, error) {
	query := `
		SELECT key, label, position, color, created_at, updated_at
		FROM pipeline_stages
		WHERE key = $1
	`

	stage, err := scanStage(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrStageNotFound{Message: fmt.Sprintf("stage not found: %s", key)}
		}
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}

	return stage, nil
}

func (r *stageRepository) Create(ctx context.Context, stage *domain.Stage) error {
	query := `
		INSERT INTO pipeline_stages (key, label, position, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		stage.Key,
		stage.Label,
		stage.Position,
		stage.Color,
		stage.CreatedAt,
		stage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stage: %w", err)
	}

	return nil
}

func (r *stageRepository) Update(ctx context.Context, stage *domain.Stage) error {
	query := `
		UPDATE pipeline_stages
		SET label = $1, position = $2, color = $3, updated_at = $4
		WHERE key = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		stage.Label,
		stage.Position,
		stage.Color,
		stage.UpdatedAt,
		stage.Key,
	)
	if err != nil {
		return fmt.Errorf("failed to update stage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrStageNotFound{Message: fmt.Sprintf("stage not found: %s", stage.Key)}
	}

	return nil
}

// DeleteWithMigration moves every lead of the stage to migrateTo and deletes
// the stage in one transaction, so no lead ever references a missing stage.
// Soft-deleted leads move too.
func (r *stageRepository) DeleteWithMigration(ctx context.Context, key string, migrateTo string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM pipeline_stages WHERE key = $1)`, migrateTo).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check migration target: %w", err)
	}
	if !exists {
		return 0, &domain.ErrStageNotFound{Message: fmt.Sprintf("migration target stage not found: %s", migrateTo)}
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE leads SET stage = $1, updated_at = $2 WHERE stage = $3`,
		migrateTo, time.Now().UTC(), key,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to migrate leads: %w", err)
	}

	moved, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	deleteResult, err := tx.ExecContext(ctx, `DELETE FROM pipeline_stages WHERE key = $1`, key)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stage: %w", err)
	}

	deleted, err := deleteResult.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if deleted == 0 {
		return 0, &domain.ErrStageNotFound{Message: fmt.Sprintf("stage not found: %s", key)}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return moved, nil
}

func scanStage(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Stage, error) {
	var stage domain.Stage

	err := scanner.Scan(
		&stage.Key,
		&stage.Label,
		&stage.Position,
		&stage.Color,
		&stage.CreatedAt,
		&stage.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &stage, nil
}
