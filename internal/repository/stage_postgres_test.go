package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/internal/repository/testutil"
)

func stageColumns() []string {
	return []string{"key", "label", "position", "color", "created_at", "updated_at"}
}

func TestStageRepository_List(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewStageRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(stageColumns()).
		AddRow("new", "New", 0, "#3b82f6", now, now).
		AddRow("contacted", "Contacted", 1, "#f59e0b", now, now).
		AddRow("won", "Won", 2, "#10b981", now, now)

	mock.ExpectQuery(`SELECT key, label, position, color, created_at, updated_at FROM pipeline_stages ORDER BY position, key`).
		WillReturnRows(rows)

	stages, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, "new", stages[0].Key)
	assert.Equal(t, 1, stages[1].Position)
	assert.Equal(t, "#10b981", stages[2].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageRepository_Get(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewStageRepository(db)
	now := time.Now().UTC()

	// Test case 1: Stage found
	rows := sqlmock.NewRows(stageColumns()).
		AddRow("won", "Won", 2, "#10b981", now, now)

	mock.ExpectQuery(`SELECT key, label, position, color, created_at, updated_at FROM pipeline_stages WHERE key = \$1`).
		WithArgs("won").
		WillReturnRows(rows)

	stage, err := repo.Get(context.Background(), "won")
	require.NoError(t, err)
	assert.Equal(t, "won", stage.Key)
	assert.Equal(t, "Won", stage.Label)

	// Test case 2: Stage not found
	mock.ExpectQuery(`SELECT key, label, position, color, created_at, updated_at FROM pipeline_stages WHERE key = \$1`).
		WithArgs("nonexistent").
		WillReturnError(sql.ErrNoRows)

	stage, err = repo.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Nil(t, stage)
	assert.IsType(t, &domain.ErrStageNotFound{}, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewStageRepository(db)
	now := time.Now().UTC()

	stage := &domain.Stage{
		Key:       "negotiating",
		Label:     "Negotiating",
		Position:  3,
		Color:     "#8b5cf6",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO pipeline_stages").
		WithArgs(stage.Key, stage.Label, stage.Position, stage.Color, stage.CreatedAt, stage.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), stage)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageRepository_Update(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewStageRepository(db)
	now := time.Now().UTC()

	stage := &domain.Stage{
		Key:       "won",
		Label:     "Closed Won",
		Position:  5,
		Color:     "#10b981",
		UpdatedAt: now,
	}

	// Test case 1: Stage updated
	mock.ExpectExec("UPDATE pipeline_stages SET").
		WithArgs(stage.Label, stage.Position, stage.Color, stage.UpdatedAt, stage.Key).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), stage)
	require.NoError(t, err)

	// Test case 2: Stage not found
	mock.ExpectExec("UPDATE pipeline_stages SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(context.Background(), stage)
	require.Error(t, err)
	assert.IsType(t, &domain.ErrStageNotFound{}, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageRepository_DeleteWithMigration(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewStageRepository(db)

	// Test case 1: Stage deleted, leads moved
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM pipeline_stages WHERE key = \$1\)`).
		WithArgs("new").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("UPDATE leads SET stage = .*").
		WithArgs("new", sqlmock.AnyArg(), "stale").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM pipeline_stages WHERE key = .*").
		WithArgs("stale").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	moved, err := repo.DeleteWithMigration(context.Background(), "stale", "new")
	require.NoError(t, err)
	assert.Equal(t, int64(4), moved)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Test case 2: Migration target missing
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM pipeline_stages WHERE key = \$1\)`).
		WithArgs("nonexistent").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	moved, err = repo.DeleteWithMigration(context.Background(), "stale", "nonexistent")
	require.Error(t, err)
	assert.IsType(t, &domain.ErrStageNotFound{}, err)
	assert.Equal(t, int64(0), moved)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Test case 3: Stage to delete missing
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM pipeline_stages WHERE key = \$1\)`).
		WithArgs("new").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("UPDATE leads SET stage = .*").
		WithArgs("new", sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM pipeline_stages WHERE key = .*").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	moved, err = repo.DeleteWithMigration(context.Background(), "ghost", "new")
	require.Error(t, err)
	assert.IsType(t, &domain.ErrStageNotFound{}, err)
	assert.Equal(t, int64(0), moved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
