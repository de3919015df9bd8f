package domain

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

//go:generate mockgen -destination mocks/mock_stage_service.go -package mocks github.com/altocrm/altocrm/internal/domain StageService
//go:generate mockgen -destination mocks/mock_stage_repository.go -package mocks github.com/altocrm/altocrm/internal/domain StageRepository

var stageKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Stage represents one column of the pipeline board
type Stage struct {
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	Position  int       `json:"position"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateStageRequest defines the request to create a pipeline stage
type CreateStageRequest struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Position int    `json:"position"`
	Color    string `json:"color,omitempty"`
}

// Validate validates the request and builds the stage
func (r *CreateStageRequest) Validate() (*Stage, error) {
	if r.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	if !stageKeyRegex.MatchString(r.Key) {
		return nil, fmt.Errorf("key must be snake_case starting with a letter")
	}
	if len(r.Key) > 32 {
		return nil, fmt.Errorf("key cannot exceed 32 characters")
	}
	if r.Label == "" {
		return nil, fmt.Errorf("label is required")
	}

	now := time.Now().UTC()
	return &Stage{
		Key:       r.Key,
		Label:     r.Label,
		Position:  r.Position,
		Color:     r.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateStageRequest defines the request to update a pipeline stage
type UpdateStageRequest struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Position int    `json:"position"`
	Color    string `json:"color,omitempty"`
}

// Validate validates the request
func (r *UpdateStageRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("key is required")
	}
	if r.Label == "" {
		return fmt.Errorf("label is required")
	}
	return nil
}

// DeleteStageRequest defines the request to delete a stage. Leads still
// in the stage are moved to MigrateTo, which is why it is mandatory.
type DeleteStageRequest struct {
	Key       string `json:"key"`
	MigrateTo string `json:"migrate_to"`
}

// Validate validates the request
func (r *DeleteStageRequest) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("key is required")
	}
	if r.MigrateTo == "" {
		return fmt.Errorf("migrate_to is required")
	}
	if r.MigrateTo == r.Key {
		return fmt.Errorf("migrate_to cannot equal the stage being deleted")
	}
	return nil
}

// StageService provides operations for managing pipeline stages
type StageService interface {
	// ListStages returns stages in position order
	ListStages(ctx context.Context) ([]*Stage, error)

	// GetStage retrieves a stage by key
	GetStage(ctx context.Context, key string) (*Stage, error)

	// CreateStage creates a new stage
	CreateStage(ctx context.Context, req *CreateStageRequest) (*Stage, error)

	// UpdateStage updates label, position and color
	UpdateStage(ctx context.Context, req *UpdateStageRequest) (*Stage, error)

	// DeleteStage deletes a stage after migrating its leads
	DeleteStage(ctx context.Context, req *DeleteStageRequest) error
}

// StageRepository defines methods for stage persistence
type StageRepository interface {
	// List returns stages in position order
	List(ctx context.Context) ([]*Stage, error)

	// Get retrieves a stage by key
	Get(ctx context.Context, key string) (*Stage, error)

	// Create inserts a new stage
	Create(ctx context.Context, stage *Stage) error

	// Update updates an existing stage
	Update(ctx context.Context, stage *Stage) error

	// DeleteWithMigration moves leads out of the stage and deletes it
	// in a single transaction. Returns the number of leads moved.
	DeleteWithMigration(ctx context.Context, key string, migrateTo string) (int64, error)
}

// ErrStageNotFound is returned when a stage is not found
type ErrStageNotFound struct {
	Message string
}

func (e *ErrStageNotFound) Error() string {
	return e.Message
}
