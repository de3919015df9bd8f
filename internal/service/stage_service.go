package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// StageService implements domain.StageService
type StageService struct {
	repo   domain.StageRepository
	logger logger.Logger
}

// NewStageService creates a new stage service
func NewStageService(repo domain.StageRepository, logger logger.Logger) *StageService {
	return &StageService{
		repo:   repo,
		logger: logger,
	}
}

// ListStages returns stages in position order
func (s *StageService) ListStages(ctx context.Context) ([]*domain.Stage, error) {
	stages, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list stages: %v", err))
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	return stages, nil
}

// GetStage retrieves a stage by key
func (s *StageService) GetStage(ctx context.Context, key string) (*domain.Stage, error) {
	return s.repo.Get(ctx, key)
}

// CreateStage creates a new pipeline stage
func (s *StageService) CreateStage(ctx context.Context, req *domain.CreateStageRequest) (*domain.Stage, error) {
	stage, err := req.Validate()
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if _, err := s.repo.Get(ctx, stage.Key); err == nil {
		return nil, domain.NewValidationError(fmt.Sprintf("stage %s already exists", stage.Key))
	} else {
		var notFound *domain.ErrStageNotFound
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to check stage: %w", err)
		}
	}

	if err := s.repo.Create(ctx, stage); err != nil {
		s.logger.WithField("key", stage.Key).Error(fmt.Sprintf("Failed to create stage: %v", err))
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}

	return stage, nil
}

// UpdateStage updates label, position and color
func (s *StageService) UpdateStage(ctx context.Context, req *domain.UpdateStageRequest) (*domain.Stage, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	stage, err := s.repo.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	stage.Label = req.Label
	stage.Position = req.Position
	stage.Color = req.Color
	stage.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, stage); err != nil {
		s.logger.WithField("key", stage.Key).Error(fmt.Sprintf("Failed to update stage: %v", err))
		return nil, fmt.Errorf("failed to update stage: %w", err)
	}

	return stage, nil
}

// DeleteStage deletes a stage after moving its leads to the migration
// target. The last remaining stage cannot be deleted since every lead
// needs a stage to live in.
func (s *StageService) DeleteStage(ctx context.Context, req *domain.DeleteStageRequest) error {
	if err := req.Validate(); err != nil {
		return domain.NewValidationError(err.Error())
	}

	if _, err := s.repo.Get(ctx, req.Key); err != nil {
		return err
	}

	stages, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stages: %w", err)
	}
	if len(stages) <= 1 {
		return domain.NewValidationError("cannot delete the last stage")
	}

	moved, err := s.repo.DeleteWithMigration(ctx, req.Key, req.MigrateTo)
	if err != nil {
		s.logger.WithField("key", req.Key).Error(fmt.Sprintf("Failed to delete stage: %v", err))
		return err
	}

	s.logger.WithField("key", req.Key).
		WithField("migrate_to", req.MigrateTo).
		WithField("leads_moved", moved).
		Info("Deleted pipeline stage")

	return nil
}
