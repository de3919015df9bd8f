package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// FieldService implements domain.FieldService
type FieldService struct {
	repo   domain.FieldRepository
	logger logger.Logger
}

// NewFieldService creates a new field service
func NewFieldService(repo domain.FieldRepository, logger logger.Logger) *FieldService {
	return &FieldService{
		repo:   repo,
		logger: logger,
	}
}

// ListFields returns fields in position order
func (s *FieldService) ListFields(ctx context.Context, includeArchived bool) ([]*domain.Field, error) {
	fields, err := s.repo.List(ctx, includeArchived)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to list fields: %v", err))
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	return fields, nil
}

// GetActiveFields returns non-archived fields keyed by field key
func (s *FieldService) GetActiveFields(ctx context.Context) (map[string]*domain.Field, error) {
	fields, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}

	byKey := make(map[string]*domain.Field, len(fields))
	for _, field := range fields {
		byKey[field.Key] = field
	}
	return byKey, nil
}

// CreateField creates a new field. Keys are permanent, so duplicates are
// rejected instead of upserted.
func (s *FieldService) CreateField(ctx context.Context, req *domain.CreateFieldRequest) (*domain.Field, error) {
	field, err := req.Validate()
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if _, err := s.repo.Get(ctx, field.Key); err == nil {
		return nil, domain.NewValidationError(fmt.Sprintf("field %s already exists", field.Key))
	} else {
		var notFound *domain.ErrFieldNotFound
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to check field: %w", err)
		}
	}

	if err := s.repo.Create(ctx, field); err != nil {
		s.logger.WithField("key", field.Key).Error(fmt.Sprintf("Failed to create field: %v", err))
		return nil, fmt.Errorf("failed to create field: %w", err)
	}

	return field, nil
}

// UpdateField updates label, options, required and position. The key and
// kind stay immutable so stored values never go stale against their field.
func (s *FieldService) UpdateField(ctx context.Context, req *domain.UpdateFieldRequest) (*domain.Field, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	field, err := s.repo.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	if field.Kind == domain.FieldKindSelect && len(req.Options) == 0 {
		return nil, domain.NewValidationError("select fields require options")
	}

	field.Label = req.Label
	field.Options = req.Options
	field.Required = req.Required
	field.Position = req.Position
	field.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, field); err != nil {
		s.logger.WithField("key", field.Key).Error(fmt.Sprintf("Failed to update field: %v", err))
		return nil, fmt.Errorf("failed to update field: %w", err)
	}

	return field, nil
}

// ArchiveField soft-archives a field. Existing values stay readable; new
// writes and CSV mappings reject the key. Archiving twice is a no-op.
func (s *FieldService) ArchiveField(ctx context.Context, key string) error {
	field, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if field.IsArchived() {
		return nil
	}

	if err := s.repo.Archive(ctx, key, time.Now().UTC()); err != nil {
		s.logger.WithField("key", key).Error(fmt.Sprintf("Failed to archive field: %v", err))
		return fmt.Errorf("failed to archive field: %w", err)
	}

	return nil
}
