package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/internal/domain/mocks"
	pkgmocks "github.com/altocrm/altocrm/pkg/mocks"
)

func TestStageService_CreateStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStageRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	setupLoggerMock(mockLogger)

	svc := NewStageService(mockRepo, mockLogger)

	t.Run("creates a new stage", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.EXPECT().Get(gomock.Any(), "negotiation").Return(nil, &domain.ErrStageNotFound{Message: "stage not found"})
		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, stage *domain.Stage) error {
				assert.Equal(t, "negotiation", stage.Key)
				assert.Equal(t, "Negotiation", stage.Label)
				return nil
			})

		stage, err := svc.CreateStage(ctx, &domain.CreateStageRequest{
			Key:      "negotiation",
			Label:    "Negotiation",
			Position: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, "negotiation", stage.Key)
	})

	t.Run("duplicate key is rejected", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.EXPECT().Get(gomock.Any(), "new").Return(&domain.Stage{Key: "new"}, nil)

		_, err := svc.CreateStage(ctx, &domain.CreateStageRequest{
			Key:   "new",
			Label: "New",
		})

		require.Error(t, err)
		var vErr domain.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("missing label is rejected", func(t *testing.T) {
		ctx := context.Background()

		_, err := svc.CreateStage(ctx, &domain.CreateStageRequest{Key: "negotiation"})

		require.Error(t, err)
		var vErr domain.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})
}

func TestStageService_UpdateStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStageRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	setupLoggerMock(mockLogger)

	svc := NewStageService(mockRepo, mockLogger)
	ctx := context.Background()

	mockRepo.EXPECT().Get(gomock.Any(), "won").Return(&domain.Stage{
		Key:   "won",
		Label: "Won",
	}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, stage *domain.Stage) error {
			assert.Equal(t, "Closed Won", stage.Label)
			assert.Equal(t, "#00aa00", stage.Color)
			return nil
		})

	stage, err := svc.UpdateStage(ctx, &domain.UpdateStageRequest{
		Key:   "won",
		Label: "Closed Won",
		Color: "#00aa00",
	})

	require.NoError(t, err)
	assert.Equal(t, "Closed Won", stage.Label)
}

func TestStageService_DeleteStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockStageRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	setupLoggerMock(mockLogger)

	svc := NewStageService(mockRepo, mockLogger)

	stages := []*domain.Stage{
		{Key: "new", Label: "New", Position: 0},
		{Key: "lost", Label: "Lost", Position: 1},
	}

	t.Run("deletes a stage and migrates its leads", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.EXPECT().Get(gomock.Any(), "lost").Return(stages[1], nil)
		mockRepo.EXPECT().List(gomock.Any()).Return(stages, nil)
		mockRepo.EXPECT().DeleteWithMigration(gomock.Any(), "lost", "new").Return(int64(4), nil)

		err := svc.DeleteStage(ctx, &domain.DeleteStageRequest{Key: "lost", MigrateTo: "new"})
		require.NoError(t, err)
	})

	t.Run("the last stage cannot be deleted", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.EXPECT().Get(gomock.Any(), "new").Return(stages[0], nil)
		mockRepo.EXPECT().List(gomock.Any()).Return(stages[:1], nil)

		err := svc.DeleteStage(ctx, &domain.DeleteStageRequest{Key: "new", MigrateTo: "lost"})

		require.Error(t, err)
		var vErr domain.ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Contains(t, err.Error(), "last stage")
	})

	t.Run("migration target must differ from the deleted stage", func(t *testing.T) {
		ctx := context.Background()

		err := svc.DeleteStage(ctx, &domain.DeleteStageRequest{Key: "lost", MigrateTo: "lost"})

		require.Error(t, err)
		var vErr domain.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("missing stage passes through not found", func(t *testing.T) {
		ctx := context.Background()

		mockRepo.EXPECT().Get(gomock.Any(), "bogus").Return(nil, &domain.ErrStageNotFound{Message: "stage not found"})

		err := svc.DeleteStage(ctx, &domain.DeleteStageRequest{Key: "bogus", MigrateTo: "new"})

		require.Error(t, err)
		var notFound *domain.ErrStageNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}
