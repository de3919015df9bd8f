package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/internal/domain/mocks"
	pkgmocks "github.com/altocrm/altocrm/pkg/mocks"
)

func newJobServiceForTest(t *testing.T, ctrl *gomock.Controller) (*JobService, *mocks.MockJobRepository, *mocks.MockSettingRepository) {
	mockRepo := mocks.NewMockJobRepository(ctrl)
	mockSettingRepo := mocks.NewMockSettingRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	setupLoggerMock(mockLogger)

	svc, err := NewJobService(JobServiceConfig{
		Repository:  mockRepo,
		SettingRepo: mockSettingRepo,
		Logger:      mockLogger,
	})
	require.NoError(t, err)

	return svc, mockRepo, mockSettingRepo
}

func TestNewJobService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRepository(ctrl)
	mockSettingRepo := mocks.NewMockSettingRepository(ctrl)
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	setupLoggerMock(mockLogger)

	t.Run("missing repository", func(t *testing.T) {
		_, err := NewJobService(JobServiceConfig{SettingRepo: mockSettingRepo, Logger: mockLogger})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "job repository is required")
	})

	t.Run("missing setting repository", func(t *testing.T) {
		_, err := NewJobService(JobServiceConfig{Repository: mockRepo, Logger: mockLogger})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "setting repository is required")
	})

	t.Run("missing logger", func(t *testing.T) {
		_, err := NewJobService(JobServiceConfig{Repository: mockRepo, SettingRepo: mockSettingRepo})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})

	t.Run("defaults are applied", func(t *testing.T) {
		svc, err := NewJobService(JobServiceConfig{
			Repository:  mockRepo,
			SettingRepo: mockSettingRepo,
			Logger:      mockLogger,
		})
		require.NoError(t, err)
		assert.Equal(t, defaultMaxJobRuntime, svc.maxRuntime)
		assert.Equal(t, defaultProcessingTimeout, svc.processingTimeout)
	})
}

func TestJobService_RegisterProcessor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newJobServiceForTest(t, ctrl)

	mockProcessor := mocks.NewMockJobProcessor(ctrl)
	mockProcessor.EXPECT().CanProcess(domain.JobKindLeadEnrich).Return(true)
	mockProcessor.EXPECT().CanProcess(domain.JobKindLeadsEnrichAll).Return(true)
	mockProcessor.EXPECT().CanProcess(domain.JobKindLeadsImport).Return(false)

	svc.RegisterProcessor(mockProcessor)

	got, err := svc.GetProcessor(domain.JobKindLeadEnrich)
	require.NoError(t, err)
	assert.Equal(t, mockProcessor, got)

	_, err = svc.GetProcessor(domain.JobKindLeadsImport)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no processor registered")
}

func TestJobService_CreateJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newJobServiceForTest(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *domain.Job) error {
			assert.Equal(t, 3, job.MaxAttempts)
			assert.Equal(t, 60, job.RetryInterval)
			return nil
		})

	job := &domain.Job{
		ID:     uuid.New().String(),
		Kind:   domain.JobKindLeadEnrich,
		Status: domain.JobStatusPending,
	}
	err := svc.CreateJob(ctx, job)
	require.NoError(t, err)
}

func TestJobService_ListJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newJobServiceForTest(t, ctrl)
	ctx := context.Background()

	t.Run("reports more pages", func(t *testing.T) {
		jobs := []*domain.Job{{ID: "a"}, {ID: "b"}}
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(jobs, 10, nil)

		resp, err := svc.ListJobs(ctx, domain.JobFilter{Limit: 2, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 10, resp.TotalCount)
		assert.True(t, resp.HasMore)
	})

	t.Run("last page has no more", func(t *testing.T) {
		jobs := []*domain.Job{{ID: "c"}}
		mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(jobs, 3, nil)

		resp, err := svc.ListJobs(ctx, domain.JobFilter{Limit: 2, Offset: 2})

		require.NoError(t, err)
		assert.False(t, resp.HasMore)
	})
}

func TestJobService_ExecuteJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newJobServiceForTest(t, ctrl)

	mockProcessor := mocks.NewMockJobProcessor(ctrl)
	mockProcessor.EXPECT().CanProcess(domain.JobKindLeadEnrich).Return(true)
	mockProcessor.EXPECT().CanProcess(domain.JobKindLeadsEnrichAll).Return(false)
	mockProcessor.EXPECT().CanProcess(domain.JobKindLeadsImport).Return(false)
	svc.RegisterProcessor(mockProcessor)

	t.Run("no processor marks the job failed", func(t *testing.T) {
		ctx := context.Background()
		job := &domain.Job{ID: uuid.New().String(), Kind: domain.JobKindLeadsImport}

		mockRepo.EXPECT().
			MarkAsFailed(gomock.Any(), job.ID, gomock.Any()).
			Return(nil)

		err := svc.ExecuteJob(ctx, job)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no processor registered")
	})

	t.Run("completed job is marked done with its result", func(t *testing.T) {
		ctx := context.Background()
		job := &domain.Job{ID: uuid.New().String(), Kind: domain.JobKindLeadEnrich}

		mockProcessor.EXPECT().
			Process(gomock.Any(), job).
			DoAndReturn(func(_ context.Context, j *domain.Job) (bool, error) {
				j.Result = &domain.JobResult{Message: "done", Enriched: 2}
				return true, nil
			})
		mockRepo.EXPECT().
			MarkAsDone(gomock.Any(), job.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, result *domain.JobResult) error {
				assert.Equal(t, 2, result.Enriched)
				return nil
			})

		err := svc.ExecuteJob(ctx, job)
		require.NoError(t, err)
	})

	t.Run("unfinished job is re-queued with its checkpoint", func(t *testing.T) {
		ctx := context.Background()
		job := &domain.Job{ID: uuid.New().String(), Kind: domain.JobKindLeadEnrich}

		mockProcessor.EXPECT().
			Process(gomock.Any(), job).
			DoAndReturn(func(_ context.Context, j *domain.Job) (bool, error) {
				j.Progress = 40
				j.Payload = &domain.JobPayload{Enrich: &domain.EnrichJobPayload{Cursor: "page-2"}}
				return false, nil
			})
		mockRepo.EXPECT().
			MarkAsPending(gomock.Any(), job.ID, float64(40), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ float64, payload *domain.JobPayload) error {
				assert.Equal(t, "page-2", payload.Enrich.Cursor)
				return nil
			})

		err := svc.ExecuteJob(ctx, job)
		require.NoError(t, err)
	})

	t.Run("processor error saves the checkpoint and fails the job", func(t *testing.T) {
		ctx := context.Background()
		job := &domain.Job{ID: uuid.New().String(), Kind: domain.JobKindLeadEnrich}

		mockProcessor.EXPECT().
			Process(gomock.Any(), job).
			DoAndReturn(func(_ context.Context, j *domain.Job) (bool, error) {
				j.Progress = 25
				return false, fmt.Errorf("boom")
			})
		mockRepo.EXPECT().SaveProgress(gomock.Any(), job.ID, float64(25), gomock.Any()).Return(nil)
		mockRepo.EXPECT().MarkAsFailed(gomock.Any(), job.ID, "boom").Return(nil)

		err := svc.ExecuteJob(ctx, job)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "job processing error")
	})

	t.Run("timed out job is marked failed", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		job := &domain.Job{ID: uuid.New().String(), Kind: domain.JobKindLeadEnrich}

		mockProcessor.EXPECT().
			Process(gomock.Any(), job).
			DoAndReturn(func(ctx context.Context, _ *domain.Job) (bool, error) {
				<-ctx.Done()
				return false, ctx.Err()
			})
		mockRepo.EXPECT().
			MarkAsFailed(gomock.Any(), job.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, errorMsg string) error {
				assert.Contains(t, errorMsg, "timed out")
				return nil
			})

		err := svc.ExecuteJob(ctx, job)

		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestJobService_ExecutePendingJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockSettingRepo := newJobServiceForTest(t, ctrl)

	mockProcessor := mocks.NewMockJobProcessor(ctrl)
	mockProcessor.EXPECT().CanProcess(gomock.Any()).Return(true).AnyTimes()
	svc.RegisterProcessor(mockProcessor)

	t.Run("claims a batch and dispatches each job", func(t *testing.T) {
		ctx := context.Background()

		jobs := []*domain.Job{
			{ID: uuid.New().String(), Kind: domain.JobKindLeadEnrich},
			{ID: uuid.New().String(), Kind: domain.JobKindLeadEnrich},
		}

		mockSettingRepo.EXPECT().SetLastPollAt(gomock.Any()).Return(nil)
		mockRepo.EXPECT().ReapStaleJobs(gomock.Any(), defaultProcessingTimeout).Return(int64(0), nil)
		mockRepo.EXPECT().ClaimDueJobs(gomock.Any(), 5).Return(jobs, nil)

		mockProcessor.EXPECT().
			Process(gomock.Any(), gomock.Any()).
			Return(true, nil).Times(2)

		finished := make(chan string, 2)
		mockRepo.EXPECT().
			MarkAsDone(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, id string, _ *domain.JobResult) error {
				finished <- id
				return nil
			}).Times(2)

		err := svc.ExecutePendingJobs(ctx, 5)
		require.NoError(t, err)

		// The dispatched goroutines finish on their own clock
		for i := 0; i < len(jobs); i++ {
			select {
			case <-finished:
			case <-time.After(2 * time.Second):
				t.Fatal("job execution did not finish in time")
			}
		}
		// Let the workers wrap up their logging before the controller checks
		time.Sleep(50 * time.Millisecond)
	})

	t.Run("empty queue is a quiet pass", func(t *testing.T) {
		ctx := context.Background()

		mockSettingRepo.EXPECT().SetLastPollAt(gomock.Any()).Return(nil)
		mockRepo.EXPECT().ReapStaleJobs(gomock.Any(), defaultProcessingTimeout).Return(int64(0), nil)
		mockRepo.EXPECT().ClaimDueJobs(gomock.Any(), defaultClaimBatchSize).Return([]*domain.Job{}, nil)

		err := svc.ExecutePendingJobs(ctx, 0)
		require.NoError(t, err)
	})

	t.Run("claim failure is returned", func(t *testing.T) {
		ctx := context.Background()

		mockSettingRepo.EXPECT().SetLastPollAt(gomock.Any()).Return(nil)
		mockRepo.EXPECT().ReapStaleJobs(gomock.Any(), defaultProcessingTimeout).Return(int64(0), nil)
		mockRepo.EXPECT().ClaimDueJobs(gomock.Any(), 5).Return(nil, errors.New("connection refused"))

		err := svc.ExecutePendingJobs(ctx, 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to claim due jobs")
	})

	t.Run("reap failure does not block the poll", func(t *testing.T) {
		ctx := context.Background()

		mockSettingRepo.EXPECT().SetLastPollAt(gomock.Any()).Return(nil)
		mockRepo.EXPECT().ReapStaleJobs(gomock.Any(), defaultProcessingTimeout).Return(int64(0), errors.New("deadlock"))
		mockRepo.EXPECT().ClaimDueJobs(gomock.Any(), 5).Return([]*domain.Job{}, nil)

		err := svc.ExecutePendingJobs(ctx, 5)
		require.NoError(t, err)
	})
}

func TestJobService_RetryJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _ := newJobServiceForTest(t, ctrl)
	ctx := context.Background()
	jobID := uuid.New().String()

	t.Run("resets the job for retry", func(t *testing.T) {
		mockRepo.EXPECT().ResetForRetry(gomock.Any(), jobID).Return(nil)

		err := svc.RetryJob(ctx, jobID)
		require.NoError(t, err)
	})

	t.Run("missing job passes through not found", func(t *testing.T) {
		mockRepo.EXPECT().
			ResetForRetry(gomock.Any(), jobID).
			Return(&domain.ErrJobNotFound{Message: "job not found"})

		err := svc.RetryJob(ctx, jobID)

		require.Error(t, err)
		var notFound *domain.ErrJobNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestJobService_GetLastPollAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSettingRepo := newJobServiceForTest(t, ctrl)
	ctx := context.Background()

	lastPoll := time.Now().UTC().Add(-2 * time.Second)
	mockSettingRepo.EXPECT().GetLastPollAt(gomock.Any()).Return(&lastPoll, nil)

	got, err := svc.GetLastPollAt(ctx)

	require.NoError(t, err)
	assert.Equal(t, &lastPoll, got)
}
