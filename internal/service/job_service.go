package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/altocrm/altocrm/internal/domain"
	"github.com/altocrm/altocrm/pkg/logger"
)

// Defaults for the job runner knobs
const (
	defaultMaxJobRuntime     = 50 // seconds a job may run before timing out
	defaultMaxConcurrentJobs = 5
	defaultClaimBatchSize    = 10
	// Processing rows older than this are assumed orphaned by a dead
	// worker and go back to pending on the next poll
	defaultProcessingTimeout = 5 * time.Minute
)

// JobServiceConfig contains the configuration options for the job service
type JobServiceConfig struct {
	Repository        domain.JobRepository
	SettingRepo       domain.SettingRepository
	Logger            logger.Logger
	MaxRuntime        int   // seconds, per-job timeout
	MaxConcurrent     int64 // parallel job executions
	ProcessingTimeout time.Duration
}

// JobService manages the background job queue: enqueuing, claiming,
// dispatching to processors and recording outcomes
type JobService struct {
	repo              domain.JobRepository
	settingRepo       domain.SettingRepository
	logger            logger.Logger
	processors        map[string]domain.JobProcessor
	lock              sync.RWMutex
	sem               *semaphore.Weighted
	maxRuntime        int
	processingTimeout time.Duration
}

// NewJobService creates a new job service instance
func NewJobService(config JobServiceConfig) (*JobService, error) {
	if config.Repository == nil {
		return nil, fmt.Errorf("job repository is required")
	}
	if config.SettingRepo == nil {
		return nil, fmt.Errorf("setting repository is required")
	}
	if config.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	maxRuntime := config.MaxRuntime
	if maxRuntime <= 0 {
		maxRuntime = defaultMaxJobRuntime
	}
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentJobs
	}
	processingTimeout := config.ProcessingTimeout
	if processingTimeout <= 0 {
		processingTimeout = defaultProcessingTimeout
	}

	return &JobService{
		repo:              config.Repository,
		settingRepo:       config.SettingRepo,
		logger:            config.Logger,
		processors:        make(map[string]domain.JobProcessor),
		sem:               semaphore.NewWeighted(maxConcurrent),
		maxRuntime:        maxRuntime,
		processingTimeout: processingTimeout,
	}, nil
}

// RegisterProcessor registers a job processor for every kind it can handle
func (s *JobService) RegisterProcessor(processor domain.JobProcessor) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, kind := range getJobKinds() {
		if processor.CanProcess(kind) {
			s.processors[kind] = processor
			s.logger.WithField("kind", kind).Info("Registered job processor")
		}
	}
}

// getJobKinds returns all supported job kinds
func getJobKinds() []string {
	return []string{
		domain.JobKindLeadEnrich,
		domain.JobKindLeadsEnrichAll,
		domain.JobKindLeadsImport,
	}
}

// GetProcessor returns the processor for a given job kind
func (s *JobService) GetProcessor(kind string) (domain.JobProcessor, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	processor, ok := s.processors[kind]
	if !ok {
		return nil, fmt.Errorf("no processor registered for job kind: %s", kind)
	}

	return processor, nil
}

// CreateJob enqueues a new job
func (s *JobService) CreateJob(ctx context.Context, job *domain.Job) error {
	if job.MaxAttempts <= 0 {
		job.MaxAttempts = 3
	}
	if job.RetryInterval <= 0 {
		job.RetryInterval = 60
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.WithField("job_id", job.ID).WithField("kind", job.Kind).Info("Enqueued job")
	return nil
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.Get(ctx, id)
}

// ListJobs lists jobs based on filter criteria
func (s *JobService) ListJobs(ctx context.Context, filter domain.JobFilter) (*domain.JobListResponse, error) {
	jobs, totalCount, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	hasMore := (filter.Offset + len(jobs)) < totalCount

	return &domain.JobListResponse{
		Jobs:       jobs,
		TotalCount: totalCount,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
		HasMore:    hasMore,
	}, nil
}

// RetryJob moves a failed job back to pending with a fresh attempt budget
func (s *JobService) RetryJob(ctx context.Context, id string) error {
	if err := s.repo.ResetForRetry(ctx, id); err != nil {
		return err
	}

	s.logger.WithField("job_id", id).Info("Job re-queued for retry")
	return nil
}

// GetLastPollAt returns when the queue was last polled, nil if never
func (s *JobService) GetLastPollAt(ctx context.Context) (*time.Time, error) {
	return s.settingRepo.GetLastPollAt(ctx)
}

// ExecutePendingJobs runs one poll pass: reap stale processing rows,
// claim a batch of due jobs and dispatch each to its processor. The
// semaphore bounds how many run at once; a full pool delays the claim
// handoff, not the claim itself.
func (s *JobService) ExecutePendingJobs(ctx context.Context, maxJobs int) error {
	if maxJobs <= 0 {
		maxJobs = defaultClaimBatchSize
	}

	if err := s.settingRepo.SetLastPollAt(ctx); err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to record poll timestamp")
	}

	reaped, err := s.repo.ReapStaleJobs(ctx, s.processingTimeout)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to reap stale jobs")
	} else if reaped > 0 {
		s.logger.WithField("count", reaped).Warn("Re-queued stale processing jobs")
	}

	jobs, err := s.repo.ClaimDueJobs(ctx, maxJobs)
	if err != nil {
		return fmt.Errorf("failed to claim due jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil
	}

	s.logger.WithField("job_count", len(jobs)).Info("Claimed batch of jobs to process")

	for _, job := range jobs {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			// Shutdown while waiting for a slot. The unstarted jobs stay
			// processing and the reaper returns them to pending.
			return fmt.Errorf("failed to acquire worker slot: %w", err)
		}

		jobCtx, cancel := context.WithTimeout(ctx, time.Duration(s.maxRuntime)*time.Second)

		go func(job *domain.Job, ctx context.Context, cancel context.CancelFunc) {
			defer s.sem.Release(1)
			defer cancel()

			if err := s.ExecuteJob(ctx, job); err != nil {
				s.logger.WithField("job_id", job.ID).
					WithField("kind", job.Kind).
					WithField("error", err.Error()).
					Error("Failed to execute job")
			}
		}(job, jobCtx, cancel)
	}

	return nil
}

// ExecuteJob runs one claimed job to an outcome. The processor mutates
// the job in place: Result for the final summary, Payload and Progress
// for continuation checkpoints.
func (s *JobService) ExecuteJob(ctx context.Context, job *domain.Job) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	processor, err := s.GetProcessor(job.Kind)
	if err != nil {
		if markErr := s.repo.MarkAsFailed(ctx, job.ID, err.Error()); markErr != nil {
			s.logger.WithField("job_id", job.ID).
				WithField("error", markErr.Error()).
				Error("Failed to mark job as failed")
		}
		return err
	}

	done := make(chan bool, 1)
	processErr := make(chan error, 1)

	go func() {
		startTime := time.Now()
		completed, err := processor.Process(ctx, job)
		elapsed := time.Since(startTime)

		if err != nil {
			s.logger.WithField("job_id", job.ID).
				WithField("elapsed_time", elapsed).
				WithField("error", err.Error()).
				Error("Job processing failed")
			processErr <- err
			return
		}

		done <- completed
	}()

	select {
	case completed := <-done:
		if completed {
			if err := s.repo.MarkAsDone(ctx, job.ID, job.Result); err != nil {
				return fmt.Errorf("failed to mark job as done: %w", err)
			}
			s.logger.WithField("job_id", job.ID).WithField("kind", job.Kind).Info("Job completed")
		} else {
			if err := s.repo.MarkAsPending(ctx, job.ID, job.Progress, job.Payload); err != nil {
				return fmt.Errorf("failed to re-queue job: %w", err)
			}
			s.logger.WithField("job_id", job.ID).
				WithField("progress", job.Progress).
				Info("Job re-queued for continuation")
		}
	case err := <-processErr:
		// Keep whatever checkpoint the processor reached so a retry
		// resumes instead of repeating work
		if saveErr := s.repo.SaveProgress(ctx, job.ID, job.Progress, job.Payload); saveErr != nil {
			s.logger.WithField("job_id", job.ID).
				WithField("error", saveErr.Error()).
				Error("Failed to save job checkpoint")
		}
		if markErr := s.repo.MarkAsFailed(ctx, job.ID, err.Error()); markErr != nil {
			return fmt.Errorf("failed to mark job as failed: %w", markErr)
		}
		return fmt.Errorf("job processing error: %w", err)
	case <-ctx.Done():
		// The job context is dead, bookkeeping needs its own deadline
		markCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		errorMsg := "job execution was cancelled"
		if ctx.Err() == context.DeadlineExceeded {
			errorMsg = fmt.Sprintf("job timed out after %d seconds", s.maxRuntime)
			s.logger.WithField("job_id", job.ID).Warn(errorMsg)
		}
		if markErr := s.repo.MarkAsFailed(markCtx, job.ID, errorMsg); markErr != nil {
			return fmt.Errorf("failed to mark job as failed: %w", markErr)
		}
		return ctx.Err()
	}

	return nil
}
