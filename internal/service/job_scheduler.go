package service

import (
	"context"
	"sync"
	"time"

	"github.com/altocrm/altocrm/pkg/logger"
	"github.com/altocrm/altocrm/pkg/tracing"
)

// JobExecutor defines the interface for running a poll pass
type JobExecutor interface {
	ExecutePendingJobs(ctx context.Context, maxJobs int) error
}

// JobScheduler polls the background_jobs table on a fixed interval
type JobScheduler struct {
	executor    JobExecutor
	logger      logger.Logger
	interval    time.Duration
	maxJobs     int
	stopChan    chan struct{}
	stoppedChan chan struct{}
	mu          sync.Mutex
	running     bool
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(
	executor JobExecutor,
	logger logger.Logger,
	interval time.Duration,
	maxJobs int,
) *JobScheduler {
	return &JobScheduler{
		executor:    executor,
		logger:      logger,
		interval:    interval,
		maxJobs:     maxJobs,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

// Start begins the polling loop
func (s *JobScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Job scheduler already running")
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.WithField("interval", s.interval).
		WithField("max_jobs", s.maxJobs).
		Info("Starting job scheduler")

	go s.run(ctx)
}

// Stop gracefully stops the scheduler
func (s *JobScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping job scheduler...")
	close(s.stopChan)

	// Wait for the loop to exit (with timeout)
	select {
	case <-s.stoppedChan:
		s.logger.Info("Job scheduler stopped successfully")
	case <-time.After(5 * time.Second):
		s.logger.Warn("Job scheduler stop timeout exceeded")
	}
}

// run is the main scheduler loop
func (s *JobScheduler) run(ctx context.Context) {
	defer close(s.stoppedChan)
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Poll immediately on start
	s.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Job scheduler context cancelled")
			return
		case <-s.stopChan:
			s.logger.Info("Job scheduler received stop signal")
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// poll runs one pass over the queue
func (s *JobScheduler) poll(ctx context.Context) {
	// codecov:ignore:start
	pollCtx, span := tracing.StartServiceSpan(ctx, "JobScheduler", "poll")
	defer tracing.EndSpan(span, nil)
	// codecov:ignore:end

	s.logger.Debug("Job scheduler tick - polling queue")

	startTime := time.Now()
	err := s.executor.ExecutePendingJobs(pollCtx, s.maxJobs)
	elapsed := time.Since(startTime)

	if err != nil {
		// codecov:ignore:start
		tracing.MarkSpanError(pollCtx, err)
		// codecov:ignore:end
		s.logger.WithField("error", err.Error()).
			WithField("elapsed", elapsed).
			Error("Failed to execute pending jobs")
	} else {
		s.logger.WithField("elapsed", elapsed).
			Debug("Queue poll completed")
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *JobScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
