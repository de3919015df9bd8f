package domain

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_job_service.go -package mocks github.com/altocrm/altocrm/internal/domain JobService
//go:generate mockgen -destination mocks/mock_job_repository.go -package mocks github.com/altocrm/altocrm/internal/domain JobRepository
//go:generate mockgen -destination mocks/mock_job_processor.go -package mocks github.com/altocrm/altocrm/internal/domain JobProcessor

// JobStatus represents the current state of a background job
type JobStatus string

const (
	// JobStatusPending is for jobs waiting to be claimed
	JobStatusPending JobStatus = "pending"
	// JobStatusProcessing is for jobs currently being executed
	JobStatusProcessing JobStatus = "processing"
	// JobStatusDone is for jobs that have completed successfully
	JobStatusDone JobStatus = "done"
	// JobStatusFailed is for jobs that exhausted their attempts
	JobStatusFailed JobStatus = "failed"
)

// Job kinds handled by the built-in processors
const (
	JobKindLeadEnrich     = "lead_enrich"
	JobKindLeadsEnrichAll = "leads_enrich_all"
	JobKindLeadsImport    = "leads_import"
)

// JobPayload carries the job input plus any checkpoint data a processor
// needs to resume after a continuation. Only one specialized section is
// populated, matching the job kind.
type JobPayload struct {
	// Common fields for all job kinds
	Offset  int    `json:"offset,omitempty"`
	Message string `json:"message,omitempty"`

	Enrich *EnrichJobPayload `json:"enrich,omitempty"`
	Import *ImportJobPayload `json:"import,omitempty"`
}

// Value implements the driver.Valuer interface for JobPayload
func (p JobPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements the sql.Scanner interface for JobPayload
func (p *JobPayload) Scan(value interface{}) error {
	if value == nil {
		*p = JobPayload{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}

	cloned := bytes.Clone(b)
	return json.Unmarshal(cloned, &p)
}

// EnrichJobPayload is the input for enrichment jobs. LeadID targets one
// lead; the batch kind leaves it empty and carries its page cursor and
// running counters between continuations instead.
type EnrichJobPayload struct {
	LeadID   string `json:"lead_id,omitempty"`
	Cursor   string `json:"cursor,omitempty"`
	Enriched int    `json:"enriched,omitempty"`
	Skipped  int    `json:"skipped,omitempty"`
}

// ImportJobPayload carries parsed CSV rows through the queue. RowOffset
// tracks how far the processor got between continuations, and the counters
// accumulate into the final job result.
type ImportJobPayload struct {
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	Upsert    bool       `json:"upsert"`
	RowOffset int        `json:"row_offset"`
	Imported  int        `json:"imported"`
	Failed    int        `json:"failed"`
	Errors    []string   `json:"errors,omitempty"`
}

// JobResult is the summary stored when a job reaches a terminal status
type JobResult struct {
	Message  string   `json:"message,omitempty"`
	Imported int      `json:"imported,omitempty"`
	Failed   int      `json:"failed,omitempty"`
	Enriched int      `json:"enriched,omitempty"`
	Skipped  int      `json:"skipped,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Value implements the driver.Valuer interface for JobResult
func (r JobResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface for JobResult
func (r *JobResult) Scan(value interface{}) error {
	if value == nil {
		*r = JobResult{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}

	cloned := bytes.Clone(b)
	return json.Unmarshal(cloned, &r)
}

// Job represents a background job processed by the polling queue. A
// processor may run a job in multiple steps: each step re-queues the job
// as pending with its payload updated to the latest checkpoint.
type Job struct {
	ID            string      `json:"id"`
	Kind          string      `json:"kind"`
	Status        JobStatus   `json:"status"`
	Payload       *JobPayload `json:"payload,omitempty"`
	Result        *JobResult  `json:"result,omitempty"`
	ErrorMessage  string      `json:"error_message,omitempty"`
	Progress      float64     `json:"progress"`
	Attempts      int         `json:"attempts"`
	MaxAttempts   int         `json:"max_attempts"`
	RetryInterval int         `json:"retry_interval"` // Retry delay base in seconds
	NextRunAfter  *time.Time  `json:"next_run_after,omitempty"`
	StartedAt     *time.Time  `json:"started_at,omitempty"`
	FinishedAt    *time.Time  `json:"finished_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type JobService interface {
	RegisterProcessor(processor JobProcessor)
	GetProcessor(kind string) (JobProcessor, error)
	CreateJob(ctx context.Context, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) (*JobListResponse, error)
	RetryJob(ctx context.Context, id string) error
	ExecutePendingJobs(ctx context.Context, maxJobs int) error
	ExecuteJob(ctx context.Context, job *Job) error
	GetLastPollAt(ctx context.Context) (*time.Time, error)
}

// JobRepository defines methods for job persistence
type JobRepository interface {
	// Transaction support
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error

	// Create adds a new job
	Create(ctx context.Context, job *Job) error
	CreateTx(ctx context.Context, tx *sql.Tx, job *Job) error

	// Get retrieves a job by ID
	Get(ctx context.Context, id string) (*Job, error)

	// List retrieves jobs with optional filtering
	List(ctx context.Context, filter JobFilter) ([]*Job, int, error)

	// ClaimDueJobs atomically selects due pending jobs with FOR UPDATE
	// SKIP LOCKED and flips them to processing in the same transaction.
	// Each claim increments the attempt counter.
	ClaimDueJobs(ctx context.Context, limit int) ([]*Job, error)

	// SaveProgress saves the checkpoint of a running job
	SaveProgress(ctx context.Context, id string, progress float64, payload *JobPayload) error

	// MarkAsDone marks a job as done and stores its result
	MarkAsDone(ctx context.Context, id string, result *JobResult) error

	// MarkAsFailed records a failed attempt. While attempts remain the job
	// goes back to pending with a backoff delay, otherwise it is failed.
	MarkAsFailed(ctx context.Context, id string, errorMsg string) error

	// MarkAsPending re-queues a job for continuation, keeping the payload
	// checkpoint written by the processor
	MarkAsPending(ctx context.Context, id string, progress float64, payload *JobPayload) error

	// ResetForRetry moves a failed job back to pending with a fresh
	// attempt budget
	ResetForRetry(ctx context.Context, id string) error

	// ReapStaleJobs re-queues processing jobs whose worker disappeared
	// (started_at older than the given timeout)
	ReapStaleJobs(ctx context.Context, olderThan time.Duration) (int64, error)
}

// JobFilter defines the filtering criteria for job listing
type JobFilter struct {
	Status        []JobStatus
	Kind          []string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         int
	Offset        int
}

// JobProcessor defines the interface for job execution
type JobProcessor interface {
	// Process executes or continues a job, returns whether the job has
	// finished. A false return with a nil error re-queues the job as
	// pending so the next poll continues from the payload checkpoint.
	Process(ctx context.Context, job *Job) (done bool, err error)

	// CanProcess returns whether this processor can handle the given job kind
	CanProcess(kind string) bool
}

// CreateJobRequest defines the request to enqueue a new job
type CreateJobRequest struct {
	Kind          string      `json:"kind"`
	Payload       *JobPayload `json:"payload,omitempty"`
	MaxAttempts   int         `json:"max_attempts"`
	RetryInterval int         `json:"retry_interval"`
	NextRunAfter  *time.Time  `json:"next_run_after,omitempty"`
}

// Validate validates the create job request
func (r *CreateJobRequest) Validate() (*Job, error) {
	if r.Kind == "" {
		return nil, fmt.Errorf("job kind is required")
	}

	job := &Job{
		Kind:          r.Kind,
		Status:        JobStatusPending,
		Payload:       r.Payload,
		MaxAttempts:   r.MaxAttempts,
		RetryInterval: r.RetryInterval,
		NextRunAfter:  r.NextRunAfter,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	// Set defaults if not provided
	if job.MaxAttempts <= 0 {
		job.MaxAttempts = 3
	}

	if job.RetryInterval <= 0 {
		job.RetryInterval = 60 // 1 minute default
	}

	return job, nil
}

// JobListResponse defines the response for listing jobs
type JobListResponse struct {
	Jobs       []*Job `json:"jobs"`
	TotalCount int    `json:"total_count"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	HasMore    bool   `json:"has_more"`
}

// GetJobRequest is used to extract query parameters for getting a single job
type GetJobRequest struct {
	ID string `json:"id"`
}

// FromURLParams parses URL query parameters into the request
func (r *GetJobRequest) FromURLParams(values url.Values) error {
	r.ID = values.Get("id")
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}

	return nil
}

// ListJobsRequest is used to extract query parameters for listing jobs
type ListJobsRequest struct {
	Status        []string `json:"status,omitempty"`
	Kind          []string `json:"kind,omitempty"`
	CreatedAfter  string   `json:"created_after,omitempty"`
	CreatedBefore string   `json:"created_before,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Offset        int      `json:"offset,omitempty"`
}

// FromURLParams parses URL query parameters into the request
func (r *ListJobsRequest) FromURLParams(values url.Values) error {
	if statusParam := values.Get("status"); statusParam != "" {
		r.Status = splitAndTrim(statusParam)
	}

	if kindParam := values.Get("kind"); kindParam != "" {
		r.Kind = splitAndTrim(kindParam)
	}

	r.CreatedAfter = values.Get("created_after")
	r.CreatedBefore = values.Get("created_before")

	if limitStr := values.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return fmt.Errorf("invalid limit parameter: %w", err)
		}
		r.Limit = limit
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return fmt.Errorf("invalid offset parameter: %w", err)
		}
		r.Offset = offset
	}

	return nil
}

// ToFilter converts the request to a JobFilter
func (r *ListJobsRequest) ToFilter() JobFilter {
	filter := JobFilter{
		Limit:  r.Limit,
		Offset: r.Offset,
	}

	// Set default limit if not provided
	if filter.Limit <= 0 {
		filter.Limit = 100 // Default page size
	}

	// Convert status strings to JobStatus
	if len(r.Status) > 0 {
		filter.Status = make([]JobStatus, len(r.Status))
		for i, s := range r.Status {
			filter.Status[i] = JobStatus(s)
		}
	}

	filter.Kind = r.Kind

	// Parse date filters
	if r.CreatedAfter != "" {
		if t, err := time.Parse(time.RFC3339, r.CreatedAfter); err == nil {
			filter.CreatedAfter = &t
		}
	}

	if r.CreatedBefore != "" {
		if t, err := time.Parse(time.RFC3339, r.CreatedBefore); err == nil {
			filter.CreatedBefore = &t
		}
	}

	return filter
}

// splitAndTrim splits a comma-separated string into an array and trims spaces
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}

	parts := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// RetryJobRequest defines the request to retry a failed job
type RetryJobRequest struct {
	ID string `json:"id"`
}

// Validate validates the retry job request
func (r *RetryJobRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("job id is required")
	}

	return nil
}

// ExecutePendingJobsRequest defines the request to run a poll pass manually
type ExecutePendingJobsRequest struct {
	MaxJobs int `json:"max_jobs,omitempty"`
}

// FromURLParams parses URL query parameters into the request
func (r *ExecutePendingJobsRequest) FromURLParams(values url.Values) error {
	if maxJobsStr := values.Get("max_jobs"); maxJobsStr != "" {
		maxJobs, err := strconv.Atoi(maxJobsStr)
		if err != nil {
			return fmt.Errorf("invalid max_jobs parameter: %w", err)
		}
		r.MaxJobs = maxJobs
	} else {
		r.MaxJobs = 10 // default value
	}

	return nil
}
