package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/altocrm/altocrm/internal/domain"
	"github.com/google/uuid"
)

const jobColumns = `id, kind, status, payload, result, error_message, progress,
		attempts, max_attempts, retry_interval, next_run_after, started_at,
		finished_at, created_at, updated_at`

var jobSelectColumns = []string{
	"id", "kind", "status", "payload", "result", "error_message", "progress",
	"attempts", "max_attempts", "retry_interval", "next_run_after", "started_at",
	"finished_at", "created_at", "updated_at",
}

// JobRepository implements the domain.JobRepository interface using PostgreSQL
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository instance
func NewJobRepository(db *sql.DB) domain.JobRepository {
	return &JobRepository{
		db: db,
	}
}

// WithTransaction executes a function within a transaction. Claiming and
// status transitions go through here so that a crashed worker releases its
// row locks instead of wedging the queue.
func (r *JobRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback is a no-op after a successful commit
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Create adds a new job
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		return r.CreateTx(ctx, tx, job)
	})
}

// CreateTx adds a new job within a transaction
func (r *JobRepository) CreateTx(ctx context.Context, tx *sql.Tx, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	if job.Status == "" {
		job.Status = domain.JobStatusPending
	}

	var payloadJSON []byte
	if job.Payload != nil {
		var err error
		payloadJSON, err = json.Marshal(job.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
	}

	if job.NextRunAfter != nil {
		nextRunAfter := job.NextRunAfter.UTC()
		job.NextRunAfter = &nextRunAfter
	}

	query := `
		INSERT INTO background_jobs (
			id, kind, status, payload, error_message, progress,
			attempts, max_attempts, retry_interval, next_run_after,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		job.ID,
		job.Kind,
		job.Status,
		payloadJSON,
		job.ErrorMessage,
		job.Progress,
		job.Attempts,
		job.MaxAttempts,
		job.RetryInterval,
		job.NextRunAfter,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// Get retrieves a job by ID
func (r *JobRepository) Get(ctx context.Context, id string) (*domain.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM background_jobs WHERE id = $1`, jobColumns)

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrJobNotFound{Message: fmt.Sprintf("job not found: %s", id)}
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// List retrieves jobs with optional filtering
func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, int, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countQuery := psql.Select("COUNT(*)").From("background_jobs")
	countQuery = applyJobFilter(countQuery, filter)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int
	err = r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	dataQuery := psql.Select(jobSelectColumns...).From("background_jobs")
	dataQuery = applyJobFilter(dataQuery, filter)
	dataQuery = dataQuery.
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit))

	if filter.Offset > 0 {
		dataQuery = dataQuery.Offset(uint64(filter.Offset))
	}

	dataSQL, dataArgs, err := dataQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build jobs query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, dataSQL, dataArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating job rows: %w", err)
	}

	return jobs, totalCount, nil
}

// ClaimDueJobs selects due pending jobs and flips them to processing in the
// same transaction. FOR UPDATE SKIP LOCKED keeps concurrent pollers from
// claiming the same rows; the attempt counter moves on claim so a worker
// crash still consumes an attempt.
func (r *JobRepository) ClaimDueJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	var jobs []*domain.Job

	err := r.WithTransaction(ctx, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

		query := psql.Select(jobSelectColumns...).
			From("background_jobs").
			Where(sq.And{
				sq.Eq{"status": string(domain.JobStatusPending)},
				sq.Or{
					sq.Eq{"next_run_after": nil},
					sq.LtOrEq{"next_run_after": now},
				},
			}).
			OrderBy("next_run_after NULLS FIRST, created_at").
			Limit(uint64(limit)).
			Suffix("FOR UPDATE SKIP LOCKED")

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build claim query: %w", err)
		}

		rows, err := tx.QueryContext(ctx, sqlQuery, args...)
		if err != nil {
			return fmt.Errorf("failed to select due jobs: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			job, err := scanJob(rows)
			if err != nil {
				return fmt.Errorf("failed to scan job row: %w", err)
			}
			jobs = append(jobs, job)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating job rows: %w", err)
		}

		if len(jobs) == 0 {
			return nil
		}

		ids := make([]string, len(jobs))
		for i, job := range jobs {
			ids[i] = job.ID
		}

		update := psql.Update("background_jobs").
			Set("status", string(domain.JobStatusProcessing)).
			Set("started_at", now).
			Set("updated_at", now).
			Set("attempts", sq.Expr("attempts + 1")).
			Where(sq.Eq{"id": ids})

		updateSQL, updateArgs, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build claim update: %w", err)
		}

		if _, err := tx.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
			return fmt.Errorf("failed to mark jobs as processing: %w", err)
		}

		for _, job := range jobs {
			job.Status = domain.JobStatusProcessing
			startedAt := now
			job.StartedAt = &startedAt
			job.UpdatedAt = now
			job.Attempts++
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// SaveProgress saves the checkpoint of a running job
func (r *JobRepository) SaveProgress(ctx context.Context, id string, progress float64, payload *domain.JobPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	now := time.Now().UTC()
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Update("background_jobs").
		Set("progress", progress).
		Set("payload", payloadJSON).
		Set("updated_at", now).
		Where(sq.Eq{
			"id":     id,
			"status": string(domain.JobStatusProcessing),
		})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("failed to save job progress: %w", err)
	}

	return nil
}

// MarkAsDone marks a job as done and stores its result
func (r *JobRepository) MarkAsDone(ctx context.Context, id string, result *domain.JobResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	now := time.Now().UTC()
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Update("background_jobs").
		Set("status", string(domain.JobStatusDone)).
		Set("progress", 100).
		Set("result", resultJSON).
		Set("error_message", "").
		Set("updated_at", now).
		Set("finished_at", now).
		Set("next_run_after", nil).
		Where(sq.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to mark job as done: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrJobNotFound{Message: fmt.Sprintf("job not found: %s", id)}
	}

	return nil
}

// MarkAsFailed records a failed attempt. While attempts remain the job is
// re-queued as pending with a linear backoff of attempts * retry_interval,
// otherwise it becomes failed.
func (r *JobRepository) MarkAsFailed(ctx context.Context, id string, errorMsg string) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`SELECT %s FROM background_jobs WHERE id = $1 FOR UPDATE`, jobColumns)

		job, err := scanJob(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &domain.ErrJobNotFound{Message: fmt.Sprintf("job not found: %s", id)}
			}
			return fmt.Errorf("failed to get job for retry check: %w", err)
		}

		now := time.Now().UTC()
		newStatus := domain.JobStatusFailed

		var nextRunAfter *time.Time
		var finishedAt *time.Time
		if job.Attempts < job.MaxAttempts {
			retryTime := now.Add(time.Duration(job.Attempts*job.RetryInterval) * time.Second)
			nextRunAfter = &retryTime
			newStatus = domain.JobStatusPending
		} else {
			finishedAt = &now
		}

		psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		update := psql.Update("background_jobs").
			Set("status", string(newStatus)).
			Set("error_message", errorMsg).
			Set("updated_at", now).
			Set("next_run_after", nextRunAfter).
			Set("finished_at", finishedAt).
			Where(sq.Eq{"id": id})

		updateSQL, args, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, updateSQL, args...); err != nil {
			return fmt.Errorf("failed to mark job as failed: %w", err)
		}

		return nil
	})
}

// MarkAsPending re-queues a processing job for continuation, keeping the
// payload checkpoint written by the processor. The attempt budget is not
// consumed by a voluntary continuation, so the claim-time increment is
// rolled back here.
func (r *JobRepository) MarkAsPending(ctx context.Context, id string, progress float64, payload *domain.JobPayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	now := time.Now().UTC()
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Update("background_jobs").
		Set("status", string(domain.JobStatusPending)).
		Set("progress", progress).
		Set("payload", payloadJSON).
		Set("updated_at", now).
		Set("started_at", nil).
		Set("next_run_after", nil).
		Set("attempts", sq.Expr("GREATEST(attempts - 1, 0)")).
		Where(sq.Eq{
			"id":     id,
			"status": string(domain.JobStatusProcessing),
		})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to re-queue job: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrJobNotFound{Message: fmt.Sprintf("processing job not found: %s", id)}
	}

	return nil
}

// ResetForRetry moves a failed job back to pending with a fresh attempt budget
func (r *JobRepository) ResetForRetry(ctx context.Context, id string) error {
	now := time.Now().UTC()
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Update("background_jobs").
		Set("status", string(domain.JobStatusPending)).
		Set("attempts", 0).
		Set("error_message", "").
		Set("updated_at", now).
		Set("next_run_after", nil).
		Set("started_at", nil).
		Set("finished_at", nil).
		Where(sq.Eq{
			"id":     id,
			"status": string(domain.JobStatusFailed),
		})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to reset job: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.ErrJobNotFound{Message: fmt.Sprintf("failed job not found: %s", id)}
	}

	return nil
}

// ReapStaleJobs re-queues processing jobs whose worker disappeared. A row
// stuck in processing past the timeout means the claiming process died
// before writing a terminal status.
func (r *JobRepository) ReapStaleJobs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Update("background_jobs").
		Set("status", string(domain.JobStatusPending)).
		Set("updated_at", time.Now().UTC()).
		Set("started_at", nil).
		Where(sq.And{
			sq.Eq{"status": string(domain.JobStatusProcessing)},
			sq.Lt{"started_at": cutoff},
		})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build reap query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to reap stale jobs: %w", err)
	}

	reaped, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return reaped, nil
}

// applyJobFilter adds the filter conditions shared by List's count and data
// queries
func applyJobFilter(query sq.SelectBuilder, filter domain.JobFilter) sq.SelectBuilder {
	if len(filter.Status) > 0 {
		statusStrings := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statusStrings[i] = string(s)
		}
		query = query.Where(sq.Eq{"status": statusStrings})
	}

	if len(filter.Kind) > 0 {
		query = query.Where(sq.Eq{"kind": filter.Kind})
	}

	if filter.CreatedAfter != nil {
		query = query.Where(sq.GtOrEq{"created_at": filter.CreatedAfter})
	}

	if filter.CreatedBefore != nil {
		query = query.Where(sq.LtOrEq{"created_at": filter.CreatedBefore})
	}

	return query
}

// scanJob reads one job row from a row or rows scanner
func scanJob(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Job, error) {
	var job domain.Job
	var payloadJSON, resultJSON []byte
	var nextRunAfter, startedAt, finishedAt domain.NullableTime

	err := scanner.Scan(
		&job.ID,
		&job.Kind,
		&job.Status,
		&payloadJSON,
		&resultJSON,
		&job.ErrorMessage,
		&job.Progress,
		&job.Attempts,
		&job.MaxAttempts,
		&job.RetryInterval,
		&nextRunAfter,
		&startedAt,
		&finishedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.NextRunAfter = nextRunAfter.Ptr()
	job.StartedAt = startedAt.Ptr()
	job.FinishedAt = finishedAt.Ptr()

	if payloadJSON != nil {
		job.Payload = &domain.JobPayload{}
		if err := json.Unmarshal(payloadJSON, job.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}
	if resultJSON != nil {
		job.Result = &domain.JobResult{}
		if err := json.Unmarshal(resultJSON, job.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	return &job, nil
}
