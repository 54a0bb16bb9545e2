package scanjob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/veskob/botezscan/internal/store"
)

// Repository handles persistence for scan jobs
type Repository struct {
	db *store.Database
}

// NewRepository constructs a Repository
func NewRepository(db *store.Database) *Repository {
	return &Repository{db: db}
}

const jobColumns = `job_id, usernames, from_month, to_month, dry_run, status,
	status_message, progress_current, progress_total, last_error, created_at,
	updated_at, started_at, completed_at`

// CreateJob inserts a new queued job and returns the stored record
func (r *Repository) CreateJob(ctx context.Context, req Request) (*Job, error) {
	query := `
		INSERT INTO scan_jobs (usernames, from_month, to_month, dry_run, status, status_message)
		VALUES ($1, $2, $3, $4, 'queued', 'Queued')
		RETURNING ` + jobColumns

	row := r.db.DB().QueryRowContext(ctx, query,
		pq.StringArray(req.Usernames), req.From, req.To, req.DryRun,
	)
	return scanJobRow(row)
}

// UpdateStatus updates status, message and optional error. Terminal states
// also stamp completed_at.
func (r *Repository) UpdateStatus(ctx context.Context, jobID string, status JobStatus, message string, lastErr error) error {
	query := `
		UPDATE scan_jobs
		SET status = $2::varchar,
			status_message = $3,
			last_error = $4,
			updated_at = NOW(),
			completed_at = CASE WHEN $2 IN ('completed', 'failed') THEN NOW() ELSE completed_at END
		WHERE job_id = $1
	`

	var errText sql.NullString
	if lastErr != nil {
		errText = sql.NullString{String: lastErr.Error(), Valid: true}
	}

	if _, err := r.db.DB().ExecContext(ctx, query, jobID, status, message, errText); err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return nil
}

// UpdateProgress records how far along a running job is
func (r *Repository) UpdateProgress(ctx context.Context, jobID string, current, total int, message string) error {
	query := `
		UPDATE scan_jobs
		SET progress_current = $2,
			progress_total = $3,
			status_message = $4,
			updated_at = NOW()
		WHERE job_id = $1
	`

	if _, err := r.db.DB().ExecContext(ctx, query, jobID, current, total, message); err != nil {
		return fmt.Errorf("update job progress: %w", err)
	}
	return nil
}

// ResetStuckJobs requeues jobs left running by an earlier process
func (r *Repository) ResetStuckJobs(ctx context.Context) error {
	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE scan_jobs
		SET status = 'queued',
			status_message = 'Reset after service restart',
			updated_at = NOW()
		WHERE status = 'running'
	`)
	if err != nil {
		return fmt.Errorf("reset stuck jobs: %w", err)
	}
	return nil
}

// MarkNextJobRunning atomically claims the next queued job
func (r *Repository) MarkNextJobRunning(ctx context.Context) (*Job, error) {
	query := `
		WITH next_job AS (
			SELECT job_id
			FROM scan_jobs
			WHERE status = 'queued'
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE scan_jobs
		SET status = 'running',
			status_message = 'Starting scan...',
			started_at = COALESCE(started_at, NOW()),
			updated_at = NOW()
		FROM next_job
		WHERE scan_jobs.job_id = next_job.job_id
		RETURNING scan_jobs.job_id, scan_jobs.usernames, scan_jobs.from_month,
			scan_jobs.to_month, scan_jobs.dry_run, scan_jobs.status,
			scan_jobs.status_message, scan_jobs.progress_current,
			scan_jobs.progress_total, scan_jobs.last_error,
			scan_jobs.created_at, scan_jobs.updated_at,
			scan_jobs.started_at, scan_jobs.completed_at
	`

	row := r.db.DB().QueryRowContext(ctx, query)
	job, err := scanJobRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// GetActiveJob returns the currently running job, if any
func (r *Repository) GetActiveJob(ctx context.Context) (*Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM scan_jobs
		WHERE status = 'running'
		ORDER BY started_at DESC
		LIMIT 1
	`

	row := r.db.DB().QueryRowContext(ctx, query)
	job, err := scanJobRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active job: %w", err)
	}
	return job, nil
}

// ListRecentJobs returns the most recently created jobs
func (r *Repository) ListRecentJobs(ctx context.Context, limit int) ([]*Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM scan_jobs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJobRow(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func scanJobRow(scanner interface {
	Scan(dest ...interface{}) error
}) (*Job, error) {
	job := &Job{}
	err := scanner.Scan(
		&job.JobID,
		&job.Usernames,
		&job.FromMonth,
		&job.ToMonth,
		&job.DryRun,
		&job.Status,
		&job.StatusMessage,
		&job.ProgressCurrent,
		&job.ProgressTotal,
		&job.LastError,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.StartedAt,
		&job.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}
