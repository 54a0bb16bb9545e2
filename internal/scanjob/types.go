package scanjob

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/veskob/botezscan/internal/ingest/chesscom"
)

// JobStatus represents the lifecycle state of a scan job
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job models the database representation of one queued scan run
type Job struct {
	JobID           string         `json:"job_id"`
	Usernames       pq.StringArray `json:"usernames"`
	FromMonth       string         `json:"from_month"`
	ToMonth         string         `json:"to_month"`
	DryRun          bool           `json:"dry_run"`
	Status          JobStatus      `json:"status"`
	StatusMessage   sql.NullString `json:"status_message"`
	ProgressCurrent int            `json:"progress_current"`
	ProgressTotal   int            `json:"progress_total"`
	LastError       sql.NullString `json:"last_error"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	StartedAt       sql.NullTime   `json:"started_at"`
	CompletedAt     sql.NullTime   `json:"completed_at"`
}

// Request is the API payload asking for a scan run. An empty username
// list means "the active roster". A dry run collects and analyzes but
// stores nothing.
type Request struct {
	Usernames []string `json:"usernames,omitempty"`
	From      string   `json:"from"`
	To        string   `json:"to"`
	DryRun    bool     `json:"dry_run,omitempty"`
}

// Validate checks the requested month window
func (r Request) Validate() error {
	if r.From == "" || r.To == "" {
		return fmt.Errorf("from and to months are required")
	}
	window := chesscom.MonthWindow{From: r.From, To: r.To}
	return window.Validate()
}

// StatusSummary reports the running job plus recent history
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"history"`
}
