package scanjob

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/veskob/botezscan/internal/analysis"
	"github.com/veskob/botezscan/internal/ingest/chesscom"
	"github.com/veskob/botezscan/internal/service"
	"github.com/veskob/botezscan/internal/store"
)

// Service coordinates job persistence, execution, and status reporting.
// One background worker drains the queue: a job collects the requested
// window, persists the games, then runs the detector over everything
// still unanalyzed.
type Service struct {
	repo     *Repository
	ingester *chesscom.Ingester
	scanner  *service.ScanService

	historyLimit int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(db *store.Database, ingester *chesscom.Ingester, scanner *service.ScanService) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		repo:         NewRepository(db),
		ingester:     ingester,
		scanner:      scanner,
		historyLimit: 10,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start launches the background worker loop
func (s *Service) Start() {
	if err := s.repo.ResetStuckJobs(s.ctx); err != nil {
		log.Printf("[scanjob] Failed to reset jobs: %v", err)
	}

	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for completion
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request
func (s *Service) Enqueue(ctx context.Context, req Request) (*Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateJob(ctx, req)
}

// GetStatus returns the currently running job plus recent history
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				log.Printf("[scanjob] Claim job error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	window := chesscom.MonthWindow{From: job.FromMonth, To: job.ToMonth}

	_ = s.repo.UpdateProgress(s.ctx, job.JobID, 0, 2, "Collecting games...")

	games, err := s.ingester.CollectWindow(s.ctx, job.Usernames, window)
	if err != nil {
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Collection failed", err)
		return
	}

	if job.DryRun {
		_ = s.repo.UpdateProgress(s.ctx, job.JobID, 1, 2, "Analyzing games (dry run)...")

		findings := countFindings(games)
		message := fmt.Sprintf("Dry run: %d games, %d findings, nothing stored", len(games), findings)
		_ = s.repo.UpdateProgress(s.ctx, job.JobID, 2, 2, message)
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, message, nil)
		return
	}

	result, err := s.ingester.IngestGames(s.ctx, games)
	if err != nil {
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Ingest failed", err)
		return
	}

	_ = s.repo.UpdateProgress(s.ctx, job.JobID, 1, 2, "Analyzing games...")

	summary, err := s.scanner.AnalyzeAll(s.ctx)
	if err != nil {
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Analysis failed", err)
		return
	}

	message := fmt.Sprintf("Scanned %d new games, %d findings", result.Inserted, summary.Findings)
	_ = s.repo.UpdateProgress(s.ctx, job.JobID, 2, 2, message)
	_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, message, nil)
}

// countFindings runs the detector over a collected batch without touching
// storage
func countFindings(games []chesscom.Game) int {
	findings := 0
	for _, game := range games {
		if analysis.DetectQueenBlunder(analysis.MoveList(game.PGN)) != nil {
			findings++
		}
	}
	return findings
}
