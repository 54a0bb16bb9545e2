package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/veskob/botezscan/internal/ingest/chesscom"
	"github.com/veskob/botezscan/internal/service"
)

// Orchestrator periodically re-collects the current archive month for the
// roster and runs the detector over whatever arrived. chess.com appends
// finished games to the running month, so only that month needs polling.
type Orchestrator struct {
	ingester *chesscom.Ingester
	scanner  *service.ScanService
	config   *Config
	cancel   context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	PollInterval time.Duration // how often the current month is re-collected
	EnablePoll   bool
	MaxRetries   int
	RetryDelay   time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval: time.Hour,
		EnablePoll:   true,
		MaxRetries:   3,
		RetryDelay:   5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(ingester *chesscom.Ingester, scanner *service.ScanService, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{
		ingester: ingester,
		scanner:  scanner,
		config:   config,
	}
}

// Start runs the polling loop until the context is cancelled
func (o *Orchestrator) Start(ctx context.Context) {
	if !o.config.EnablePoll {
		log.Println("[scheduler] Polling disabled")
		return
	}

	ctx, o.cancel = context.WithCancel(ctx)

	log.Printf("[scheduler] Polling current month every %v", o.config.PollInterval)

	// Run once immediately on startup
	o.runOnce(ctx)

	ticker := time.NewTicker(o.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[scheduler] Stopped")
			return
		case <-ticker.C:
			o.runOnce(ctx)
		}
	}
}

// Stop cancels the polling loop
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) runOnce(ctx context.Context) {
	var result *chesscom.Result
	var err error

	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		result, err = o.ingester.IngestCurrentMonth(ctx)
		if err == nil {
			break
		}
		log.Printf("[scheduler] Ingest attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(o.config.RetryDelay):
		}
	}
	if err != nil {
		log.Printf("[scheduler] Giving up on this cycle: %v", err)
		return
	}

	if result.Inserted == 0 {
		return
	}

	if _, err := o.scanner.AnalyzeAll(ctx); err != nil {
		log.Printf("[scheduler] Analysis error: %v", err)
	}
}
