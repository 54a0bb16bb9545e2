package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/veskob/botezscan/internal/analysis"
	"github.com/veskob/botezscan/internal/publisher"
	"github.com/veskob/botezscan/internal/store"
	"github.com/veskob/botezscan/internal/store/repository"
)

const analyzeBatchSize = 200

// Broadcaster pushes finding payloads to connected WebSocket clients
type Broadcaster interface {
	Broadcast(data []byte)
}

// ScanService runs the blunder detector over stored games and records the
// results. Publisher and broadcaster are optional sinks.
type ScanService struct {
	gameRepo    *repository.GameRepository
	findingRepo *repository.FindingRepository
	publisher   *publisher.RedisPublisher
	broadcaster Broadcaster
}

// NewScanService creates a new scan service
func NewScanService(db *store.Database, pub *publisher.RedisPublisher, broadcaster Broadcaster) *ScanService {
	return &ScanService{
		gameRepo:    repository.NewGameRepository(db),
		findingRepo: repository.NewFindingRepository(db),
		publisher:   pub,
		broadcaster: broadcaster,
	}
}

// ScanSummary reports what one analysis pass covered
type ScanSummary struct {
	Analyzed int `json:"analyzed"`
	Findings int `json:"findings"`
}

// AnalyzeGame runs the detector over one game record. Pure: no storage side
// effects.
func (s *ScanService) AnalyzeGame(game *store.Game) *analysis.Finding {
	return analysis.DetectQueenBlunder(analysis.MoveList(game.PGN))
}

// AnalyzeAll walks every unanalyzed stored game, persists findings, and
// emits each one to the configured sinks. Each game gets a fresh replay
// model; a failure on one game never stops the pass.
func (s *ScanService) AnalyzeAll(ctx context.Context) (*ScanSummary, error) {
	summary := &ScanSummary{}

	for {
		games, err := s.gameRepo.GetUnanalyzed(ctx, analyzeBatchSize)
		if err != nil {
			return summary, err
		}
		if len(games) == 0 {
			break
		}

		for _, game := range games {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			if finding := s.AnalyzeGame(game); finding != nil {
				stored, err := s.findingRepo.Insert(ctx, &store.Finding{
					GameID:     game.GameID,
					GameURL:    game.URL,
					White:      game.White,
					Black:      game.Black,
					MoveNumber: finding.Move,
					MoveToken:  finding.Token,
				})
				if err != nil {
					// Leave the game unanalyzed so the next pass retries it
					log.Printf("[scan] Error storing finding for %s: %v", game.URL, err)
					continue
				}
				s.emit(ctx, stored)
				summary.Findings++
			}

			if err := s.gameRepo.MarkAnalyzed(ctx, game.GameID); err != nil {
				log.Printf("[scan] Error marking %s analyzed: %v", game.URL, err)
			}
			summary.Analyzed++
		}
	}

	log.Printf("[scan] ✓ Analyzed %d games, %d findings", summary.Analyzed, summary.Findings)
	return summary, nil
}

func (s *ScanService) emit(ctx context.Context, finding *store.Finding) {
	log.Printf("[scan] ✓ Botez gambit: %s vs %s, move %d (%s) %s",
		finding.White, finding.Black, finding.MoveNumber, finding.MoveToken, finding.GameURL)

	if s.publisher != nil {
		if err := s.publisher.PublishFinding(ctx, finding); err != nil {
			log.Printf("[scan] Error publishing finding: %v", err)
		}
	}

	if s.broadcaster != nil {
		if data, err := json.Marshal(finding); err == nil {
			s.broadcaster.Broadcast(data)
		}
	}
}
