package services

import (
	"context"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driven"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService fetches corpus-wide counters on demand.
// It is read-only and independent of chat and ingestion state.
type StatsService struct {
	backend driven.BackendClient
}

// NewStatsService creates a new stats service.
func NewStatsService(backend driven.BackendClient) *StatsService {
	return &StatsService{backend: backend}
}

// Fetch retrieves the current stats snapshot.
func (s *StatsService) Fetch(ctx context.Context) (*domain.Stats, error) {
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}

	stats, err := s.backend.Stats(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("Stats: %d questions, %d feedback", stats.TotalQuestions, stats.TotalFeedback)
	return stats, nil
}

// Health probes whether the backend is reachable.
func (s *StatsService) Health(ctx context.Context) error {
	if s.backend == nil {
		return domain.ErrBackendUnavailable
	}
	return s.backend.Health(ctx)
}
