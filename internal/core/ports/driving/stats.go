package driving

import (
	"context"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// StatsService exposes corpus-wide usage counters for display.
type StatsService interface {
	// Fetch retrieves the current stats snapshot on demand.
	Fetch(ctx context.Context) (*domain.Stats, error)

	// Health probes whether the backend is reachable.
	Health(ctx context.Context) error
}
