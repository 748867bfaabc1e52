// Package tui provides an interactive terminal user interface for studybuddy.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat runs question/answer turns.
	Chat driving.ChatService

	// Ingest runs the three upload flows.
	Ingest driving.IngestService

	// Feedback emits relevance signals for answered turns.
	Feedback driving.FeedbackService

	// Stats provides usage counters and the backend health probe.
	Stats driving.StatsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	ingest driving.IngestService,
	feedback driving.FeedbackService,
	stats driving.StatsService,
) *Ports {
	return &Ports{
		Chat:     chat,
		Ingest:   ingest,
		Feedback: feedback,
		Stats:    stats,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Feedback == nil {
		return ErrMissingFeedbackService
	}
	if p.Stats == nil {
		return ErrMissingStatsService
	}
	return nil
}
