package services

import (
	"context"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driven"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService sends relevance signals to the backend.
// Submissions are fire-and-forget from the chat turn's perspective:
// callers must not derive chat state from the outcome, and repeated
// submissions for the same turn are allowed.
type FeedbackService struct {
	backend driven.BackendClient
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(backend driven.BackendClient) *FeedbackService {
	return &FeedbackService{backend: backend}
}

// Submit sends one feedback record.
func (s *FeedbackService) Submit(ctx context.Context, rec domain.FeedbackRecord) error {
	if s.backend == nil {
		return domain.ErrBackendUnavailable
	}
	if !rec.Rating.IsValid() {
		return domain.ErrInvalidRating
	}

	logger.Debug("Submitting feedback (rating %+d) for question %q", rec.Rating, rec.Question)
	return s.backend.SubmitFeedback(ctx, rec)
}
