package driving

import (
	"context"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// FeedbackService emits relevance signals for answered turns.
// It is deliberately decoupled from chat state: the outcome of a
// submission never affects the turn that produced the record.
type FeedbackService interface {
	// Submit sends one feedback record. The rating must be +1 or -1;
	// anything else is rejected locally without a network call.
	Submit(ctx context.Context, rec domain.FeedbackRecord) error
}
