package driving

import (
	"context"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// ChatService drives one question/answer turn against the knowledge base.
type ChatService interface {
	// Ask submits one question. The request is normalized (top-k clamped,
	// empty filter collapsed) before the call; an empty question is
	// rejected locally with a *domain.ValidationError and no network
	// call is made.
	Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
}
