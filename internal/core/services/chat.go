package services

import (
	"context"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driven"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService drives one question/answer turn against the backend.
type ChatService struct {
	backend driven.BackendClient
}

// NewChatService creates a new chat service.
func NewChatService(backend driven.BackendClient) *ChatService {
	return &ChatService{backend: backend}
}

// Ask submits one question to the knowledge base.
// The empty-question guard runs before any network call.
func (s *ChatService) Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if s.backend == nil {
		return nil, domain.ErrBackendUnavailable
	}

	req = req.Normalize()
	if req.Question == "" {
		return nil, domain.NewValidationError("Please enter a question")
	}

	logger.Section("Chat Turn")
	logger.Debug("Question: %q", req.Question)
	logger.Debug("TopK: %d, Filter: %v", req.TopK, req.SourceFilter)

	resp, err := s.backend.Chat(ctx, req)
	if err != nil {
		logger.Warn("Chat failed: %v", err)
		return nil, err
	}

	logger.Debug("Answered with %d evidence chunks", len(resp.Context))
	return resp, nil
}
