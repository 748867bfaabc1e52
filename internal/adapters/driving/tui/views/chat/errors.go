package chat

import "errors"

// Error definitions for the chat view.
var (
	// ErrNoChatService indicates that no chat service was provided.
	ErrNoChatService = errors.New("chat service is required")

	// ErrNoFeedbackService indicates that no feedback service was provided.
	ErrNoFeedbackService = errors.New("feedback service is required")
)
