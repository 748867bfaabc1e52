package services

import (
	"context"
	"io"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// mockBackend implements driven.BackendClient for testing.
// It records calls so tests can assert that rejected inputs never
// reach the transport.
type mockBackend struct {
	uploadTextFunc func(ctx context.Context, title, text string, source domain.SourceTag) error
	uploadPDFFunc  func(ctx context.Context, title, filename string, r io.Reader) error
	importWikiFunc func(ctx context.Context, query string) (string, error)
	chatFunc       func(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
	feedbackFunc   func(ctx context.Context, rec domain.FeedbackRecord) error
	statsFunc      func(ctx context.Context) (*domain.Stats, error)
	healthFunc     func(ctx context.Context) error

	calls []string
}

func (m *mockBackend) UploadText(ctx context.Context, title, text string, source domain.SourceTag) error {
	m.calls = append(m.calls, "UploadText")
	if m.uploadTextFunc != nil {
		return m.uploadTextFunc(ctx, title, text, source)
	}
	return nil
}

func (m *mockBackend) UploadPDF(ctx context.Context, title, filename string, r io.Reader) error {
	m.calls = append(m.calls, "UploadPDF")
	if m.uploadPDFFunc != nil {
		return m.uploadPDFFunc(ctx, title, filename, r)
	}
	return nil
}

func (m *mockBackend) ImportWiki(ctx context.Context, query string) (string, error) {
	m.calls = append(m.calls, "ImportWiki")
	if m.importWikiFunc != nil {
		return m.importWikiFunc(ctx, query)
	}
	return query, nil
}

func (m *mockBackend) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	m.calls = append(m.calls, "Chat")
	if m.chatFunc != nil {
		return m.chatFunc(ctx, req)
	}
	return &domain.ChatResponse{Answer: "answer"}, nil
}

func (m *mockBackend) SubmitFeedback(ctx context.Context, rec domain.FeedbackRecord) error {
	m.calls = append(m.calls, "SubmitFeedback")
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, rec)
	}
	return nil
}

func (m *mockBackend) Stats(ctx context.Context) (*domain.Stats, error) {
	m.calls = append(m.calls, "Stats")
	if m.statsFunc != nil {
		return m.statsFunc(ctx)
	}
	return &domain.Stats{}, nil
}

func (m *mockBackend) Health(ctx context.Context) error {
	m.calls = append(m.calls, "Health")
	if m.healthFunc != nil {
		return m.healthFunc(ctx)
	}
	return nil
}
