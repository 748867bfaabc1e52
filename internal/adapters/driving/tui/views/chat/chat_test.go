package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/messages"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	AskFunc func(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
	asked   []domain.ChatRequest
}

func (m *MockChatService) Ask(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	m.asked = append(m.asked, req)
	if m.AskFunc != nil {
		return m.AskFunc(ctx, req)
	}
	return &domain.ChatResponse{Answer: "mock answer"}, nil
}

// MockFeedbackService implements driving.FeedbackService for testing.
type MockFeedbackService struct {
	SubmitFunc func(ctx context.Context, rec domain.FeedbackRecord) error
	submitted  []domain.FeedbackRecord
}

func (m *MockFeedbackService) Submit(ctx context.Context, rec domain.FeedbackRecord) error {
	m.submitted = append(m.submitted, rec)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, rec)
	}
	return nil
}

func testResponse() *domain.ChatResponse {
	score := 0.91
	return &domain.ChatResponse{
		Answer: "TLS is a cryptographic protocol.",
		Context: []domain.EvidenceChunk{
			{
				ID:     "11111111-2222-3333-4444-555555555555",
				Text:   "Transport Layer Security...",
				Source: domain.SourceWikipedia,
				Title:  "Transport Layer Security",
				URL:    "https://en.wikipedia.org/wiki/TLS",
				Score:  &score,
			},
		},
	}
}

// submitQuestion drives one submit and returns the completion message.
func submitQuestion(t *testing.T, v *View, question string) tea.Msg {
	t.Helper()
	v.SetQuestion(question)
	updated, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, v, updated)
	require.NotNil(t, cmd)
	return cmd()
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{}, &MockFeedbackService{})

	require.NotNil(t, view)
	assert.Equal(t, TurnIdle, view.State())
	assert.Equal(t, 0, view.Seq())
	assert.Nil(t, view.Response())
}

func TestView_Submit_EmptyQuestionStaysIdle(t *testing.T) {
	mock := &MockChatService{}
	view := NewView(nil, nil, mock, &MockFeedbackService{})
	view.SetQuestion("   ")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, TurnIdle, view.State())
	assert.Equal(t, "Please enter a question", view.ErrMessage())
	assert.Empty(t, mock.asked)
}

func TestView_Submit_Success(t *testing.T) {
	mock := &MockChatService{
		AskFunc: func(_ context.Context, _ domain.ChatRequest) (*domain.ChatResponse, error) {
			return testResponse(), nil
		},
	}
	view := NewView(nil, nil, mock, &MockFeedbackService{})

	completion := submitQuestion(t, view, "what is tls?")
	assert.Equal(t, TurnSubmitting, view.State())

	view.Update(completion)

	assert.Equal(t, TurnAnswered, view.State())
	require.NotNil(t, view.Response())
	assert.Equal(t, "TLS is a cryptographic protocol.", view.Response().Answer)
	assert.Empty(t, view.ErrMessage())
}

func TestView_Submit_Failure(t *testing.T) {
	mock := &MockChatService{
		AskFunc: func(_ context.Context, _ domain.ChatRequest) (*domain.ChatResponse, error) {
			return nil, &domain.RequestError{Status: 500, Message: "Request failed with status 500"}
		},
	}
	view := NewView(nil, nil, mock, &MockFeedbackService{})

	completion := submitQuestion(t, view, "what is tls?")
	view.Update(completion)

	assert.Equal(t, TurnFailed, view.State())
	assert.Nil(t, view.Response())
	assert.Equal(t, "Request failed with status 500", view.ErrMessage())
}

func TestView_Resubmit_ClearsPriorAnswer(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{
		AskFunc: func(_ context.Context, _ domain.ChatRequest) (*domain.ChatResponse, error) {
			return testResponse(), nil
		},
	}, &MockFeedbackService{})

	view.Update(submitQuestion(t, view, "first"))
	require.Equal(t, TurnAnswered, view.State())

	// Second submit: prior answer must be gone while in flight.
	view.SetQuestion("second")
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, TurnSubmitting, view.State())
	assert.Nil(t, view.Response())
	assert.Empty(t, view.ErrMessage())
}

func TestView_StaleCompletionDiscarded(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{
		AskFunc: func(_ context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
			return &domain.ChatResponse{Answer: "answer to " + req.Question}, nil
		},
	}, &MockFeedbackService{})

	first := submitQuestion(t, view, "first")

	// Abandon the first turn and start another while the first is
	// still unresolved.
	view.Reset()
	second := submitQuestion(t, view, "second")

	// The first submit resolves after the second one started: it is
	// stale and must not disturb the in-flight turn.
	view.Update(first)
	assert.Equal(t, TurnSubmitting, view.State())
	assert.Nil(t, view.Response())

	view.Update(second)
	assert.Equal(t, TurnAnswered, view.State())
	require.NotNil(t, view.Response())
	assert.Equal(t, "answer to second", view.Response().Answer)
}

func TestView_TopKAndFilterOnRequest(t *testing.T) {
	mock := &MockChatService{}
	view := NewView(nil, nil, mock, &MockFeedbackService{})

	view.toggleFilter(domain.SourceWikipedia)
	view.topK.SetValue("7")
	submitQuestion(t, view, "filtered question")

	require.Len(t, mock.asked, 1)
	assert.Equal(t, 7, mock.asked[0].TopK)
	assert.Equal(t, []domain.SourceTag{domain.SourceWikipedia}, mock.asked[0].SourceFilter)
}

func TestView_NonNumericTopKFallsBack(t *testing.T) {
	mock := &MockChatService{}
	view := NewView(nil, nil, mock, &MockFeedbackService{})

	view.topK.SetValue("lots")
	submitQuestion(t, view, "question")

	require.Len(t, mock.asked, 1)
	assert.Equal(t, domain.DefaultTopK, mock.asked[0].TopK)
}

func TestView_SetDefaultTopK(t *testing.T) {
	mock := &MockChatService{}
	view := NewView(nil, nil, mock, &MockFeedbackService{})

	view.SetDefaultTopK(7)
	require.Equal(t, 7, view.DefaultTopK())

	// Used when the field is left empty.
	view.Update(submitQuestion(t, view, "first"))

	// And when it is non-numeric.
	view.topK.SetValue("lots")
	view.Update(submitQuestion(t, view, "second"))

	require.Len(t, mock.asked, 2)
	assert.Equal(t, 7, mock.asked[0].TopK)
	assert.Equal(t, 7, mock.asked[1].TopK)
}

func TestView_SetDefaultTopK_RejectsOutOfRange(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{}, &MockFeedbackService{})

	view.SetDefaultTopK(0)
	assert.Equal(t, domain.DefaultTopK, view.DefaultTopK())

	view.SetDefaultTopK(domain.MaxTopK + 1)
	assert.Equal(t, domain.DefaultTopK, view.DefaultTopK())
}

func TestView_FilterToggleIsLocalUntilSubmit(t *testing.T) {
	mock := &MockChatService{}
	view := NewView(nil, nil, mock, &MockFeedbackService{})

	view.Update(tea.KeyMsg{Type: tea.KeyCtrlU})

	assert.True(t, view.FilterEnabled(domain.SourceUser))
	assert.Empty(t, mock.asked)
}

func TestView_Feedback_PairsWithAnsweredTurn(t *testing.T) {
	feedback := &MockFeedbackService{}
	view := NewView(nil, nil, &MockChatService{
		AskFunc: func(_ context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
			return &domain.ChatResponse{Answer: "the answer"}, nil
		},
	}, feedback)

	view.Update(submitQuestion(t, view, "the question"))
	require.Equal(t, TurnAnswered, view.State())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	require.NotNil(t, cmd)
	outcome := cmd()
	view.Update(outcome)

	require.Len(t, feedback.submitted, 1)
	rec := feedback.submitted[0]
	assert.Equal(t, "the question", rec.Question)
	assert.Equal(t, "the answer", rec.Answer)
	assert.Equal(t, domain.RatingPositive, rec.Rating)

	// Feedback outcome never transitions the turn.
	assert.Equal(t, TurnAnswered, view.State())
}

func TestView_Feedback_FailureIsolatedFromTurn(t *testing.T) {
	feedback := &MockFeedbackService{
		SubmitFunc: func(_ context.Context, _ domain.FeedbackRecord) error {
			return errors.New("backend unreachable: connection refused")
		},
	}
	view := NewView(nil, nil, &MockChatService{}, feedback)

	view.Update(submitQuestion(t, view, "q"))
	require.Equal(t, TurnAnswered, view.State())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.Equal(t, TurnAnswered, view.State())
	assert.NotNil(t, view.Response())
	require.Len(t, feedback.submitted, 1)
	assert.Equal(t, domain.RatingNegative, feedback.submitted[0].Rating)
}

func TestView_Feedback_RepeatAllowed(t *testing.T) {
	feedback := &MockFeedbackService{}
	view := NewView(nil, nil, &MockChatService{}, feedback)
	view.Update(submitQuestion(t, view, "q"))

	for range 2 {
		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
		require.NotNil(t, cmd)
		view.Update(cmd())
	}

	assert.Len(t, feedback.submitted, 2)
}

func TestView_FeedbackIgnoredWhenNotAnswered(t *testing.T) {
	feedback := &MockFeedbackService{}
	view := NewView(nil, nil, &MockChatService{}, feedback)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})

	assert.Nil(t, cmd)
	assert.Empty(t, feedback.submitted)
}

func TestView_InputsLockedWhileSubmitting(t *testing.T) {
	mock := &MockChatService{}
	view := NewView(nil, nil, mock, &MockFeedbackService{})
	submitQuestion(t, view, "first")
	require.Equal(t, TurnSubmitting, view.State())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Len(t, mock.asked, 1)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{}, &MockFeedbackService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}

func TestView_View_RendersAnswerAndEvidence(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{
		AskFunc: func(_ context.Context, _ domain.ChatRequest) (*domain.ChatResponse, error) {
			return testResponse(), nil
		},
	}, &MockFeedbackService{})
	view.SetDimensions(80, 24)

	view.Update(submitQuestion(t, view, "what is tls?"))
	out := view.View()

	assert.Contains(t, out, "TLS is a cryptographic protocol.")
	assert.Contains(t, out, "Transport Layer Security")
	assert.Contains(t, out, "Wikipedia")
	assert.Contains(t, out, "0.910")
	assert.Contains(t, out, "https://en.wikipedia.org/wiki/TLS")
}

func TestView_View_TruncatesExcerptOnRuneBoundary(t *testing.T) {
	// 300 multi-byte runes; a byte-wise cut at 200 would split one.
	text := strings.Repeat("é", 300)
	view := NewView(nil, nil, &MockChatService{
		AskFunc: func(_ context.Context, _ domain.ChatRequest) (*domain.ChatResponse, error) {
			return &domain.ChatResponse{
				Answer: "accented answer",
				Context: []domain.EvidenceChunk{
					{Text: text, Source: domain.SourceUser, Title: "Notes"},
				},
			}, nil
		},
	}, &MockFeedbackService{})
	view.SetDimensions(80, 24)

	view.Update(submitQuestion(t, view, "what do my notes say?"))
	out := view.View()

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 200)+"...")
	assert.NotContains(t, out, strings.Repeat("é", 201))
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, &MockChatService{}, &MockFeedbackService{})
	view.Update(submitQuestion(t, view, "q"))
	require.Equal(t, TurnAnswered, view.State())

	view.Reset()

	assert.Equal(t, TurnIdle, view.State())
	assert.Nil(t, view.Response())
	assert.Empty(t, view.Question())
}

func TestTurnState_String(t *testing.T) {
	assert.Equal(t, "idle", TurnIdle.String())
	assert.Equal(t, "submitting", TurnSubmitting.String())
	assert.Equal(t, "answered", TurnAnswered.String())
	assert.Equal(t, "failed", TurnFailed.String())
}
