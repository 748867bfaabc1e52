package stats

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui/messages"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

// MockStatsService implements driving.StatsService for testing.
type MockStatsService struct {
	FetchFunc  func(ctx context.Context) (*domain.Stats, error)
	HealthFunc func(ctx context.Context) error
	fetches    int
}

func (m *MockStatsService) Fetch(ctx context.Context) (*domain.Stats, error) {
	m.fetches++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return &domain.Stats{}, nil
}

func (m *MockStatsService) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

func testStats() *domain.Stats {
	return &domain.Stats{
		TotalQuestions:   42,
		TotalFeedback:    8,
		PositiveFeedback: 6,
		NegativeFeedback: 2,
	}
}

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, &MockStatsService{})

	require.NotNil(t, view)
	assert.Equal(t, StateLoading, view.State())
	assert.Nil(t, view.Stats())
}

func TestView_Init_Fetches(t *testing.T) {
	mock := &MockStatsService{
		FetchFunc: func(_ context.Context) (*domain.Stats, error) {
			return testStats(), nil
		},
	}
	view := NewView(nil, nil, mock)

	cmd := view.Init()
	require.NotNil(t, cmd)
	view.Update(cmd())

	assert.Equal(t, 1, mock.fetches)
	assert.Equal(t, StateLoaded, view.State())
	require.NotNil(t, view.Stats())
	assert.Equal(t, 42, view.Stats().TotalQuestions)
}

func TestView_FetchFailure(t *testing.T) {
	mock := &MockStatsService{
		FetchFunc: func(_ context.Context) (*domain.Stats, error) {
			return nil, &domain.TransportError{Err: context.DeadlineExceeded}
		},
	}
	view := NewView(nil, nil, mock)

	cmd := view.Init()
	view.Update(cmd())

	assert.Equal(t, StateFailed, view.State())
	assert.Contains(t, view.ErrMessage(), "backend unreachable")
}

func TestView_RetryFromFailed(t *testing.T) {
	failing := true
	mock := &MockStatsService{
		FetchFunc: func(_ context.Context) (*domain.Stats, error) {
			if failing {
				return nil, &domain.TransportError{Err: context.DeadlineExceeded}
			}
			return testStats(), nil
		},
	}
	view := NewView(nil, nil, mock)
	view.Update(view.Init()())
	require.Equal(t, StateFailed, view.State())

	failing = false
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.Equal(t, StateLoading, view.State())

	view.Update(cmd())

	assert.Equal(t, StateLoaded, view.State())
	assert.Equal(t, 2, mock.fetches)
}

func TestView_RefreshIgnoredWhileLoading(t *testing.T) {
	mock := &MockStatsService{}
	view := NewView(nil, nil, mock)
	require.Equal(t, StateLoading, view.State())

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.Nil(t, cmd)
}

func TestView_View_RendersCounters(t *testing.T) {
	mock := &MockStatsService{
		FetchFunc: func(_ context.Context) (*domain.Stats, error) {
			return testStats(), nil
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(80, 24)
	view.Update(view.Init()())

	out := view.View()

	assert.Contains(t, out, "42")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "Questions asked")
}

func TestView_View_RendersRetryHint(t *testing.T) {
	mock := &MockStatsService{
		FetchFunc: func(_ context.Context) (*domain.Stats, error) {
			return nil, &domain.RequestError{Status: 503, Message: "Request failed with status 503"}
		},
	}
	view := NewView(nil, nil, mock)
	view.SetDimensions(80, 24)
	view.Update(view.Init()())

	out := view.View()

	assert.Contains(t, out, "Request failed with status 503")
	assert.Contains(t, out, "Press r to retry")
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil, &MockStatsService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}
