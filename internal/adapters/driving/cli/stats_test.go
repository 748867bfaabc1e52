package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

func TestStatsCmd_Use(t *testing.T) {
	assert.Equal(t, "stats", statsCmd.Use)
}

func TestStatsCmd_PrintsCounters(t *testing.T) {
	cleanup := setupServices(Services{
		Chat:   &stubChatService{},
		Ingest: &stubIngestService{},
		Stats: &stubStatsService{
			FetchFunc: func(_ context.Context) (*domain.Stats, error) {
				return &domain.Stats{
					TotalQuestions:   12,
					TotalFeedback:    4,
					PositiveFeedback: 3,
					NegativeFeedback: 1,
				}, nil
			},
		},
		Feedback: &stubFeedbackService{},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Questions asked:    12")
	assert.Contains(t, out, "Positive feedback:  75.0%")
}

func TestStatsCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stats", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		statsJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"TotalQuestions": 0`)
}

func TestStatsCmd_UnreachableBackend(t *testing.T) {
	dial := errors.New("connection refused")
	cleanup := setupServices(Services{
		Chat:   &stubChatService{},
		Ingest: &stubIngestService{},
		Stats: &stubStatsService{
			FetchFunc: func(_ context.Context) (*domain.Stats, error) {
				return nil, &domain.TransportError{Err: dial}
			},
			HealthFunc: func(_ context.Context) error {
				return &domain.TransportError{Err: dial}
			},
		},
		Feedback: &stubFeedbackService{},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"stats"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend is not reachable")
}
