package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_HasTopKFlag(t *testing.T) {
	flag := askCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag)
	assert.Equal(t, "k", flag.Shorthand)
	assert.Equal(t, "3", flag.DefValue)
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	score := 0.8
	cleanup := setupServices(Services{
		Chat: &stubChatService{
			AskFunc: func(_ context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
				return &domain.ChatResponse{
					Answer: "Photosynthesis converts light to energy.",
					Context: []domain.EvidenceChunk{
						{Title: "Photosynthesis", Source: domain.SourceWikipedia, Score: &score,
							URL: "https://en.wikipedia.org/wiki/Photosynthesis"},
					},
				}, nil
			},
		},
		Ingest:   &stubIngestService{},
		Feedback: &stubFeedbackService{},
		Stats:    &stubStatsService{},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what is photosynthesis?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Photosynthesis converts light to energy.")
	assert.Contains(t, out, "Wikipedia - Photosynthesis")
	assert.Contains(t, out, "(0.800)")
	assert.Contains(t, out, "https://en.wikipedia.org/wiki/Photosynthesis")
}

func TestAskCmd_PassesFlagsToRequest(t *testing.T) {
	var got domain.ChatRequest
	cleanup := setupServices(Services{
		Chat: &stubChatService{
			AskFunc: func(_ context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
				got = req
				return &domain.ChatResponse{Answer: "ok"}, nil
			},
		},
		Ingest:   &stubIngestService{},
		Feedback: &stubFeedbackService{},
		Stats:    &stubStatsService{},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--top-k", "5", "--source", "wikipedia", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
		askTopK = domain.DefaultTopK
		askSources = nil
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 5, got.TopK)
	assert.Equal(t, []domain.SourceTag{domain.SourceWikipedia}, got.SourceFilter)
}

func TestAskCmd_ConfiguredTopKDefault(t *testing.T) {
	var got domain.ChatRequest
	cleanup := setupServices(Services{
		Chat: &stubChatService{
			AskFunc: func(_ context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
				got = req
				return &domain.ChatResponse{Answer: "ok"}, nil
			},
		},
		Ingest:   &stubIngestService{},
		Feedback: &stubFeedbackService{},
		Stats:    &stubStatsService{},
	})
	defer cleanup()

	SetChatDefaults(ChatDefaults{TopK: 7})
	defer SetChatDefaults(ChatDefaults{TopK: domain.DefaultTopK})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 7, got.TopK)
	assert.Equal(t, "7", askCmd.Flags().Lookup("top-k").DefValue)
}

func TestSetChatDefaults_RejectsOutOfRange(t *testing.T) {
	SetChatDefaults(ChatDefaults{TopK: 99})
	defer SetChatDefaults(ChatDefaults{TopK: domain.DefaultTopK})

	assert.Equal(t, domain.DefaultTopK, chatDefaults.TopK)
	assert.Equal(t, "3", askCmd.Flags().Lookup("top-k").DefValue)
}

func TestAskCmd_RejectsUnknownSource(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "--source", "reddit", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
		askSources = nil
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "reddit"`)
}

func TestAskCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "--json", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
		askJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Answer": "stub answer"`)
}

func TestAskCmd_NoService(t *testing.T) {
	cleanup := setupServices(Services{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "q"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat service not configured")
}
