// Package cli provides the command-line interface for studybuddy.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/ports/driving"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected before Execute. Commands fail with a clear error
// when their service is missing.
var (
	chatService     driving.ChatService
	ingestService   driving.IngestService
	feedbackService driving.FeedbackService
	statsService    driving.StatsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "Terminal client for the StudyBuddy knowledge base",
	Long: `studybuddy is a terminal client for a personal knowledge-base assistant.

Upload notes, PDFs, or Wikipedia articles to the backend, then ask
questions answered from your own documents with cited evidence.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles the driving ports the commands depend on.
type Services struct {
	Chat     driving.ChatService
	Ingest   driving.IngestService
	Feedback driving.FeedbackService
	Stats    driving.StatsService
}

// SetServices injects the core services. Must be called before Execute.
func SetServices(s Services) {
	chatService = s.Chat
	ingestService = s.Ingest
	feedbackService = s.Feedback
	statsService = s.Stats
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
