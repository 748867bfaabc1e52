// studybuddy is a terminal client for the StudyBuddy knowledge-base backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driven/backend"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driven/config/file"
	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/cli"
	"github.com/noir-kalakaar/studybuddy-cli/internal/core/services"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	// First run: persist the defaults so users have a file to edit.
	if err := file.EnsureFile(""); err != nil {
		logger.Warn("could not write default config: %v", err)
	}

	cfg, err := file.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendURL(),
		Timeout: cfg.Timeout(),
	})
	logger.Debug("backend: %s", cfg.BackendURL())

	cli.SetServices(cli.Services{
		Chat:     services.NewChatService(client),
		Ingest:   services.NewIngestService(client),
		Feedback: services.NewFeedbackService(client),
		Stats:    services.NewStatsService(client),
	})
	cli.SetVersion(version)
	cli.SetChatDefaults(cli.ChatDefaults{TopK: cfg.Chat.TopK})

	return cli.Execute()
}
