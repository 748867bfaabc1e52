package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/noir-kalakaar/studybuddy-cli/internal/adapters/driving/tui"
	"github.com/noir-kalakaar/studybuddy-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for StudyBuddy.

The TUI provides a visual interface for asking questions, uploading
documents, and viewing usage statistics with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate the menu
  Enter    - Select / Submit
  Tab      - Next form field
  +/-      - Rate an answer
  Esc      - Back / Cancel
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(chatService, ingestService, feedbackService, statsService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	app.WithDefaultTopK(chatDefaults.TopK)

	// Warn early when the backend is down rather than failing on the
	// first interaction.
	probeCtx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
	defer cancel()
	if err := statsService.Health(probeCtx); err != nil {
		logger.Warn("backend health check failed: %v", err)
		fmt.Fprintln(os.Stderr, "Warning: backend is not reachable; requests will fail until it is up.")
	}

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
