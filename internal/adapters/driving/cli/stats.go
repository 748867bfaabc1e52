package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if statsService == nil {
		return errors.New("stats service not configured")
	}

	ctx := context.Background()
	s, err := statsService.Fetch(ctx)
	if err != nil {
		// A failed fetch usually means the backend is down; the health
		// probe makes the two cases distinguishable.
		if healthErr := statsService.Health(ctx); healthErr != nil {
			return fmt.Errorf("backend is not reachable: %w", err)
		}
		return fmt.Errorf("fetching stats: %w", err)
	}

	if statsJSON {
		return outputStatsJSON(cmd, s)
	}

	cmd.Printf("Questions asked:    %d\n", s.TotalQuestions)
	cmd.Printf("Feedback received:  %d\n", s.TotalFeedback)
	cmd.Printf("Helpful answers:    %d\n", s.PositiveFeedback)
	cmd.Printf("Unhelpful answers:  %d\n", s.NegativeFeedback)
	cmd.Printf("Positive feedback:  %s%%\n", s.PositivePercentString())
	return nil
}

func outputStatsJSON(cmd *cobra.Command, s *domain.Stats) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
