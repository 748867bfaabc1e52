package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noir-kalakaar/studybuddy-cli/internal/core/domain"
)

var (
	askTopK    int
	askSources []string
	askJSON    bool
)

// ChatDefaults carries config-file defaults for the chat surfaces.
type ChatDefaults struct {
	// TopK is the evidence chunk count used when --top-k is not passed.
	TopK int
}

var chatDefaults = ChatDefaults{TopK: domain.DefaultTopK}

// SetChatDefaults applies configured chat defaults. Must be called
// before Execute; the ask command's --top-k flag and the TUI chat view
// pick them up. Out-of-range values keep the built-in defaults.
func SetChatDefaults(d ChatDefaults) {
	if d.TopK < domain.MinTopK || d.TopK > domain.MaxTopK {
		d.TopK = domain.DefaultTopK
	}
	chatDefaults = d

	askTopK = d.TopK
	askCmd.Flags().Lookup("top-k").DefValue = strconv.Itoa(d.TopK)
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the knowledge base",
	Long: `Asks a single question and prints the answer with its evidence.
Retrieval can be restricted to specific sources with --source; without
it all sources are searched.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", domain.DefaultTopK, "number of evidence chunks to retrieve (1-10)")
	askCmd.Flags().StringSliceVar(&askSources, "source", nil, "restrict retrieval to a source (user, wikipedia); repeatable")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	filter := make([]domain.SourceTag, 0, len(askSources))
	for _, s := range askSources {
		tag := domain.SourceTag(s)
		if !tag.IsValid() {
			return fmt.Errorf("unknown source %q (valid: user, wikipedia)", s)
		}
		filter = append(filter, tag)
	}

	req := domain.ChatRequest{
		Question:     args[0],
		TopK:         askTopK,
		SourceFilter: filter,
	}

	resp, err := chatService.Ask(context.Background(), req)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, resp)
	}

	return outputAskText(cmd, resp)
}

func outputAskJSON(cmd *cobra.Command, resp *domain.ChatResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, resp *domain.ChatResponse) error {
	cmd.Println(resp.Answer)

	if len(resp.Context) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("Sources:")
	for i, chunk := range resp.Context {
		line := fmt.Sprintf("  [%d] %s - %s", i+1, chunk.Source.Description(), chunk.Title)
		if chunk.Score != nil {
			line += fmt.Sprintf(" (%.3f)", *chunk.Score)
		}
		cmd.Println(line)
		if chunk.URL != "" {
			cmd.Printf("      %s\n", chunk.URL)
		}
	}

	return nil
}
