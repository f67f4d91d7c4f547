package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvyanru/chat-history/internal/cli/client"
	"github.com/lvyanru/chat-history/internal/cli/config"
	"github.com/lvyanru/chat-history/internal/cli/ui"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var (
	historyLimit  int
	historyOutput string
)

// historyCmd is the history command
var historyCmd = &cobra.Command{
	Use:   "history <chatId>",
	Short: "show the most recent turns of a chat",
	Long: `Show the most recent turns of one of your chats, oldest first.

Only chats owned by the logged-in user are visible; an unknown chat id prints an
empty history. The server returns 20 turns unless --limit says otherwise.`,
	Example: `  # Last 20 turns
  $ histctl history chat-1

  # Last 5 turns as JSON
  $ histctl history chat-1 -n 5 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Number of turns to show (server default 20)")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", outputTable, "Output format: table or json")

	// Silence usage to avoid showing help on every error
	historyCmd.SilenceUsage = true
}

func runHistory(cmd *cobra.Command, args []string) error {
	chatID := args[0]

	if historyLimit < 0 {
		ui.Fail("--limit must be positive")
		return fmt.Errorf("invalid arguments")
	}
	if historyOutput != outputTable && historyOutput != outputJSON {
		ui.Fail("unknown output format %q (want table or json)", historyOutput)
		return fmt.Errorf("invalid arguments")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	apiClient, err := authenticatedClient()
	if err != nil {
		return err
	}

	turns, err := apiClient.GetHistory(ctx, chatID, historyLimit)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			ui.Fail("session expired or invalid, please login again")
			ui.Hint("Run 'histctl login' to authenticate.")
			return fmt.Errorf("authentication required")
		}
		ui.Fail("failed to get history: %v", err)
		return fmt.Errorf("history request failed")
	}

	if historyOutput == outputJSON {
		out, err := ui.RenderHistoryJSON(turns)
		if err != nil {
			ui.Fail("%v", err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if len(turns) == 0 {
		ui.Warn("no history for chat %s", chatID)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderHistory(chatID, turns))
	return nil
}

// authenticatedClient builds an API client from the saved login.
func authenticatedClient() (*client.APIClient, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.Fail("failed to load config: %v", err)
		return nil, fmt.Errorf("config load failed")
	}

	token, ok := cfg.Token(time.Now())
	if !ok {
		if cfg.Login != nil && cfg.Login.Token != "" {
			ui.Fail("saved login for %s has expired", cfg.Login.Username)
		} else {
			ui.Fail("not authenticated, please login first")
		}
		ui.Hint("Run 'histctl login' to authenticate.")
		return nil, fmt.Errorf("authentication required")
	}

	apiClient, err := client.NewAPIClient(cfg.Server, token)
	if err != nil {
		ui.Fail("failed to create client: %v", err)
		return nil, fmt.Errorf("client creation failed")
	}
	return apiClient, nil
}
