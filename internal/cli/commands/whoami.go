package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvyanru/chat-history/internal/cli/ui"
)

// whoamiCmd prints the user behind the saved token
var whoamiCmd = &cobra.Command{
	Use:          "whoami",
	Short:        "show the logged-in user",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		apiClient, err := authenticatedClient()
		if err != nil {
			return err
		}

		account, err := apiClient.CurrentUser(ctx)
		if err != nil {
			ui.Fail("failed to get current user: %v", err)
			return fmt.Errorf("request failed")
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderAccount(account, apiClient.Server()))
		return nil
	},
}
