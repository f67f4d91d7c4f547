package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/lvyanru/chat-history/internal/cli/client"
	"github.com/lvyanru/chat-history/internal/cli/config"
	"github.com/lvyanru/chat-history/internal/cli/ui"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login [server]",
	Short: "authenticate with the chat history API server",
	Long: `Log in to the chat history API server and save the session locally.

The token and its expiry are stored in the state file (see --config) and
reused by every other command until the token expires.
Without a server argument ` + config.DefaultServer + ` is used.`,
	Example: `  $ histctl login
  $ histctl login http://history.example.com:8080 -u alice`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when empty)")
}

// promptCredentials asks for whatever the flags did not provide. The password is never echoed.
func promptCredentials(username string) (string, string, error) {
	questions := []*survey.Question{}
	if username == "" {
		questions = append(questions, &survey.Question{
			Name:     "username",
			Prompt:   &survey.Input{Message: "Username:"},
			Validate: survey.Required,
		})
	}
	questions = append(questions, &survey.Question{
		Name:     "password",
		Prompt:   &survey.Password{Message: "Password:"},
		Validate: survey.Required,
	})

	answers := struct {
		Username string
		Password string
	}{Username: username}
	if err := survey.Ask(questions, &answers); err != nil {
		return "", "", err
	}
	return answers.Username, answers.Password, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	server := config.DefaultServer
	if len(args) > 0 {
		server = args[0]
	}

	username, password, err := promptCredentials(loginUsername)
	if err != nil {
		ui.Fail("failed to read credentials: %v", err)
		return fmt.Errorf("input failed")
	}

	apiClient, err := client.NewAPIClient(server, "")
	if err != nil {
		ui.Fail("invalid server %q: %v", server, err)
		return fmt.Errorf("client creation failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ui.Info("Connecting to %s...", apiClient.Server())
	session, err := apiClient.Login(ctx, username, password)
	if err != nil {
		ui.Panel("Login Failed", err.Error(), false)
		return fmt.Errorf("authentication failed")
	}

	saved := &config.Login{
		Token:     session.Token,
		Username:  username,
		ExpiresAt: session.Expire,
	}
	if session.Account != nil {
		saved.Username = session.Account.Username
		saved.UserID = session.Account.ID
	}
	cfg := &config.Config{Server: apiClient.Server(), Login: saved}
	if err := cfg.Save(); err != nil {
		ui.Fail("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	path, _ := config.GetConfigPath()
	ui.Panel("✓ Login Successful", ui.RenderSession(session, username, path), true)
	fmt.Println()
	ui.Info("Next:")
	ui.Hint("  histctl history <chatId>   # recent turns of a chat")
	ui.Hint("  histctl whoami             # the logged-in user")
	return nil
}
