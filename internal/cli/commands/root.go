package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/lvyanru/chat-history/internal/cli/config"
	"github.com/lvyanru/chat-history/internal/cli/ui"
)

const version = "0.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:     "histctl",
	Short:   "Chat history CLI",
	Version: version,
	Long: `histctl reads your chat history from the chat history API server.
Log in once, then print the most recent turns of any of your chats.`,
	Example: `  $ histctl login http://localhost:8080 -u alice
  $ histctl history chat-1
  $ histctl history chat-1 -n 5 -o json
  $ histctl whoami`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			config.SetPath(configPath)
		}
	},
}

// Execute runs histctl with os.Args.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "state file (default $"+config.PathEnv+" or ~/.histctl/config.yaml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("histctl version {{.Version}}\n")

	rootCmd.AddCommand(loginCmd, historyCmd, whoamiCmd)

	tmpl := helpTemplate()
	rootCmd.SetUsageTemplate(tmpl)
	rootCmd.SetHelpTemplate(tmpl)
}

// helpTemplate is cobra's usage layout with bold section titles.
func helpTemplate() string {
	sections := []struct{ title, cond, body string }{
		{"USAGE", "true", "  {{.UseLine}}{{if .HasAvailableSubCommands}}\n  {{.CommandPath}} [command]{{end}}"},
		{"EXAMPLES", ".HasExample", "{{.Example}}"},
		{"COMMANDS", ".HasAvailableSubCommands", "{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name \"help\"))}}\n  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}"},
		{"OPTIONS", ".HasAvailableLocalFlags", "{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}"},
		{"GLOBAL OPTIONS", ".HasAvailableInheritedFlags", "{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}"},
	}

	var b strings.Builder
	b.WriteString("{{if .Long}}{{.Long}}\n\n{{end}}")
	for _, s := range sections {
		b.WriteString("{{if " + s.cond + "}}" + ui.Styles.Bold.Render(s.title) + "\n" + s.body + "\n\n{{end}}")
	}
	b.WriteString(`{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}` + "\n")
	return b.String()
}
