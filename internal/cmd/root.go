// Package cmd implements the CLI commands using cobra.
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/asksage-tools/asksage-cli/internal/api"
	"github.com/asksage-tools/asksage-cli/internal/config"
)

// Version is set at build time.
var Version = "dev"

const defaultTimeout = 120 * time.Second

// Config holds CLI configuration shared across commands.
type Config struct {
	Timeout time.Duration
	Verbose bool
	NoColor bool
	// Train flags
	Dataset    string
	Context    string
	Summarize  bool
	Recursive  bool
	Extensions []string
	// Query flags
	Model      string
	File       string
	Persona    string
	Plugin     string
	QueryDS    string
}

// Global config instance used by commands
var cfg = &Config{}

// newClient builds the platform client from the local configuration.
// Package variable so tests can substitute a stub.
var newClient = func() (api.Sage, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.TestMode {
		fmt.Fprintln(os.Stderr, "Running in test mode with mock client")
		return api.NewMock(), nil
	}
	return api.NewClient(c.Email, c.APIKey, c.UserBaseURL, c.ServerBaseURL, cfg.Timeout), nil
}

// NewRootCmd creates a new root command with all subcommands.
// This factory function allows creating fresh command trees for testing.
func NewRootCmd() *cobra.Command {
	// Reset config to defaults
	*cfg = Config{
		Timeout: defaultTimeout,
	}

	rootCmd := &cobra.Command{
		Use:   "asksage",
		Short: "Command-line interface for the AskSage AI platform",
		Long: `asksage manages AskSage datasets, trains content into them, runs
queries against the platform's models, and reports monthly token usage.

Credentials come from ASKSAGE_EMAIL and ASKSAGE_API_KEY, or from
~/.asksage/config.json.`,
		Version: Version,
	}

	// Global flags
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "API request timeout")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "V", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	BindOutputFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newDatasetsCmd())
	rootCmd.AddCommand(newTrainCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newModelsCmd())

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// ExecuteWithArgs runs the CLI with custom args and writers (for testing).
func ExecuteWithArgs(args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}
