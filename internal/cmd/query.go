package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asksage-tools/asksage-cli/internal/api"
	"github.com/asksage-tools/asksage-cli/internal/response"
)

// QueryResult holds query results for structured output.
type QueryResult struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

// newQueryCmd creates the query command.
func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <message>",
		Short: "Query AskSage AI models",
		Long: `Run a question against the platform's models, optionally scoped to a
dataset, with a file attached, or routed through a named plugin.`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVarP(&cfg.QueryDS, "dataset", "d", "", "Limit query to a dataset (short name or full name)")
	cmd.Flags().StringVarP(&cfg.Model, "model", "m", "", "AI model to use")
	cmd.Flags().StringVarP(&cfg.File, "file", "f", "", "Include a file with the query")
	cmd.Flags().StringVarP(&cfg.Persona, "persona", "p", "", "Persona to use for the query")
	cmd.Flags().StringVar(&cfg.Plugin, "plugin", "", "Plugin to route the query through")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	ui := NewUI(cmd.OutOrStdout(), IsStructuredOutput())
	message := args[0]

	if cfg.File != "" {
		info, err := os.Stat(cfg.File)
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", cfg.File)
		}
		if err == nil && info.IsDir() {
			return fmt.Errorf("path is not a file: %s", cfg.File)
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	// Scope the query to a dataset by resolving and assigning it first.
	if cfg.QueryDS != "" {
		fullName, err := resolveDataset(client, ui, cfg.QueryDS)
		if err != nil {
			return err
		}
		if _, err := client.AssignDataset(fullName); err != nil {
			return fmt.Errorf("assigning dataset: %w", err)
		}
	}

	opts := api.QueryOptions{Model: cfg.Model, Persona: cfg.Persona}

	ui.StartSpinner("Querying AskSage...")

	var raw any
	switch {
	case cfg.File != "":
		raw, err = client.QueryWithFile(message, cfg.File, opts)
	case cfg.Plugin != "":
		raw, err = client.QueryPlugin(message, cfg.Plugin, opts)
	default:
		raw, err = client.Query(message, opts)
	}
	if err != nil {
		ui.StopSpinnerMsg(false, "Query failed")
		return fmt.Errorf("query failed: %w", err)
	}

	res := response.Normalize(raw)
	if !res.OK {
		ui.StopSpinnerMsg(false, "Query failed")
		return fmt.Errorf("query failed: %s", res.Err)
	}
	ui.StopSpinnerMsg(true, "Done")

	text := response.Message(res.Payload)
	if IsStructuredOutput() {
		return PrintOutput(cmd.OutOrStdout(), QueryResult{Message: message, Response: text})
	}

	cmd.Println(text)
	return nil
}
