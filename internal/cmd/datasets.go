package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asksage-tools/asksage-cli/internal/api"
	"github.com/asksage-tools/asksage-cli/internal/dataset"
	"github.com/asksage-tools/asksage-cli/internal/response"
)

// DatasetsResult holds dataset listing results for structured output.
type DatasetsResult struct {
	Count    int            `json:"count"`
	Datasets []dataset.Pair `json:"datasets"`
}

// datasetNameRe limits new dataset names to letters, digits, hyphens and
// underscores; the platform embeds the name into the full identifier.
var datasetNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// newDatasetsCmd creates the datasets command group.
func newDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Manage datasets",
		Long:  `Add, delete, and list the datasets available to your account.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all datasets",
		RunE:  runDatasetsList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a new dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasetsAdd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an existing dataset (short name or full name)",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasetsDelete,
	})

	return cmd
}

func runDatasetsList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	pairs := dataset.ListWithShortNames(client.GetDatasets)

	if IsStructuredOutput() {
		return PrintOutput(cmd.OutOrStdout(), DatasetsResult{Count: len(pairs), Datasets: pairs})
	}

	if len(pairs) == 0 {
		cmd.Println("No datasets found.")
		return nil
	}

	cmd.Println("Available datasets:")
	for _, p := range pairs {
		if p.ShortName != p.FullName {
			cmd.Printf("  - %s (%s)\n", p.ShortName, p.FullName)
		} else {
			cmd.Printf("  - %s\n", p.FullName)
		}
	}
	return nil
}

func runDatasetsAdd(cmd *cobra.Command, args []string) error {
	ui := NewUI(cmd.OutOrStdout(), IsStructuredOutput())

	name := args[0]
	if !datasetNameRe.MatchString(name) || strings.Trim(name, "-_") == "" {
		return fmt.Errorf("dataset name must be alphanumeric (hyphens and underscores allowed)")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	raw, err := client.AddDataset(name)
	if err != nil {
		return fmt.Errorf("failed to add dataset: %w", err)
	}
	if res := response.Normalize(raw); !res.OK {
		return fmt.Errorf("failed to add dataset: %s", res.Err)
	}

	ui.Success(fmt.Sprintf("Successfully added dataset: %s", name))
	return nil
}

func runDatasetsDelete(cmd *cobra.Command, args []string) error {
	ui := NewUI(cmd.OutOrStdout(), IsStructuredOutput())

	client, err := newClient()
	if err != nil {
		return err
	}

	fullName, err := resolveDataset(client, ui, args[0])
	if err != nil {
		return err
	}

	raw, err := client.DeleteDataset(fullName)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	if res := response.Normalize(raw); !res.OK {
		return fmt.Errorf("failed to delete dataset: %s", res.Err)
	}

	ui.Success(fmt.Sprintf("Successfully deleted dataset: %s", dataset.DisplayName(fullName)))
	return nil
}

// resolveDataset maps a user-typed name to the full identifier, surfacing
// "not found" as a user-facing error distinct from API failures. Ambiguous
// aliases resolve to the first match in listing order with a warning.
func resolveDataset(client api.Sage, ui *UI, name string) (string, error) {
	res := dataset.Resolve(client.GetDatasets, name)
	if !res.Found {
		return "", fmt.Errorf("dataset %q not found", name)
	}
	if res.Fallback && cfg.Verbose {
		ui.Warning(fmt.Sprintf("Could not list datasets; using %q as-is", name))
	}
	if res.Ambiguous() {
		ui.Warning(fmt.Sprintf("Alias %q matches %d datasets; using %s", name, len(res.Matches), res.FullName))
	}
	return res.FullName, nil
}
