package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asksage-tools/asksage-cli/internal/response"
)

// ModelsResult holds the model catalog for structured output.
type ModelsResult struct {
	Count  int      `json:"count"`
	Models []string `json:"models"`
}

// newModelsCmd creates the models command.
func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models available to your account",
		RunE:  runModels,
	}
}

func runModels(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	raw, err := client.GetModels()
	if err != nil {
		return fmt.Errorf("retrieving models: %w", err)
	}
	res := response.Normalize(raw)
	if !res.OK {
		return fmt.Errorf("retrieving models: %s", res.Err)
	}

	models := response.StringList(res.Payload)
	if IsStructuredOutput() {
		return PrintOutput(cmd.OutOrStdout(), ModelsResult{Count: len(models), Models: models})
	}

	if len(models) == 0 {
		cmd.Println("No models found.")
		return nil
	}
	cmd.Println("Available models:")
	for _, m := range models {
		cmd.Printf("  - %s\n", m)
	}
	return nil
}
