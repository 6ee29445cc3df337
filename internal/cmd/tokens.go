package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/asksage-tools/asksage-cli/internal/response"
)

// TokensResult holds monthly token usage for structured output.
type TokensResult struct {
	MonthlyTokens int `json:"monthly_tokens"`
	TeachTokens   int `json:"teach_tokens"`
}

// newTokensCmd creates the tokens command.
func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "Check monthly token usage statistics",
		RunE:  runTokens,
	}
}

func runTokens(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	monthlyRaw, err := client.CountMonthlyTokens()
	if err != nil {
		return fmt.Errorf("retrieving token usage: %w", err)
	}
	monthly, err := response.TokenCount(monthlyRaw)
	if err != nil {
		return fmt.Errorf("retrieving token usage: %w", err)
	}

	teachRaw, err := client.CountMonthlyTeachTokens()
	if err != nil {
		return fmt.Errorf("retrieving teaching token usage: %w", err)
	}
	teach, err := response.TokenCount(teachRaw)
	if err != nil {
		return fmt.Errorf("retrieving teaching token usage: %w", err)
	}

	result := TokensResult{MonthlyTokens: monthly, TeachTokens: teach}
	if IsStructuredOutput() {
		return PrintOutput(cmd.OutOrStdout(), result)
	}

	cmd.Println("Monthly Token Usage:")
	cmd.Printf("  Query Tokens:    %s\n", groupDigits(monthly))
	cmd.Printf("  Teaching Tokens: %s\n", groupDigits(teach))
	return nil
}

// groupDigits renders an integer with comma thousands separators.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
