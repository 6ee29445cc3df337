// asksage: command-line client for the AskSage AI platform.
package main

import (
	"os"

	"github.com/asksage-tools/asksage-cli/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
