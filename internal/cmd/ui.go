package cmd

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// UI provides user interface helpers.
type UI struct {
	out            io.Writer
	spinner        *spinner.Spinner
	structured     bool
	noColor        bool
	nonInteractive bool
}

// NewUI creates a new UI helper. In structured output mode all decoration
// is suppressed so the machine-readable stream stays clean.
func NewUI(out io.Writer, structured bool) *UI {
	nonInteractive := !isTerminal() || os.Getenv("CI") != "" || os.Getenv("NO_COLOR") != ""

	noColor := cfg.NoColor || os.Getenv("NO_COLOR") != "" || nonInteractive
	if noColor {
		color.NoColor = true
	}

	return &UI{
		out:            out,
		structured:     structured,
		noColor:        noColor,
		nonInteractive: nonInteractive,
	}
}

// StartSpinner starts a spinner with a message.
func (u *UI) StartSpinner(msg string) {
	if u.structured || u.nonInteractive {
		return
	}
	u.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	u.spinner.Suffix = " " + msg
	u.spinner.Writer = u.out
	u.spinner.Start()
}

// StopSpinnerMsg stops the spinner and prints a message.
func (u *UI) StopSpinnerMsg(success bool, msg string) {
	if u.spinner == nil {
		return
	}
	u.spinner.Stop()
	if success {
		color.New(color.FgGreen).Fprintf(u.out, "✓ %s\n", msg)
	} else {
		color.New(color.FgRed).Fprintf(u.out, "✗ %s\n", msg)
	}
	u.spinner = nil
}

// Success prints a success message.
func (u *UI) Success(msg string) {
	if u.structured {
		return
	}
	color.New(color.FgGreen).Fprintf(u.out, "✓ %s\n", msg)
}

// Error prints an error message.
func (u *UI) Error(msg string) {
	if u.structured {
		return
	}
	color.New(color.FgRed).Fprintf(u.out, "✗ %s\n", msg)
}

// Info prints an info message.
func (u *UI) Info(msg string) {
	if u.structured {
		return
	}
	color.New(color.FgCyan).Fprintf(u.out, "ℹ %s\n", msg)
}

// Warning prints a warning message.
func (u *UI) Warning(msg string) {
	if u.structured {
		return
	}
	color.New(color.FgYellow).Fprintf(u.out, "⚠ %s\n", msg)
}

// Header prints a header/title.
func (u *UI) Header(msg string) {
	if u.structured {
		return
	}
	color.New(color.FgWhite, color.Bold).Fprintf(u.out, "\n%s\n", msg)
}

func isTerminal() bool {
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		return true
	}
	return false
}
