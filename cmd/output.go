package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jjenkins/vinlookup/internal/model"
	"github.com/mattn/go-isatty"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

var noColor bool

// useBold reports whether values should be emphasized on stdout
func useBold() bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printLines writes "Label: value" lines, with the value in bold when asked
func printLines(w io.Writer, lines []model.Line, bold bool) {
	for _, line := range lines {
		if bold {
			fmt.Fprintf(w, "%s: %s%s%s\n", line.Label, ansiBold, line.Value, ansiReset)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", line.Label, line.Value)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable bold output")
}
