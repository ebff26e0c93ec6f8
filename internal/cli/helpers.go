package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output streams, swapped in tests
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// Confirm prompts the user for confirmation
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(stderr, prompt+suffix)

	response, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	printStatus(stdout, "✓", "OK:", format, args...)
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	printStatus(stdout, "ℹ", "INFO:", format, args...)
}

// PrintWarning prints a warning to stderr. Quiet mode does not hide it.
func PrintWarning(format string, args ...interface{}) {
	printMarked(stderr, "⚠", "WARNING:", format, args...)
}

// PrintError prints an error to stderr
func PrintError(format string, args ...interface{}) {
	printMarked(stderr, "✗", "ERROR:", format, args...)
}

func printStatus(w io.Writer, mark, plain, format string, args ...interface{}) {
	if quiet {
		return
	}
	printMarked(w, mark, plain, format, args...)
}

func printMarked(w io.Writer, mark, plain, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(w, "%s %s\n", plain, msg)
		return
	}
	fmt.Fprintf(w, "%s %s\n", mark, msg)
}

// Global flags (set from the cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// Quiet reports whether informational output is suppressed
func Quiet() bool {
	return quiet
}
