package cmd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
)

const (
	responseYes = "yes"
	responseY   = "y"
)

// IsDryRun returns true if dry-run mode is enabled
func IsDryRun() bool {
	return dryRunFlag
}

// IsAssumeYes returns true if we should skip confirmation prompts
func IsAssumeYes() bool {
	return assumeYesFlag
}

// PrintDryRun prints a message indicating what would happen in dry-run mode
func PrintDryRun(w io.Writer, format string, args ...interface{}) {
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprint(w, "[DRY-RUN] ")
	fmt.Fprintf(w, format+"\n", args...)
}

// PrintDryRunAction prints a dry-run action with details
func PrintDryRunAction(w io.Writer, action string, details map[string]string) {
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)

	_, _ = yellow.Fprintf(w, "[DRY-RUN] Would %s:\n", action)
	for _, key := range sortedKeys(details) {
		_, _ = cyan.Fprintf(w, "  %s: ", key)
		fmt.Fprintln(w, details[key])
	}
}

// ConfirmPrompt asks the user for confirmation on in, prompting on w.
func ConfirmPrompt(in io.Reader, w io.Writer, message string) (bool, error) {
	if assumeYesFlag {
		return true, nil
	}

	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintf(w, "%s [y/N]: ", message)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == responseY || response == responseYes, nil
}

// ConfirmDestructive prompts for confirmation before a destructive action
func ConfirmDestructive(in io.Reader, w io.Writer, action string, details map[string]string) (bool, error) {
	if dryRunFlag {
		PrintDryRunAction(w, action, details)
		return false, nil // Return false to indicate we didn't actually do it
	}

	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprintf(w, "Warning: You are about to %s\n\n", action)

	if len(details) > 0 {
		for _, key := range sortedKeys(details) {
			fmt.Fprintf(w, "  %s: %s\n", key, details[key])
		}
		fmt.Fprintln(w)
	}

	return ConfirmPrompt(in, w, "Do you want to continue")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
