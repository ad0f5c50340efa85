package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"pastelink/pkg/clipboard"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	// FormatTable is the default human-readable table format
	FormatTable OutputFormat = "table"
	// FormatJSON outputs as JSON
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs as YAML
	FormatYAML OutputFormat = "yaml"
)

// OutputWriter handles structured output formatting
type OutputWriter struct {
	format OutputFormat
	writer io.Writer
}

// NewOutputWriter creates a new output writer with the specified format
func NewOutputWriter(format string, writer io.Writer) *OutputWriter {
	f := OutputFormat(strings.ToLower(format))
	if f != FormatJSON && f != FormatYAML {
		f = FormatTable
	}
	return &OutputWriter{
		format: f,
		writer: writer,
	}
}

// IsStructured returns true if the format is JSON or YAML
func (w *OutputWriter) IsStructured() bool {
	return w.format == FormatJSON || w.format == FormatYAML
}

// Write outputs the data in the configured format
func (w *OutputWriter) Write(data interface{}) error {
	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(w.writer)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(data)
	default:
		// Table format is handled by individual commands
		return nil
	}
}

// ValidFormats returns a list of valid output formats
func ValidFormats() []string {
	return []string{"table", "json", "yaml"}
}

func FormatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("02/01 15:04")
}

// Truncate shortens s to at most width runes for table cells, flattening
// newlines.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// CopyToClipboard writes content to the clipboard as plain text.
func CopyToClipboard(clipboardContent string) error {
	return clipboard.WriteText(clipboardContent)
}

// ShouldCopyOutput checks if the --copy flag was set on the command.
// It first checks the command's local flags, then falls back to the global flag.
func ShouldCopyOutput(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("copy") {
		copyFlag, _ := cmd.Flags().GetBool("copy")
		return copyFlag
	}
	return copyToClipboardFlag
}

// OutputWithCopy always prints terminalContent to out, and when shouldCopy is
// set also places clipboardContent on the clipboard, confirming on status.
func OutputWithCopy(out, status io.Writer, terminalContent, clipboardContent string, shouldCopy bool) error {
	if _, err := fmt.Fprint(out, terminalContent); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if shouldCopy {
		if IsDryRun() {
			PrintDryRun(status, "would copy %d bytes to the clipboard", len(clipboardContent))
			return nil
		}
		if err := CopyToClipboard(clipboardContent); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(status, "✓ Copied to clipboard!")
	}

	return nil
}
