package cmd

import (
	"fmt"

	"pastelink/pkg/clipboard"
	"pastelink/pkg/errors"
	"pastelink/pkg/fixture"
	"pastelink/pkg/logger"
	"pastelink/pkg/paste"

	"github.com/spf13/cobra"
)

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Inspect and load the system clipboard",
}

// clipboardType is one row of 'clipboard types'.
type clipboardType struct {
	MIMEType string `json:"mime_type" yaml:"mime_type"`
	Bytes    int    `json:"bytes" yaml:"bytes"`
	Preview  string `json:"preview" yaml:"preview"`
}

var clipboardTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the MIME types currently on the clipboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readClipboard()
		if err != nil {
			return err
		}

		rows := make([]clipboardType, 0, len(payload.Types()))
		for _, mimeType := range payload.Types() {
			data := payload.GetData(mimeType)
			rows = append(rows, clipboardType{MIMEType: mimeType, Bytes: len(data), Preview: Truncate(data, 48)})
		}

		w := NewOutputWriter(outputFormat, cmd.OutOrStdout())
		if w.IsStructured() {
			return w.Write(rows)
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "Clipboard is empty.")
			return nil
		}
		const colType = 24
		fmt.Fprintf(out, "%-*s %8s  %s\n", colType, "TYPE", "BYTES", "PREVIEW")
		for _, r := range rows {
			fmt.Fprintf(out, "%-*s %8d  %s\n", colType, r.MIMEType, r.Bytes, r.Preview)
		}
		if !clipboard.MultiFormat() {
			fmt.Fprintln(cmd.ErrOrStderr(), "\nOnly text/plain is readable outside Wayland.")
		}
		return nil
	},
}

var clipboardDumpCmd = &cobra.Command{
	Use:   "dump [FILE]",
	Short: "Save the clipboard payload as a fixture (stdout without FILE)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readClipboard()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			data, err := fixture.Marshal(payload)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		if err := fixture.Save(args[0], payload); err != nil {
			return errors.FileError(args[0], err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Saved %d types to %s\n", len(payload.Types()), args[0])
		return nil
	},
}

var clipboardLoadCmd = &cobra.Command{
	Use:   "load FILE",
	Short: "Put a fixture payload on the system clipboard",
	Long: `Publish every MIME type of a fixture on the clipboard.

On Wayland a background process owns the selection until something else is
copied. Elsewhere only text/plain is written.`,
	Example: `  # Reproduce an address-bar copy from Microsoft Edge
  pastelink clipboard load testdata/edge.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := fixture.Load(args[0])
		if err != nil {
			return errors.FileError(args[0], err)
		}
		if len(payload.Types()) == 0 {
			return errors.ValidationError(fmt.Sprintf("%s has no MIME types", args[0]))
		}

		if IsDryRun() {
			PrintDryRunAction(cmd.ErrOrStderr(), "load the clipboard", map[string]string{
				"file":  args[0],
				"types": fmt.Sprint(payload.Types()),
			})
			return nil
		}

		if !clipboard.MultiFormat() {
			logger.Warn().Msg("not on Wayland, only text/plain is written")
			if !paste.HasType(payload, paste.MIMEPlain) {
				return errors.UnsupportedError("loading a payload without text/plain outside Wayland")
			}
		}
		if err := clipboard.WriteMultiFormat(payload); err != nil {
			return errors.ClipboardError("write", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Loaded %d types from %s\n", len(payload.Types()), args[0])
		return nil
	},
}
