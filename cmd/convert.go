package cmd

import (
	"fmt"

	"pastelink/pkg/editor"
	"pastelink/pkg/errors"
	"pastelink/pkg/fixture"
	"pastelink/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	convertFrom    string
	convertField   string
	convertAnyHTML bool
	convertInto    string
	convertSave    string
	convertQuiet   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Paste the clipboard (or a fixture) into a text field and print the result",
	Long: `Simulate pasting into a plain-text field with the link handler installed.

The payload is read from the system clipboard, or from a YAML/JSON fixture
mapping MIME types to data. The field content after the paste is printed:
the Markdown rewrite when the payload carries a link, the plain text
otherwise.`,
	Example: `  # Convert what is on the clipboard now
  pastelink convert

  # Convert a saved payload and put the result on the clipboard
  pastelink convert --from edge.yaml --copy

  # Also rewrite anchors from pastes without a text/link-preview record
  pastelink convert --from anchors.yaml --any-html

  # Capture the clipboard as a fixture for later
  pastelink convert --save payload.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := editor.ParseKind(convertField)
		if !ok {
			return errors.ValidationError(fmt.Sprintf("unknown field kind %q (expected plain or rich)", convertField))
		}

		payload, err := readPayload(convertFrom)
		if err != nil {
			return err
		}

		if convertSave != "" {
			if err := fixture.Save(convertSave, payload); err != nil {
				return errors.FileError(convertSave, err)
			}
			logger.Debug().Str("path", convertSave).Msg("saved payload fixture")
		}

		result := convertPayload(payload, kind, convertInto, pasteOptions(convertAnyHTML))

		source := convertFrom
		if source == "" {
			source = sourceClipboard
		}
		if err := recordRewrite(source, payload, result.Decision); err != nil {
			logger.Warn().Err(err).Msg("failed to record history")
		}

		status := cmd.ErrOrStderr()
		if !convertQuiet {
			if result.Decision.Handled {
				_, _ = color.New(color.FgGreen).Fprintf(status, "✓ rewritten via %s\n", result.Decision.Path)
			} else {
				_, _ = color.New(color.FgYellow).Fprintf(status, "· pasted unchanged: %s\n", result.Decision.Reason)
			}
		}

		return OutputWithCopy(cmd.OutOrStdout(), status, result.Output+"\n", result.Output, ShouldCopyOutput(cmd))
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", sourceClipboard, "Payload source: 'clipboard' or a fixture file")
	convertCmd.Flags().StringVar(&convertField, "field", "plain", "Target field kind (plain, rich)")
	convertCmd.Flags().BoolVar(&convertAnyHTML, "any-html", false, "Rewrite anchors even without a text/link-preview record")
	convertCmd.Flags().StringVar(&convertInto, "into", "", "Existing field content; the paste is appended at the end")
	convertCmd.Flags().StringVar(&convertSave, "save", "", "Also save the payload as a fixture file")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "Do not report whether the paste was rewritten")
}
