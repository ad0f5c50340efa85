package cmd

import (
	"io"
	"os"

	"pastelink/pkg/clipboard"

	"github.com/spf13/cobra"
)

var clipboardServeCmd = &cobra.Command{
	Use:    "__clipboard-serve",
	Hidden: true,
	Short:  "Internal: serve clipboard content over Wayland (do not call directly)",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		payload, err := clipboard.DecodeServeRequest(request)
		if err != nil {
			return err
		}
		return clipboard.ServeClipboard(payload)
	},
}
