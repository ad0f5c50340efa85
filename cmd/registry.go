package cmd

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	root.AddCommand(versionCmd)
	root.AddCommand(clipboardServeCmd)

	root.AddCommand(convertCmd)
	root.AddCommand(watchCmd)
	root.AddCommand(clipboardCmd)
	root.AddCommand(historyCmd)
	root.AddCommand(configCmd)

	clipboardCmd.AddCommand(
		clipboardTypesCmd,
		clipboardDumpCmd,
		clipboardLoadCmd,
	)

	historyCmd.AddCommand(
		historyClearCmd,
	)

	configCmd.AddCommand(
		configShowCmd,
		configInitCmd,
		configPathCmd,
	)
}
