// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"os"

	"github.com/cinecli/cinecli/preview"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

// previewCmd renders one preview pane for fzf. It is invoked by the picker
// itself, never by users, and stays out of the help output.
var previewCmd = &cobra.Command{
	Use:    "preview [payload]",
	Short:  "Render a preview pane for a picker row",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Preview failures must not break the surrounding picker.
		_ = preview.Render(args[0], os.Stdout)
	},
}
