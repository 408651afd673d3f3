// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"strings"

	"github.com/cinecli/cinecli/dash"
	"github.com/cinecli/cinecli/key"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Bool("no-preview", false, "Disable poster previews in the picker")
}

// searchCmd jumps straight into the search flow, optionally pre-seeded.
var searchCmd = &cobra.Command{
	Use:     "search [query]",
	Short:   "Search movies & tv and stream or download a result",
	Aliases: []string{"s"},
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		if cmd.Flags().Changed("no-preview") {
			viper.Set(key.PreviewImages, false)
		}

		handleErr(dash.Run(&dash.Options{
			Section: dash.SectionSearch,
			Query:   strings.Join(args, " "),
		}))
	},
}
