// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"github.com/cinecli/cinecli/dash"
	"github.com/cinecli/cinecli/key"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().BoolP("movies", "m", false, "Open the popular movies section")
	dashboardCmd.Flags().BoolP("tv", "t", false, "Open the popular tv section")
	dashboardCmd.Flags().Bool("no-preview", false, "Disable poster previews in the picker")
	dashboardCmd.MarkFlagsMutuallyExclusive("movies", "tv")
}

// dashboardCmd opens the interactive dashboard, the same flow the bare
// invocation runs.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Short:   "Browse popular titles, search and history interactively",
	Aliases: []string{"dash", "d"},
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		if cmd.Flags().Changed("no-preview") {
			viper.Set(key.PreviewImages, false)
		}

		options := dash.Options{}
		if lo.Must(cmd.Flags().GetBool("movies")) {
			options.Section = dash.SectionPopularMovies
		}
		if lo.Must(cmd.Flags().GetBool("tv")) {
			options.Section = dash.SectionPopularTV
		}
		handleErr(dash.Run(&options))
	},
}
