// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"github.com/cinecli/cinecli/provider/torrentio"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(torrentioCmd)
	streamFlags(torrentioCmd)
}

// torrentioCmd resolves magnet streams through the Torrentio addon without the dashboard.
var torrentioCmd = &cobra.Command{
	Use:   "torrentio <movie|tv> <tmdb-id>",
	Short: "Resolve and play magnet streams from Torrentio",
	Long: `Resolve magnet streams for a movie or TV episode through the public
Torrentio Stremio addon, then play them with webtorrent, download or print
them. The TMDB id is translated to an IMDb id first. TV requires -s and -e.`,
	Example: `  cinecli torrentio movie 27205
  cinecli torrentio tv 1396 -s 2 -e 5 --download
  cinecli torrentio movie 27205 --json --first`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runStreamCommand(cmd, args, torrentio.New(), true)
	},
}
