// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/provider/vidsrc"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(vidsrcCmd)
	streamFlags(vidsrcCmd)
	vidsrcCmd.Flags().Int("max-hosts", 0, "Maximum number of embed hosts to crawl")
	vidsrcCmd.Flags().Int("timeout", 0, "Per-page fetch timeout in seconds")
}

// vidsrcCmd resolves streams through VidSrc embed scraping without the dashboard.
var vidsrcCmd = &cobra.Command{
	Use:   "vidsrc <movie|tv> <tmdb-id>",
	Short: "Resolve and play streams from VidSrc embeds",
	Long: `Resolve direct streams for a movie or TV episode by crawling VidSrc
embed pages, then play, download or print them. TV requires -s and -e.`,
	Example: `  cinecli vidsrc movie 27205
  cinecli vidsrc tv 1396 -s 2 -e 5 --first
  cinecli vidsrc movie 27205 --json`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if hosts := lo.Must(cmd.Flags().GetInt("max-hosts")); hosts > 0 {
			viper.Set(key.VidsrcMaxHosts, hosts)
		}
		if timeout := lo.Must(cmd.Flags().GetInt("timeout")); timeout > 0 {
			viper.Set(key.VidsrcTimeoutSeconds, timeout)
		}

		runStreamCommand(cmd, args, vidsrc.New(), false)
	},
}
