// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cinecli/cinecli/color"
	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/dash"
	"github.com/cinecli/cinecli/icon"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/style"
	"github.com/cinecli/cinecli/util"
	"github.com/cinecli/cinecli/version"
	"github.com/cinecli/cinecli/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist playback and download activity to the history file")
	lo.Must0(viper.BindPFlag(key.HistoryWrite, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().String("proxy", "", "Proxy URL template with a trailing destination parameter")
	lo.Must0(viper.BindPFlag(key.NetworkProxy, rootCmd.PersistentFlags().Lookup("proxy")))

	rootCmd.PersistentFlags().StringP("player", "p", "", "Playback engine to prefer (mpv, vlc, clapper)")
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.Flags().BoolP("continue", "c", false, "Jump straight into the watch history")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the cinecli application.
var rootCmd = &cobra.Command{
	Use:   constant.CineCLI,
	Short: "A terminal client for finding, streaming and downloading movies & tv",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal client for finding, streaming and downloading movies & tv"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := dash.Options{}
		if lo.Must(cmd.Flags().GetBool("continue")) {
			options.Section = dash.SectionHistory
		}
		handleErr(dash.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
