// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/cinecli/cinecli/color"
	"github.com/cinecli/cinecli/dash"
	"github.com/cinecli/cinecli/history"
	"github.com/cinecli/cinecli/icon"
	"github.com/cinecli/cinecli/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("interactive", "i", false, "Pick a history entry and replay it")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON lines")
	historyCmd.Flags().IntP("limit", "l", 30, "Maximum number of entries to show")
}

// historyCmd lists recent playback and download activity.
var historyCmd = &cobra.Command{
	Use:     "history",
	Short:   "Show or replay recent playback and download history",
	Aliases: []string{"h"},
	Run: func(cmd *cobra.Command, args []string) {
		var (
			interactive = lo.Must(cmd.Flags().GetBool("interactive"))
			asJson      = lo.Must(cmd.Flags().GetBool("json"))
			limit       = lo.Must(cmd.Flags().GetInt("limit"))
		)

		if interactive {
			CheckDependencies()
			handleErr(dash.Run(&dash.Options{Section: dash.SectionHistory}))
			return
		}

		summaries, err := history.Summarize(limit)
		handleErr(err)

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			for _, s := range summaries {
				handleErr(encoder.Encode(s.Entry))
			}
			return
		}

		if len(summaries) == 0 {
			fmt.Printf("%s history is empty\n", icon.Get(icon.History))
			return
		}

		for _, s := range summaries {
			label := s.Title
			if s.Episode != nil {
				label += fmt.Sprintf(" S%02dE%02d", s.Episode.Season, s.Episode.Episode)
			}

			meta := string(s.MediaType)
			if s.LastMethod != "" {
				meta += ", " + s.LastMethod
			}

			fmt.Printf(
				"%s %s %s\n",
				icon.Get(icon.History),
				style.Fg(color.Purple)(label),
				style.Faint("("+meta+")"),
			)
		}
	},
}
