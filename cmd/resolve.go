// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/cinecli/cinecli/dispatch"
	"github.com/cinecli/cinecli/history"
	"github.com/cinecli/cinecli/icon"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/provider"
	"github.com/cinecli/cinecli/tmdb"
	"github.com/cinecli/cinecli/ui"
	"github.com/cinecli/cinecli/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// streamFlags wires the flags shared by the direct provider commands.
func streamFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("season", "s", 0, "Season number, required for tv")
	cmd.Flags().IntP("episode", "e", 0, "Episode number, required for tv")
	cmd.Flags().BoolP("json", "j", false, "Print the resolved streams as JSON and exit")
	cmd.Flags().BoolP("first", "f", false, "Skip the picker and take the first stream")
	cmd.Flags().BoolP("download", "d", false, "Download instead of playing")
	cmd.MarkFlagsMutuallyExclusive("json", "download")
}

// parseStreamArgs validates the positional <movie|tv> <tmdb-id> pair.
func parseStreamArgs(args []string) (media.Kind, int64, error) {
	kind, err := media.ParseKind(args[0])
	if err != nil {
		return "", 0, err
	}

	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid TMDB id %q", args[1])
	}

	return kind, id, nil
}

// runStreamCommand is the body of the direct provider commands: look up the
// item, resolve streams, then either print, pick and play, or download.
func runStreamCommand(cmd *cobra.Command, args []string, resolver provider.Resolver, needsIMDB bool) {
	kind, id, err := parseStreamArgs(args)
	handleErr(err)

	req := provider.Request{
		Kind:    kind,
		TMDBID:  id,
		Season:  lo.Must(cmd.Flags().GetInt("season")),
		Episode: lo.Must(cmd.Flags().GetInt("episode")),
	}
	handleErr(req.Validate())

	client, err := tmdb.New()
	handleErr(err)

	item, err := client.Item(kind, id)
	handleErr(err)

	if needsIMDB {
		imdbID, err := client.ExternalIDs(kind, id)
		handleErr(err)
		req.IMDBID = imdbID
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Resolving streams for %s...", icon.Get(icon.Progress), item.Title))
	streams, err := resolver.Resolve(req)
	erase()
	handleErr(err)

	if lo.Must(cmd.Flags().GetBool("json")) {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(streams))
		return
	}

	stream := streams[0]
	if !lo.Must(cmd.Flags().GetBool("first")) {
		picked, ok, err := ui.Select("Stream", streams, func(s *media.Stream) string {
			return s.Display()
		})
		handleErr(err)
		if !ok {
			return
		}
		stream = picked
	}

	episode := streamEpisode(client, req)
	if lo.Must(cmd.Flags().GetBool("download")) {
		method, outDir, err := dispatch.Download(stream)
		handleErr(err)

		entry := history.NewEntry(history.ActionDownload, method, item, episode)
		entry.OutDir = outDir
		handleErr(history.Append(entry))
		return
	}

	title := item.Title
	if episode != nil {
		title = fmt.Sprintf("%s %s", item.Title, episode.String())
	}

	method, err := dispatch.Play(stream, title)
	handleErr(err)
	handleErr(history.Append(history.NewEntry(history.ActionPlay, method, item, episode)))
}

// streamEpisode fetches the episode name for history labels. Lookup failures
// degrade to the plain season/episode numbers.
func streamEpisode(client *tmdb.Client, req provider.Request) *media.Episode {
	if !req.IsTV() {
		return nil
	}

	episode := &media.Episode{Season: req.Season, Episode: req.Episode}
	if details, err := client.Episode(req.TMDBID, req.Season, req.Episode); err == nil {
		episode.Name = details.Name
		episode.AirDate = details.AirDate
		episode.Overview = details.Overview
	}
	return episode
}
