package dash

import (
	"fmt"
	"testing"

	"github.com/cinecli/cinecli/dispatch"
	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/history"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestAvailableActions(t *testing.T) {
	Convey("Without any credentials only the open providers appear", t, func() {
		viper.Set(key.TorboxAPIKey, "")
		viper.Set(key.StreamthruManifest, "")
		viper.Set(key.CometManifest, "")

		actions := availableActions()
		So(actions, ShouldContain, actionPlayVidsrc)
		So(actions, ShouldContain, actionPlayTorrentio)
		So(actions, ShouldContain, actionDownloadVidsrc)
		So(actions, ShouldContain, actionDownloadTorrentio)
		So(actions, ShouldContain, actionOpenTMDB)
		So(actions, ShouldNotContain, actionPlayTorbox)
		So(actions, ShouldNotContain, actionPlayTorrentioTorbox)
		So(actions, ShouldNotContain, actionPlayStreamthru)
		So(actions, ShouldNotContain, actionPlayComet)
	})

	Convey("A TorBox key unlocks the debrid entries", t, func() {
		viper.Set(key.TorboxAPIKey, "tb-secret")
		defer viper.Set(key.TorboxAPIKey, "")

		actions := availableActions()
		So(actions, ShouldContain, actionPlayTorbox)
		So(actions, ShouldContain, actionPlayTorrentioTorbox)
	})

	Convey("Configured addon manifests unlock their entries", t, func() {
		viper.Set(key.StreamthruManifest, "https://addon.example/st/manifest.json")
		viper.Set(key.CometManifest, "https://addon.example/comet/manifest.json")
		defer viper.Set(key.StreamthruManifest, "")
		defer viper.Set(key.CometManifest, "")

		actions := availableActions()
		So(actions, ShouldContain, actionPlayStreamthru)
		So(actions, ShouldContain, actionPlayComet)
	})
}

func TestActionResolver(t *testing.T) {
	Convey("Each action maps to its provider", t, func() {
		cases := map[action]string{
			actionPlayVidsrc:          "vidsrc",
			actionDownloadVidsrc:      "vidsrc",
			actionPlayTorrentio:       "torrentio",
			actionDownloadTorrentio:   "torrentio",
			actionPlayTorbox:          "torbox",
			actionPlayTorrentioTorbox: "torrentio+torbox",
		}

		for a, name := range cases {
			r, err := a.resolver()
			So(err, ShouldBeNil)
			So(r.Name(), ShouldEqual, name)
		}
	})

	Convey("Addon actions require their manifest", t, func() {
		viper.Set(key.StreamthruManifest, "")
		_, err := actionPlayStreamthru.resolver()
		So(err, ShouldNotBeNil)

		viper.Set(key.StreamthruManifest, "https://addon.example/st/manifest.json")
		defer viper.Set(key.StreamthruManifest, "")
		r, err := actionPlayStreamthru.resolver()
		So(err, ShouldBeNil)
		So(r.Name(), ShouldEqual, "streamthru")
	})
}

func TestActionLabels(t *testing.T) {
	Convey("Every action renders a distinct label", t, func() {
		all := []action{
			actionPlayVidsrc, actionPlayTorrentio, actionPlayTorbox,
			actionPlayTorrentioTorbox, actionPlayStreamthru, actionPlayComet,
			actionDownloadVidsrc, actionDownloadTorrentio, actionOpenTMDB,
		}

		seen := make(map[string]bool)
		for _, a := range all {
			label := a.String()
			So(label, ShouldNotEqual, "unknown")
			So(seen[label], ShouldBeFalse)
			seen[label] = true
		}
	})

	Convey("Download actions know they are downloads", t, func() {
		So(actionDownloadVidsrc.isDownload(), ShouldBeTrue)
		So(actionDownloadTorrentio.isDownload(), ShouldBeTrue)
		So(actionPlayVidsrc.isDownload(), ShouldBeFalse)
	})
}

// spawnRunner pretends the given binaries are installed and either spawns
// silently or fails every start.
type spawnRunner struct {
	installed []string
	startErr  error
}

func (r *spawnRunner) LookPath(name string) (string, error) {
	for _, bin := range r.installed {
		if bin == name {
			return "/usr/bin/" + name, nil
		}
	}
	return "", fmt.Errorf("%s: executable file not found in $PATH", name)
}

func (r *spawnRunner) Start(string, ...string) error { return r.startErr }

func TestDispatchStreamHistory(t *testing.T) {
	Convey("Given a session about to dispatch a stream", t, func() {
		viper.Set(key.HistoryWrite, true)
		viper.Set(key.Player, "mpv")
		viper.Set(key.DownloadDir, "/downloads")
		_ = filesystem.API().Remove(where.History())

		d := newDash(nil)
		d.item = &media.Item{ID: 603, Kind: media.Movie, Title: "The Matrix"}
		stream := &media.Stream{URL: "https://cdn.example/matrix.m3u8", Kind: media.StreamHLS, Provider: "vidsrc"}

		Convey("A failed spawn leaves history untouched", func() {
			dispatch.SetRunner(&spawnRunner{installed: []string{"mpv"}, startErr: fmt.Errorf("exec format error")})
			defer dispatch.SetRunner(&spawnRunner{})

			d.action = actionPlayVidsrc
			So(d.dispatchStream(stream), ShouldNotBeNil)

			entries, err := history.List(10)
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})

		Convey("A successful play writes one play entry", func() {
			dispatch.SetRunner(&spawnRunner{installed: []string{"mpv"}})
			defer dispatch.SetRunner(&spawnRunner{})

			d.action = actionPlayVidsrc
			So(d.dispatchStream(stream), ShouldBeNil)

			entries, err := history.List(10)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
			So(entries[0].Action, ShouldEqual, history.ActionPlay)
			So(entries[0].Method, ShouldEqual, "mpv")
			So(entries[0].Title, ShouldEqual, "The Matrix")
		})

		Convey("A successful download records the output directory", func() {
			dispatch.SetRunner(&spawnRunner{installed: []string{"yt-dlp"}})
			defer dispatch.SetRunner(&spawnRunner{})

			d.action = actionDownloadVidsrc
			So(d.dispatchStream(stream), ShouldBeNil)

			entries, err := history.List(10)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 1)
			So(entries[0].Action, ShouldEqual, history.ActionDownload)
			So(entries[0].Method, ShouldEqual, "yt-dlp")
			So(entries[0].OutDir, ShouldEqual, "/downloads")
		})
	})
}

func TestStateHistory(t *testing.T) {
	Convey("The state machine walks back through its history", t, func() {
		d := newDash(nil)
		d.state = sectionSelectState

		d.newState(itemSelectState)
		d.newState(actionSelectState)
		So(d.state, ShouldEqual, actionSelectState)

		d.previousState()
		So(d.state, ShouldEqual, itemSelectState)

		d.previousState()
		So(d.state, ShouldEqual, sectionSelectState)

		Convey("Re-entering the current state is a no-op", func() {
			d.newState(sectionSelectState)
			So(d.statesHistory.Len(), ShouldEqual, 0)
		})
	})

	Convey("Skipping with an empty history ends the session", t, func() {
		d := newDash(nil)
		d.state = searchInputState

		d.previousState()
		So(d.state, ShouldEqual, quitState)
	})
}

func TestStreamTitle(t *testing.T) {
	Convey("Stream titles include the episode marker for tv", t, func() {
		d := newDash(nil)
		d.item = &media.Item{ID: 1396, Kind: media.TV, Title: "Breaking Bad"}
		d.episode = &media.Episode{Season: 2, Episode: 5, Name: "Breakage"}

		So(d.streamTitle(), ShouldContainSubstring, "Breaking Bad")
		So(d.streamTitle(), ShouldContainSubstring, "S02E05")

		d.episode = nil
		So(d.streamTitle(), ShouldEqual, "Breaking Bad")
	})
}
