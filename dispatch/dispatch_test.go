package dispatch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

// fakeRunner pretends the given binaries are installed and records spawns.
type fakeRunner struct {
	installed []string
	spawned   [][]string
	startErr  error
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	for _, bin := range f.installed {
		if bin == name {
			return "/usr/bin/" + name, nil
		}
	}
	return "", fmt.Errorf("%s: executable file not found in $PATH", name)
}

func (f *fakeRunner) Start(name string, args ...string) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.spawned = append(f.spawned, append([]string{name}, args...))
	return nil
}

func (f *fakeRunner) last() []string {
	if len(f.spawned) == 0 {
		return nil
	}
	return f.spawned[len(f.spawned)-1]
}

func useRunner(f *fakeRunner) func() {
	SetRunner(f)
	return func() { SetRunner(execRunner{}) }
}

func TestResolvePlayer(t *testing.T) {
	Convey("The configured player wins when installed", t, func() {
		viper.Set(key.Player, "vlc")
		defer viper.Set(key.Player, "mpv")
		defer useRunner(&fakeRunner{installed: []string{"mpv", "vlc"}})()

		player, err := ResolvePlayer()
		So(err, ShouldBeNil)
		So(player, ShouldEqual, "vlc")
	})

	Convey("A missing configured player falls back to mpv then vlc", t, func() {
		viper.Set(key.Player, "clapper")
		defer viper.Set(key.Player, "mpv")
		defer useRunner(&fakeRunner{installed: []string{"vlc"}})()

		player, err := ResolvePlayer()
		So(err, ShouldBeNil)
		So(player, ShouldEqual, "vlc")
	})

	Convey("No player at all is an error", t, func() {
		defer useRunner(&fakeRunner{})()

		_, err := ResolvePlayer()
		So(err, ShouldNotBeNil)
	})
}

func TestPlay(t *testing.T) {
	viper.Set(key.Player, "mpv")

	Convey("Direct streams open in mpv with title and referer", t, func() {
		fake := &fakeRunner{installed: []string{"mpv"}}
		defer useRunner(fake)()

		stream := &media.Stream{
			URL:     "https://cdn.example/master.m3u8",
			Kind:    media.StreamHLS,
			Referer: "https://vidsrc.xyz/embed/movie/27205",
		}

		method, err := Play(stream, "Inception")
		So(err, ShouldBeNil)
		So(method, ShouldEqual, "mpv")

		cmd := fake.last()
		So(cmd[0], ShouldEqual, "mpv")
		So(cmd, ShouldContain, "--force-media-title=Inception")
		So(cmd, ShouldContain, "--referrer=https://vidsrc.xyz/embed/movie/27205")
		So(cmd[len(cmd)-1], ShouldEqual, "https://cdn.example/master.m3u8")
	})

	Convey("Magnet streams route through webtorrent with the player flag", t, func() {
		fake := &fakeRunner{installed: []string{"mpv", "webtorrent"}}
		defer useRunner(fake)()

		stream := &media.Stream{
			URL:       "magnet:?xt=urn:btih:abc",
			Kind:      media.StreamMagnet,
			FileIndex: 3,
		}

		method, err := Play(stream, "")
		So(err, ShouldBeNil)
		So(method, ShouldEqual, "webtorrent")

		cmd := fake.last()
		So(cmd[0], ShouldEqual, "webtorrent")
		So(cmd, ShouldContain, "--mpv")
		So(cmd, ShouldContain, "--select")
		So(cmd, ShouldContain, "3")
		So(cmd, ShouldContain, "--out")
	})

	Convey("Magnets without webtorrent installed fail with advice", t, func() {
		defer useRunner(&fakeRunner{installed: []string{"mpv"}})()

		_, err := Play(&media.Stream{URL: "magnet:?xt=urn:btih:abc", Kind: media.StreamMagnet}, "")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "webtorrent")
	})
}

func TestDownload(t *testing.T) {
	viper.Set(key.Player, "mpv")

	Convey("Direct streams download through yt-dlp with an output template", t, func() {
		fake := &fakeRunner{installed: []string{"yt-dlp"}}
		defer useRunner(fake)()
		viper.Set(key.DownloadDir, "/tmp/dl")
		defer viper.Set(key.DownloadDir, "")

		stream := &media.Stream{URL: "https://cdn.example/direct.mp4", Kind: media.StreamMP4, Referer: "https://vidsrc.xyz/e"}

		method, outDir, err := Download(stream)
		So(err, ShouldBeNil)
		So(method, ShouldEqual, "yt-dlp")
		So(outDir, ShouldEqual, "/tmp/dl")

		cmd := fake.last()
		So(cmd[0], ShouldEqual, "yt-dlp")
		So(strings.Join(cmd, " "), ShouldContainSubstring, "-o /tmp/dl/%(title)s.%(ext)s")
		So(cmd, ShouldContain, "--referer")
	})

	Convey("Magnet streams download through webtorrent without a player", t, func() {
		fake := &fakeRunner{installed: []string{"webtorrent"}}
		defer useRunner(fake)()
		viper.Set(key.DownloadDir, "/tmp/dl")
		defer viper.Set(key.DownloadDir, "")

		stream := &media.Stream{URL: "magnet:?xt=urn:btih:abc", Kind: media.StreamMagnet, FileIndex: -1}

		method, _, err := Download(stream)
		So(err, ShouldBeNil)
		So(method, ShouldEqual, "webtorrent")

		cmd := strings.Join(fake.last(), " ")
		So(cmd, ShouldContainSubstring, "--out /tmp/dl")
		So(cmd, ShouldContainSubstring, "--interactive-select")
		So(cmd, ShouldNotContainSubstring, "--mpv")
	})
}
