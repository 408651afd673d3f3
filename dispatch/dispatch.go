// Package dispatch hands resolved streams to external players and downloaders.
//
// Processes are started detached and never awaited: the application exits
// while mpv or webtorrent keeps running. Callers record history only after a
// spawn succeeded.
package dispatch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Supported playback engines, in fallback order.
var players = []string{"mpv", "vlc", "clapper"}

// Runner starts external processes. Tests substitute a fake.
type Runner interface {
	LookPath(name string) (string, error)
	Start(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdin = nil
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	// Reap in the background to avoid zombies while staying detached.
	go func() { _ = cmd.Wait() }()

	log.Infof("spawned %s (pid %d)", name, cmd.Process.Pid)
	return nil
}

var runner Runner = execRunner{}

// SetRunner swaps the process runner, used by tests.
func SetRunner(r Runner) { runner = r }

// ResolvePlayer returns the playback engine to use: the configured one when
// installed, otherwise the first supported engine found on PATH.
func ResolvePlayer() (string, error) {
	configured := viper.GetString(key.Player)
	if configured != "" && !lo.Contains(players, configured) {
		log.Warnf("unsupported player %q configured, falling back", configured)
		configured = ""
	}

	candidates := lo.Uniq(append([]string{configured}, players...))
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := runner.LookPath(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no supported player (mpv/vlc/clapper) found on PATH")
}

// Play opens a direct URL stream in the resolved player. The returned method
// names the engine that was actually spawned.
func Play(stream *media.Stream, title string) (method string, err error) {
	if stream.Kind == media.StreamMagnet {
		return PlayMagnet(stream)
	}

	player, err := ResolvePlayer()
	if err != nil {
		return "", err
	}

	var args []string
	switch player {
	case "mpv":
		if title != "" {
			args = append(args, "--force-media-title="+title)
		}
		if stream.Referer != "" {
			args = append(args, "--referrer="+stream.Referer)
		}
	case "vlc":
		if stream.Referer != "" {
			args = append(args, "--http-referrer="+stream.Referer)
		}
	}
	args = append(args, stream.URL)

	if err := runner.Start(player, args...); err != nil {
		return "", err
	}
	return player, nil
}

// PlayMagnet streams a torrent through webtorrent-cli into the resolved player.
func PlayMagnet(stream *media.Stream) (method string, err error) {
	if _, err := runner.LookPath("webtorrent"); err != nil {
		return "", fmt.Errorf("webtorrent-cli not found on PATH, install with: npm i -g webtorrent-cli")
	}

	player, err := ResolvePlayer()
	if err != nil {
		return "", err
	}

	args := []string{stream.URL, "--" + player, "--out", webtorrentDir()}
	if stream.FileIndex >= 0 {
		args = append(args, "--select", strconv.Itoa(stream.FileIndex))
	} else {
		args = append(args, "--interactive-select")
	}

	if err := runner.Start("webtorrent", args...); err != nil {
		return "", err
	}
	return "webtorrent", nil
}

// Download saves a stream to the download directory: yt-dlp for direct URLs,
// webtorrent-cli for magnets.
func Download(stream *media.Stream) (method, outDir string, err error) {
	outDir = downloadDir()

	if stream.Kind == media.StreamMagnet {
		if _, err := runner.LookPath("webtorrent"); err != nil {
			return "", "", fmt.Errorf("webtorrent-cli not found on PATH, install with: npm i -g webtorrent-cli")
		}

		args := []string{stream.URL, "--out", outDir}
		if stream.FileIndex >= 0 {
			args = append(args, "--select", strconv.Itoa(stream.FileIndex))
		} else {
			args = append(args, "--interactive-select")
		}
		if err := runner.Start("webtorrent", args...); err != nil {
			return "", "", err
		}
		return "webtorrent", outDir, nil
	}

	if _, err := runner.LookPath("yt-dlp"); err != nil {
		return "", "", fmt.Errorf("yt-dlp not found on PATH, install it to enable downloads")
	}

	args := []string{stream.URL, "-o", filepath.Join(outDir, "%(title)s.%(ext)s")}
	if stream.Referer != "" {
		args = append(args, "--referer", stream.Referer)
	}
	if err := runner.Start("yt-dlp", args...); err != nil {
		return "", "", err
	}
	return "yt-dlp", outDir, nil
}

func downloadDir() string {
	if dir := viper.GetString(key.DownloadDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

func webtorrentDir() string {
	if dir := viper.GetString(key.WebtorrentTempDir); dir != "" {
		return dir
	}
	return where.WebtorrentTemp()
}
