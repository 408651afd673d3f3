// Package preview renders the fzf preview pane for a selected row.
//
// The pane combines a poster image drawn by chafa with a cached TMDB detail
// panel. Both halves are cached on disk so scrolling through a result list
// does not hammer the network.
package preview

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/network"
	"github.com/cinecli/cinecli/style"
	"github.com/cinecli/cinecli/tmdb"
	"github.com/cinecli/cinecli/ui"
	"github.com/cinecli/cinecli/util"
	"github.com/cinecli/cinecli/where"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

// Payload is the subset of a picker row's hidden column the preview needs.
// Item rows and episode rows both decode into it.
type Payload struct {
	ID           int64      `json:"id"`
	MediaType    media.Kind `json:"media_type"`
	Title        string     `json:"title"`
	PosterPath   string     `json:"poster_path"`
	BackdropPath string     `json:"backdrop_path"`
	Season       int        `json:"season,omitempty"`
	Episode      int        `json:"episode,omitempty"`
}

func (p *Payload) item() *media.Item {
	return &media.Item{
		ID:           p.ID,
		Kind:         p.MediaType,
		PosterPath:   p.PosterPath,
		BackdropPath: p.BackdropPath,
	}
}

func (p *Payload) isEpisode() bool {
	return p.MediaType == media.TV && p.Season > 0 && p.Episode > 0
}

// Render draws the preview for one encoded payload to out. Arguments may be
// raw JSON or the base64 form the picker embeds; both are accepted so the
// subcommand can be exercised by hand.
func Render(encoded string, out io.Writer) error {
	var payload Payload
	if err := json.Unmarshal([]byte(encoded), &payload); err != nil {
		if err := ui.DecodePayload(encoded, &payload); err != nil {
			return fmt.Errorf("preview: undecodable payload")
		}
	}

	cols, rows := paneSize()

	posterURL := payload.item().PosterURL()
	if posterURL == "" {
		posterURL = payload.item().BackdropURL()
	}

	if posterURL != "" {
		if path, err := cachedPoster(posterURL); err == nil {
			drawPoster(path, cols, rows, out)
		} else {
			log.Debugf("preview: poster: %v", err)
			fmt.Fprintln(out, "(no poster)")
		}
	} else {
		fmt.Fprintln(out, "(no poster)")
	}

	details, err := cachedDetails(&payload, cols)
	if err != nil {
		log.Debugf("preview: details: %v", err)
		return nil
	}
	if details != "" {
		fmt.Fprintln(out)
		fmt.Fprint(out, details)
	}
	return nil
}

// paneSize resolves the preview pane dimensions. fzf exports them; outside
// fzf the terminal size is the best guess.
func paneSize() (cols, rows int) {
	cols, rows = 80, 40

	if c, err := strconv.Atoi(os.Getenv("FZF_PREVIEW_COLUMNS")); err == nil && c > 0 {
		cols = c
		if r, err := strconv.Atoi(os.Getenv("FZF_PREVIEW_LINES")); err == nil && r > 0 {
			rows = r
		}
		return cols, rows
	}

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		cols, rows = w, h
	}
	return cols, rows
}

// cachedPoster downloads a poster once and returns its cache path.
func cachedPoster(url string) (string, error) {
	sum := sha256.Sum256([]byte(url))
	path := filepath.Join(where.Posters(), fmt.Sprintf("%x.jpg", sum[:16]))

	if info, err := filesystem.API().Stat(path); err == nil && info.Size() > 0 {
		return path, nil
	}

	resp, err := network.Client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("poster fetch: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", err
	}
	if err := filesystem.API().WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// drawPoster renders the image with chafa sized to the pane.
func drawPoster(path string, cols, rows int, out io.Writer) {
	chafa, err := exec.LookPath("chafa")
	if err != nil {
		fmt.Fprintln(out, "(install chafa for poster previews)")
		return
	}

	// Leave room for the detail panel below the image.
	imageRows := util.Max(8, rows/2)

	cmd := exec.Command(chafa, "-s", fmt.Sprintf("%dx%d", cols, imageRows), path)
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		log.Debugf("preview: chafa: %v", err)
	}
}

// cachedDetails formats the TMDB detail panel, reusing a per-item cache file.
func cachedDetails(p *Payload, cols int) (string, error) {
	suffix := ""
	if p.isEpisode() {
		suffix = fmt.Sprintf("_%dx%d", p.Season, p.Episode)
	}
	cachePath := filepath.Join(where.Posters(), fmt.Sprintf("info_%s_%d%s.txt", p.MediaType, p.ID, suffix))

	if data, err := filesystem.API().ReadFile(cachePath); err == nil && len(data) > 0 {
		return string(data), nil
	}

	client, err := tmdb.New()
	if err != nil {
		return "", err
	}

	details, err := formatDetails(client, p, cols)
	if err != nil {
		return "", err
	}

	if err := filesystem.API().WriteFile(cachePath, []byte(details), 0644); err != nil {
		log.Debugf("preview: cache write: %v", err)
	}
	return details, nil
}

func formatDetails(client *tmdb.Client, p *Payload, cols int) (string, error) {
	switch {
	case p.isEpisode():
		episode, err := client.Episode(p.ID, p.Season, p.Episode)
		if err != nil {
			return "", err
		}
		show, showErr := client.TV(p.ID)
		title := p.Title
		if showErr == nil && show.Name != "" {
			title = show.Name
		}

		var b strings.Builder
		writeField(&b, "Title", title, cols)
		writeField(&b, "Episode", fmt.Sprintf("S%02dE%02d %s", p.Season, p.Episode, episode.Name), cols)
		b.WriteString(rule(cols))
		writeField(&b, "Score", formatScore(episode.VoteAverage, 0), cols)
		writeField(&b, "Air", orDash(episode.AirDate), cols)
		writeField(&b, "Runtime", formatRuntime(episode.Runtime), cols)
		writeOverview(&b, episode.Overview, cols)
		return b.String(), nil

	case p.MediaType == media.TV:
		show, err := client.TV(p.ID)
		if err != nil {
			return "", err
		}

		epLength := 0
		if len(show.EpisodeRunTime) > 0 {
			epLength = show.EpisodeRunTime[0]
		}

		var b strings.Builder
		writeField(&b, "Title", orDash(show.Name), cols)
		b.WriteString(rule(cols))
		writeField(&b, "Score", formatScore(show.VoteAverage, show.VoteCount), cols)
		writeField(&b, "Seasons", strconv.Itoa(show.NumberOfSeasons), cols)
		writeField(&b, "Episodes", strconv.Itoa(show.NumberOfEpisodes), cols)
		writeField(&b, "Ep Length", formatRuntime(epLength), cols)
		writeField(&b, "Genres", genreList(show.Genres), cols)
		writeField(&b, "Status", orDash(show.Status), cols)
		writeOverview(&b, show.Overview, cols)
		return b.String(), nil

	default:
		movie, err := client.Movie(p.ID)
		if err != nil {
			return "", err
		}

		var b strings.Builder
		writeField(&b, "Title", orDash(movie.Title), cols)
		b.WriteString(rule(cols))
		writeField(&b, "Score", formatScore(movie.VoteAverage, movie.VoteCount), cols)
		writeField(&b, "Runtime", formatRuntime(movie.Runtime), cols)
		writeField(&b, "Genres", genreList(movie.Genres), cols)
		writeField(&b, "Status", orDash(movie.Status), cols)
		writeField(&b, "Release", orDash(movie.ReleaseDate), cols)
		writeOverview(&b, movie.Overview, cols)
		return b.String(), nil
	}
}

func writeField(b *strings.Builder, name, value string, cols int) {
	b.WriteString(style.Bold(name + ":"))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

func writeOverview(b *strings.Builder, overview string, cols int) {
	overview = strings.TrimSpace(overview)
	if overview == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(rule(cols))
	b.WriteString(wordwrap.String(overview, cols))
	b.WriteString("\n")
}

func rule(cols int) string {
	width := util.Min(util.Max(cols, 10), 80)
	return style.Faint(strings.Repeat("─", width)) + "\n"
}

func formatScore(rating float64, votes int) string {
	if rating == 0 {
		return "-"
	}
	score := strconv.FormatFloat(rating, 'f', 1, 64)
	if votes > 0 {
		return score + " " + style.Faint(fmt.Sprintf("(%d votes)", votes))
	}
	return score
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", minutes)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func genreList(genres []tmdb.Genre) string {
	if len(genres) == 0 {
		return "-"
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}
