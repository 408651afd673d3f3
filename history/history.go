// Package history keeps an append-only JSONL record of playback and download activity.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Actions recorded per entry.
const (
	ActionSelect   = "select"
	ActionPlay     = "play"
	ActionDownload = "download"
)

// EpisodeRef identifies a single TV episode inside an entry.
type EpisodeRef struct {
	Season  int    `json:"season"`
	Episode int    `json:"episode"`
	Name    string `json:"name,omitempty"`
}

// Entry is one line of the history file. Lines are only ever appended and
// never rewritten, so old entries survive schema additions.
type Entry struct {
	Action      string      `json:"action"`
	Method      string      `json:"method,omitempty"`
	ID          int64       `json:"id"`
	MediaType   string      `json:"media_type"`
	Title       string      `json:"title,omitempty"`
	PosterURL   string      `json:"poster_url,omitempty"`
	BackdropURL string      `json:"backdrop_url,omitempty"`
	ReleaseYear int         `json:"release_year,omitempty"`
	VoteAverage float64     `json:"vote_average,omitempty"`
	Episode     *EpisodeRef `json:"episode,omitempty"`
	OutDir      string      `json:"out_dir,omitempty"`
	Timestamp   string      `json:"ts,omitempty"`
}

// NewEntry builds a history entry for an item; episode may be nil for movies.
func NewEntry(action, method string, item *media.Item, episode *media.Episode) Entry {
	e := Entry{
		Action:      action,
		Method:      method,
		ID:          item.ID,
		MediaType:   string(item.Kind),
		Title:       item.Title,
		PosterURL:   item.PosterURL(),
		BackdropURL: item.BackdropURL(),
		ReleaseYear: item.ReleaseYear,
		VoteAverage: item.VoteAverage,
	}
	if episode != nil {
		e.Episode = &EpisodeRef{Season: episode.Season, Episode: episode.Episode, Name: episode.Name}
	}
	return e
}

// Item reconstructs the media item an entry refers to.
func (e Entry) Item() *media.Item {
	return &media.Item{
		ID:          e.ID,
		Kind:        media.Kind(e.MediaType),
		Title:       e.Title,
		ReleaseYear: e.ReleaseYear,
		VoteAverage: e.VoteAverage,
	}
}

// aggregateKey distinguishes movies and individual episodes.
func (e Entry) aggregateKey() string {
	var season, episode int
	if e.Episode != nil {
		season, episode = e.Episode.Season, e.Episode.Episode
	}
	return fmt.Sprintf("%s:%d:%d:%d", e.MediaType, e.ID, season, episode)
}

// Append writes one entry to the history file, stamping it with the current
// UTC time. Recording is skipped entirely when history is disabled.
func Append(entry Entry) error {
	if !viper.GetBool(key.HistoryWrite) {
		return nil
	}

	entry.Timestamp = time.Now().UTC().Format(time.RFC3339)

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	file, err := filesystem.API().OpenFile(where.History(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(append(line, '\n'))
	return err
}

// List returns the most recent entries, oldest first, at most limit of them.
// Corrupt lines are skipped so one bad write never poisons the whole file.
func List(limit int) ([]Entry, error) {
	file, err := filesystem.API().Open(where.History())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Summary is one unique item or episode aggregated from recent history.
type Summary struct {
	Entry
	LastMethod string
	LastPlayTS string
}

// Summarize folds recent entries into unique items, newest activity first.
// Later entries refresh metadata; play entries additionally record the method
// used so the dashboard can offer a quick replay.
func Summarize(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = viper.GetInt(key.HistoryLimit)
	}

	entries, err := List(limit)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*Summary)
	var order []string

	for _, entry := range entries {
		k := entry.aggregateKey()
		s, ok := byKey[k]
		if !ok {
			s = &Summary{Entry: entry}
			byKey[k] = s
			order = append(order, k)
		}

		if entry.Title != "" {
			s.Title = entry.Title
		}
		if entry.PosterURL != "" {
			s.PosterURL = entry.PosterURL
		}
		if entry.BackdropURL != "" {
			s.BackdropURL = entry.BackdropURL
		}
		if entry.ReleaseYear != 0 {
			s.ReleaseYear = entry.ReleaseYear
		}
		if entry.VoteAverage != 0 {
			s.VoteAverage = entry.VoteAverage
		}
		if entry.Episode != nil {
			s.Episode = entry.Episode
		}
		if entry.Action == ActionPlay && entry.Method != "" {
			s.LastMethod = entry.Method
			s.LastPlayTS = entry.Timestamp
		}
		if entry.Timestamp != "" {
			s.Timestamp = entry.Timestamp
		}
	}

	summaries := lo.Map(order, func(k string, _ int) Summary {
		return *byKey[k]
	})

	// Recently active first; RFC 3339 timestamps sort lexicographically.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].sortKey() > summaries[j].sortKey()
	})
	return summaries, nil
}

func (s Summary) sortKey() string {
	if s.LastPlayTS != "" {
		return s.LastPlayTS
	}
	return s.Timestamp
}
