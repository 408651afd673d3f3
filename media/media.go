// Package media defines the domain models shared between metadata search, stream resolution and dispatch.
package media

import (
	"fmt"

	"github.com/cinecli/cinecli/icon"
)

// Kind discriminates between the two supported media categories.
type Kind string

const (
	Movie Kind = "movie"
	TV    Kind = "tv"
)

// ParseKind validates a user-supplied media kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Movie, TV:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("media kind must be %q or %q, got %q", Movie, TV, s)
	}
}

// TMDB image CDN bases. w342 posters balance fidelity against terminal preview size.
const (
	posterBase   = "https://image.tmdb.org/t/p/w342"
	backdropBase = "https://image.tmdb.org/t/p/w300"
)

// Item represents a movie or TV show discovered through a TMDB search or listing.
// Items are immutable once fetched and discarded after the session unless recorded to history.
type Item struct {
	ID           int64   `json:"id"`
	Kind         Kind    `json:"media_type"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	ReleaseYear  int     `json:"release_year,omitempty"`
}

// PosterURL returns the full CDN URL for the item's poster, or "" when absent.
func (i *Item) PosterURL() string {
	if i.PosterPath == "" {
		return ""
	}
	return posterBase + i.PosterPath
}

// BackdropURL returns the full CDN URL for the item's backdrop, or "" when absent.
func (i *Item) BackdropURL() string {
	if i.BackdropPath == "" {
		return ""
	}
	return backdropBase + i.BackdropPath
}

func (i *Item) String() string {
	label := icon.Get(icon.Movie)
	if i.Kind == TV {
		label = icon.Get(icon.TV)
	}

	s := fmt.Sprintf("%s %s", label, i.Title)
	if i.ReleaseYear != 0 {
		s += fmt.Sprintf(" (%d)", i.ReleaseYear)
	}
	if i.VoteAverage > 0 {
		s += fmt.Sprintf(" ★%.1f", i.VoteAverage)
	}
	return fmt.Sprintf("%s [id:%d]", s, i.ID)
}

// Episode identifies a single TV episode within an Item.
type Episode struct {
	Season   int    `json:"season"`
	Episode  int    `json:"episode"`
	Name     string `json:"episode_name,omitempty"`
	AirDate  string `json:"air_date,omitempty"`
	Overview string `json:"overview,omitempty"`
}

func (e *Episode) String() string {
	s := fmt.Sprintf("S%02dE%02d", e.Season, e.Episode)
	if e.Name != "" {
		s += " - " + e.Name
	}
	return s
}
