package tmdb

import (
	"fmt"
	"net/url"

	"github.com/cinecli/cinecli/media"
)

// Season summarizes a single season from a TV details response.
type Season struct {
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	Name         string `json:"name"`
}

// TVDetails is the subset of the TV show detail payload the application consumes.
type TVDetails struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Overview         string   `json:"overview"`
	Status           string   `json:"status"`
	FirstAirDate     string   `json:"first_air_date"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	NumberOfSeasons  int      `json:"number_of_seasons"`
	NumberOfEpisodes int      `json:"number_of_episodes"`
	EpisodeRunTime   []int    `json:"episode_run_time"`
	Genres           []Genre  `json:"genres"`
	Seasons          []Season `json:"seasons"`
}

// Genre is a single TMDB genre reference.
type Genre struct {
	Name string `json:"name"`
}

// BrowsableSeasons filters out specials and empty seasons, preserving order.
func (d *TVDetails) BrowsableSeasons() []Season {
	var out []Season
	for _, s := range d.Seasons {
		if s.SeasonNumber > 0 && s.EpisodeCount > 0 {
			out = append(out, s)
		}
	}
	return out
}

// SeasonEpisode is a single episode row from a season detail payload.
type SeasonEpisode struct {
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	AirDate       string  `json:"air_date"`
	Overview      string  `json:"overview"`
	Runtime       int     `json:"runtime"`
	VoteAverage   float64 `json:"vote_average"`
}

// SeasonDetails carries the episode listing for one season.
type SeasonDetails struct {
	Episodes []SeasonEpisode `json:"episodes"`
}

// TV fetches details for a TV show, including its season index.
func (c *Client) TV(id int64) (*TVDetails, error) {
	var details TVDetails
	if err := c.get(fmt.Sprintf("/tv/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// TVSeason fetches the episode listing for one season of a TV show.
func (c *Client) TVSeason(id int64, season int) (*SeasonDetails, error) {
	var details SeasonDetails
	if err := c.get(fmt.Sprintf("/tv/%d/season/%d", id, season), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Episode fetches details for a single episode of a TV show.
func (c *Client) Episode(id int64, season, episode int) (*SeasonEpisode, error) {
	var details SeasonEpisode
	if err := c.get(fmt.Sprintf("/tv/%d/season/%d/episode/%d", id, season, episode), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// MovieDetails is the subset of the movie detail payload used by previews.
type MovieDetails struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Overview     string `json:"overview"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`

	Runtime     int     `json:"runtime"`
	Status      string  `json:"status"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Genres      []Genre `json:"genres"`
}

// Movie fetches details for a movie.
func (c *Client) Movie(id int64) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Item fetches the detail payload for a known TMDB id and condenses it into
// the common Item shape used by pickers and history.
func (c *Client) Item(kind media.Kind, id int64) (*media.Item, error) {
	if kind == media.TV {
		details, err := c.TV(id)
		if err != nil {
			return nil, err
		}
		return &media.Item{
			ID:           details.ID,
			Kind:         media.TV,
			Title:        details.Name,
			Overview:     details.Overview,
			PosterPath:   details.PosterPath,
			BackdropPath: details.BackdropPath,
			VoteAverage:  details.VoteAverage,
			ReleaseYear:  yearOf(details.FirstAirDate),
		}, nil
	}

	details, err := c.Movie(id)
	if err != nil {
		return nil, err
	}
	return &media.Item{
		ID:           details.ID,
		Kind:         media.Movie,
		Title:        details.Title,
		Overview:     details.Overview,
		PosterPath:   details.PosterPath,
		BackdropPath: details.BackdropPath,
		VoteAverage:  details.VoteAverage,
		ReleaseYear:  yearOf(details.ReleaseDate),
	}, nil
}

// ExternalIDs resolves the IMDb identifier for a movie or TV show.
// Torrent-based providers key their catalogues by IMDb id, not TMDB id.
func (c *Client) ExternalIDs(kind media.Kind, id int64) (imdbID string, err error) {
	var payload struct {
		IMDBID string `json:"imdb_id"`
	}

	path := fmt.Sprintf("/%s/%d/external_ids", kind, id)
	if err := c.get(path, url.Values{}, &payload); err != nil {
		return "", err
	}
	if payload.IMDBID == "" {
		return "", fmt.Errorf("tmdb: no IMDb id known for %s/%d", kind, id)
	}
	return payload.IMDBID, nil
}
