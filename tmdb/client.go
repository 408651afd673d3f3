// Package tmdb implements a thin client for The Movie Database REST API.
//
// Every method is a stateless request/response mapping: a single attempt, no
// retries, errors surfaced with endpoint and HTTP status context. Result
// ordering always follows the provider's response ordering.
package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/network"
	"github.com/spf13/viper"
)

const baseURL = "https://api.themoviedb.org/3"

// ErrNoAPIKey is returned before any network call when no TMDB key is configured.
var ErrNoAPIKey = errors.New("no TMDB API key configured, run \"cinecli setup\" first")

// Client issues authenticated requests against the TMDB v3 API.
type Client struct {
	apiKey   string
	language string
	httpc    *http.Client
}

// New builds a client from the global configuration.
// Fails fast with ErrNoAPIKey so callers never reach the network without credentials.
func New() (*Client, error) {
	apiKey := strings.TrimSpace(viper.GetString(key.TMDBAPIKey))
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	return &Client{
		apiKey:   apiKey,
		language: viper.GetString(key.TMDBLanguage),
		httpc:    network.Client,
	}, nil
}

// NewWithKey builds a client with an explicit key and HTTP client, used by setup validation and tests.
func NewWithKey(apiKey string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = network.Client
	}
	return &Client{apiKey: apiKey, language: "en-US", httpc: httpc}
}

// get issues a single GET against path with the api_key and language query params attached.
func (c *Client) get(path string, params url.Values, v any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" && !params.Has("language") {
		params.Set("language", c.language)
	}

	endpoint := baseURL + path + "?" + params.Encode()

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: %s: unexpected status %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("tmdb: %s: decode response: %w", path, err)
	}
	return nil
}

// searchResult mirrors the subset of TMDB list payload fields the application consumes.
type searchResult struct {
	ID            int64   `json:"id"`
	MediaType     string  `json:"media_type"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
}

func (r *searchResult) toItem(kind media.Kind) *media.Item {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	if title == "" {
		title = r.OriginalTitle
	}
	if title == "" {
		title = r.OriginalName
	}
	if title == "" {
		title = "Unknown"
	}

	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}

	return &media.Item{
		ID:           r.ID,
		Kind:         kind,
		Title:        title,
		Overview:     r.Overview,
		PosterPath:   r.PosterPath,
		BackdropPath: r.BackdropPath,
		VoteAverage:  r.VoteAverage,
		ReleaseYear:  yearOf(date),
	}
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// SearchMulti queries movies and TV shows in a single request.
// Non movie/tv results (people, collections) are filtered out; ordering is preserved.
func (c *Client) SearchMulti(query string) ([]*media.Item, error) {
	var payload struct {
		Results []searchResult `json:"results"`
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if err := c.get("/search/multi", params, &payload); err != nil {
		return nil, err
	}

	var items []*media.Item
	for i := range payload.Results {
		r := &payload.Results[i]
		kind, err := media.ParseKind(r.MediaType)
		if err != nil {
			continue
		}
		items = append(items, r.toItem(kind))
	}

	log.Debugf("tmdb: search %q returned %d items", query, len(items))
	return items, nil
}

// PopularMovies returns the given page of TMDB's popular movie listing.
func (c *Client) PopularMovies(page int) ([]*media.Item, error) {
	return c.popular("/movie/popular", media.Movie, page)
}

// PopularTV returns the given page of TMDB's popular TV listing.
func (c *Client) PopularTV(page int) ([]*media.Item, error) {
	return c.popular("/tv/popular", media.TV, page)
}

func (c *Client) popular(path string, kind media.Kind, page int) ([]*media.Item, error) {
	var payload struct {
		Results []searchResult `json:"results"`
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if err := c.get(path, params, &payload); err != nil {
		return nil, err
	}

	items := make([]*media.Item, 0, len(payload.Results))
	for i := range payload.Results {
		items = append(items, payload.Results[i].toItem(kind))
	}
	return items, nil
}
