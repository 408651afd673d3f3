// Package dash implements the interactive dashboard flow: browse or search,
// drill into seasons and episodes, resolve streams and hand them off.
package dash

import (
	"os"

	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/tmdb"
	"github.com/cinecli/cinecli/util"
)

// Section is the dashboard entry point chosen on the first screen.
type Section int

const (
	SectionMenu Section = iota
	SectionSearch
	SectionPopularMovies
	SectionPopularTV
	SectionHistory
)

type Options struct {
	Section Section
	Query   string
}

type dash struct {
	state         state
	statesHistory util.Stack[state]

	client *tmdb.Client

	query       string
	cachedItems map[string][]*media.Item

	item    *media.Item
	seasons []tmdb.Season
	season  int
	episode *media.Episode

	action  action
	streams []*media.Stream
}

func newDash(client *tmdb.Client) *dash {
	return &dash{
		client:      client,
		cachedItems: make(map[string][]*media.Item),
	}
}

func (d *dash) previousState() {
	if d.statesHistory.Len() == 0 {
		d.setState(quitState)
		return
	}
	d.setState(d.statesHistory.Pop())
}

func (d *dash) setState(s state) {
	d.state = s
}

func (d *dash) newState(s state) {
	if d.state == s {
		return
	}
	d.statesHistory.Push(d.state)
	d.setState(s)
}

// Run drives the dashboard loop until the user quits or a step fails.
func Run(options *Options) error {
	client, err := tmdb.New()
	if err != nil {
		return err
	}

	d := newDash(client)

	switch options.Section {
	case SectionSearch:
		d.state = searchInputState
		if options.Query != "" {
			d.query = options.Query
			d.state = searchRunState
		}
	case SectionPopularMovies:
		d.state = popularMoviesState
	case SectionPopularTV:
		d.state = popularTVState
	case SectionHistory:
		d.state = historySelectState
	default:
		d.state = sectionSelectState
	}

	for {
		if err := d.handleState(); err != nil {
			return err
		}
	}
}

func (d *dash) handleState() error {
	switch d.state {
	case sectionSelectState:
		return d.handleSectionSelectState()
	case searchInputState:
		return d.handleSearchInputState()
	case searchRunState:
		return d.handleSearchRunState()
	case popularMoviesState:
		return d.handlePopularState(media.Movie)
	case popularTVState:
		return d.handlePopularState(media.TV)
	case historySelectState:
		return d.handleHistorySelectState()
	case itemSelectState:
		return d.handleItemSelectState()
	case seasonSelectState:
		return d.handleSeasonSelectState()
	case episodeSelectState:
		return d.handleEpisodeSelectState()
	case actionSelectState:
		return d.handleActionSelectState()
	case streamSelectState:
		return d.handleStreamSelectState()
	case quitState:
		os.Exit(0)
	}

	return nil
}
