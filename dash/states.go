package dash

import (
	"fmt"
	"strings"

	"github.com/cinecli/cinecli/history"
	"github.com/cinecli/cinecli/icon"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/query"
	"github.com/cinecli/cinecli/style"
	"github.com/cinecli/cinecli/tmdb"
	"github.com/cinecli/cinecli/ui"
	"github.com/cinecli/cinecli/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

type state int

const (
	sectionSelectState state = iota + 1
	searchInputState
	searchRunState
	popularMoviesState
	popularTVState
	historySelectState
	itemSelectState
	seasonSelectState
	episodeSelectState
	actionSelectState
	streamSelectState
	quitState
)

func title(s string) {
	fmt.Println(style.Title(s))
}

func fail(s string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), s)
}

func progress(s string) (erase func()) {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), s))
}

type section struct {
	Name  string `json:"name"`
	State state  `json:"state"`
}

func (d *dash) handleSectionSelectState() error {
	sections := []section{
		{Name: fmt.Sprintf("%s Search", icon.Get(icon.Question)), State: searchInputState},
		{Name: fmt.Sprintf("%s Popular Movies", icon.Get(icon.Movie)), State: popularMoviesState},
		{Name: fmt.Sprintf("%s Popular TV", icon.Get(icon.TV)), State: popularTVState},
		{Name: fmt.Sprintf("%s History", icon.Get(icon.History)), State: historySelectState},
	}

	picked, ok, err := ui.Select("Section:", sections, func(s section) string { return s.Name })
	if err != nil {
		return err
	}
	if !ok {
		d.newState(quitState)
		return nil
	}

	d.newState(picked.State)
	return nil
}

func (d *dash) handleSearchInputState() error {
	suggestion := query.Suggest(d.query).OrElse("")

	input, err := ui.Input("Search movies & tv:", suggestion)
	if err != nil {
		return err
	}
	if input == "" {
		d.previousState()
		return nil
	}

	d.query = input
	d.newState(searchRunState)
	return nil
}

func (d *dash) handleSearchRunState() error {
	erase := progress("Searching..")
	items, err := d.cachedOrSearch(d.query)
	erase()
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fail("No results found")
		d.setState(searchInputState)
		return nil
	}

	_ = query.Remember(d.query, 1)
	d.newState(itemSelectState)
	return nil
}

func (d *dash) cachedOrSearch(q string) ([]*media.Item, error) {
	cacheKey := "search:" + strings.ToLower(q)
	if items, ok := d.cachedItems[cacheKey]; ok {
		d.cachedItems["current"] = items
		return items, nil
	}

	items, err := d.client.SearchMulti(q)
	if err != nil {
		return nil, err
	}

	limit := viper.GetInt(key.SearchLimit)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	d.cachedItems[cacheKey] = items
	d.cachedItems["current"] = items
	return items, nil
}

func (d *dash) handlePopularState(kind media.Kind) error {
	erase := progress("Fetching popular titles..")
	var (
		items []*media.Item
		err   error
	)
	if kind == media.Movie {
		items, err = d.client.PopularMovies(1)
	} else {
		items, err = d.client.PopularTV(1)
	}
	erase()
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fail("Nothing popular right now")
		d.previousState()
		return nil
	}

	d.cachedItems["current"] = items
	d.newState(itemSelectState)
	return nil
}

func (d *dash) handleItemSelectState() error {
	items := d.cachedItems["current"]

	picked, ok, err := ui.SelectPreview("Title:", items, func(i *media.Item) string { return i.String() }, true)
	if err != nil {
		return err
	}
	if !ok {
		d.previousState()
		return nil
	}

	d.item = picked
	d.season = 0
	d.episode = nil

	if picked.Kind == media.TV {
		d.newState(seasonSelectState)
	} else {
		d.rememberSelection()
		d.newState(actionSelectState)
	}
	return nil
}

func (d *dash) handleSeasonSelectState() error {
	erase := progress("Fetching seasons..")
	details, err := d.client.TV(d.item.ID)
	erase()
	if err != nil {
		return err
	}

	d.seasons = details.BrowsableSeasons()
	if len(d.seasons) == 0 {
		fail("No seasons listed")
		d.previousState()
		return nil
	}

	picked, ok, err := ui.Select("Season:", d.seasons, func(s tmdb.Season) string {
		return fmt.Sprintf("Season %d %s", s.SeasonNumber, style.Faint(util.Quantify(s.EpisodeCount, "episode", "episodes")))
	})
	if err != nil {
		return err
	}
	if !ok {
		d.previousState()
		return nil
	}

	d.season = picked.SeasonNumber
	d.newState(episodeSelectState)
	return nil
}

func (d *dash) handleEpisodeSelectState() error {
	erase := progress("Fetching episodes..")
	details, err := d.client.TVSeason(d.item.ID, d.season)
	erase()
	if err != nil {
		return err
	}

	if len(details.Episodes) == 0 {
		fail("No episodes listed")
		d.previousState()
		return nil
	}

	rows := lo.Map(details.Episodes, func(e tmdb.SeasonEpisode, _ int) episodeRow {
		return episodeRow{
			Episode: media.Episode{
				Season:   d.season,
				Episode:  e.EpisodeNumber,
				Name:     e.Name,
				AirDate:  e.AirDate,
				Overview: e.Overview,
			},
			ID:         d.item.ID,
			MediaType:  d.item.Kind,
			Title:      d.item.Title,
			PosterPath: d.item.PosterPath,
		}
	})

	picked, ok, err := ui.SelectPreview("Episode:", rows, func(r episodeRow) string { return r.Episode.String() }, true)
	if err != nil {
		return err
	}
	if !ok {
		d.previousState()
		return nil
	}

	episode := picked.Episode
	d.episode = &episode
	d.rememberSelection()
	d.newState(actionSelectState)
	return nil
}

// episodeRow couples an episode with its show so the preview pane can render
// episode details from the hidden payload column.
type episodeRow struct {
	media.Episode
	ID         int64      `json:"id"`
	MediaType  media.Kind `json:"media_type"`
	Title      string     `json:"title"`
	PosterPath string     `json:"poster_path"`
}

func (d *dash) handleHistorySelectState() error {
	summaries, err := history.Summarize(viper.GetInt(key.HistoryLimit))
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fail("History is empty")
		d.setState(sectionSelectState)
		return nil
	}

	picked, ok, err := ui.Select("History:", summaries, func(s history.Summary) string {
		label := s.Title
		if s.Episode != nil {
			label += fmt.Sprintf(" S%02dE%02d", s.Episode.Season, s.Episode.Episode)
		}
		if s.LastMethod != "" {
			label += " " + style.Faint("("+s.LastMethod+")")
		}
		return fmt.Sprintf("%s %s", icon.Get(icon.History), label)
	})
	if err != nil {
		return err
	}
	if !ok {
		d.previousState()
		return nil
	}

	d.item = picked.Item()
	d.season = 0
	d.episode = nil
	if picked.Episode != nil {
		d.season = picked.Episode.Season
		d.episode = &media.Episode{
			Season:  picked.Episode.Season,
			Episode: picked.Episode.Episode,
			Name:    picked.Episode.Name,
		}
	}

	d.newState(actionSelectState)
	return nil
}

func (d *dash) handleActionSelectState() error {
	actions := availableActions()

	picked, ok, err := ui.Select("Action:", actions, func(a action) string { return a.String() })
	if err != nil {
		return err
	}
	if !ok {
		d.previousState()
		return nil
	}

	if picked == actionOpenTMDB {
		if err := openTMDB(d.item); err != nil {
			fail(err.Error())
		}
		return nil
	}

	d.action = picked

	erase := progress("Resolving streams..")
	streams, err := d.resolveStreams()
	erase()
	if err != nil {
		fail(err.Error())
		return nil
	}
	if len(streams) == 0 {
		fail("No streams found")
		return nil
	}

	d.streams = streams
	d.newState(streamSelectState)
	return nil
}

func (d *dash) handleStreamSelectState() error {
	picked, ok, err := ui.Select("Stream:", d.streams, func(s *media.Stream) string { return s.Display() })
	if err != nil {
		return err
	}
	if !ok {
		d.previousState()
		return nil
	}

	if err := d.dispatchStream(picked); err != nil {
		fail(err.Error())
		return nil
	}

	d.setState(actionSelectState)
	return nil
}
