package dash

import (
	"fmt"

	"github.com/cinecli/cinecli/dispatch"
	"github.com/cinecli/cinecli/history"
	"github.com/cinecli/cinecli/icon"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/open"
	"github.com/cinecli/cinecli/provider"
	"github.com/cinecli/cinecli/provider/addon"
	"github.com/cinecli/cinecli/provider/torbox"
	"github.com/cinecli/cinecli/provider/torrentio"
	"github.com/cinecli/cinecli/provider/vidsrc"
)

type action int

const (
	actionPlayVidsrc action = iota + 1
	actionPlayTorrentio
	actionPlayTorbox
	actionPlayTorrentioTorbox
	actionPlayStreamthru
	actionPlayComet
	actionDownloadVidsrc
	actionDownloadTorrentio
	actionOpenTMDB
)

func (a action) String() string {
	switch a {
	case actionPlayVidsrc:
		return fmt.Sprintf("%s Play (VidSrc)", icon.Get(icon.Play))
	case actionPlayTorrentio:
		return fmt.Sprintf("%s Play (Torrentio)", icon.Get(icon.Magnet))
	case actionPlayTorbox:
		return fmt.Sprintf("%s Play (TorBox)", icon.Get(icon.Play))
	case actionPlayTorrentioTorbox:
		return fmt.Sprintf("%s Play (Torrentio via TorBox)", icon.Get(icon.Play))
	case actionPlayStreamthru:
		return fmt.Sprintf("%s Play (StreamThru)", icon.Get(icon.Play))
	case actionPlayComet:
		return fmt.Sprintf("%s Play (Comet)", icon.Get(icon.Play))
	case actionDownloadVidsrc:
		return fmt.Sprintf("%s Download (VidSrc)", icon.Get(icon.Download))
	case actionDownloadTorrentio:
		return fmt.Sprintf("%s Download (Torrentio)", icon.Get(icon.Download))
	case actionOpenTMDB:
		return fmt.Sprintf("%s Open on TMDB", icon.Get(icon.Question))
	default:
		return "unknown"
	}
}

// availableActions lists the menu entries, hiding
// resolvers whose credentials or manifests are not configured.
func availableActions() []action {
	actions := []action{actionPlayVidsrc, actionPlayTorrentio}

	if provider.TorboxConfigured() {
		actions = append(actions, actionPlayTorbox, actionPlayTorrentioTorbox)
	}

	manifests := provider.AddonManifests()
	if _, ok := manifests["streamthru"]; ok {
		actions = append(actions, actionPlayStreamthru)
	}
	if _, ok := manifests["comet"]; ok {
		actions = append(actions, actionPlayComet)
	}

	actions = append(actions, actionDownloadVidsrc, actionDownloadTorrentio, actionOpenTMDB)
	return actions
}

func (a action) resolver() (provider.Resolver, error) {
	manifests := provider.AddonManifests()

	switch a {
	case actionPlayVidsrc, actionDownloadVidsrc:
		return vidsrc.New(), nil
	case actionPlayTorrentio, actionDownloadTorrentio:
		return torrentio.New(), nil
	case actionPlayTorbox:
		return torbox.New(), nil
	case actionPlayTorrentioTorbox:
		return torbox.NewTorrentio(), nil
	case actionPlayStreamthru:
		if m, ok := manifests["streamthru"]; ok {
			return addon.New("streamthru", m), nil
		}
		return nil, fmt.Errorf("streamthru manifest is not configured")
	case actionPlayComet:
		if m, ok := manifests["comet"]; ok {
			return addon.New("comet", m), nil
		}
		return nil, fmt.Errorf("comet manifest is not configured")
	default:
		return nil, fmt.Errorf("action %d resolves nothing", a)
	}
}

func (a action) isDownload() bool {
	return a == actionDownloadVidsrc || a == actionDownloadTorrentio
}

// request builds the provider request for the current selection, resolving
// the IMDb id lazily since only torrent-backed providers need it.
func (d *dash) request(needsIMDB bool) (provider.Request, error) {
	req := provider.Request{
		Kind:   d.item.Kind,
		TMDBID: d.item.ID,
	}
	if d.episode != nil {
		req.Season = d.episode.Season
		req.Episode = d.episode.Episode
	}

	if needsIMDB {
		imdbID, err := d.client.ExternalIDs(d.item.Kind, d.item.ID)
		if err != nil {
			return req, err
		}
		req.IMDBID = imdbID
	}
	return req, nil
}

func (d *dash) resolveStreams() ([]*media.Stream, error) {
	resolver, err := d.action.resolver()
	if err != nil {
		return nil, err
	}

	needsIMDB := d.action != actionPlayVidsrc && d.action != actionDownloadVidsrc
	req, err := d.request(needsIMDB)
	if err != nil {
		return nil, err
	}

	return resolver.Resolve(req)
}

// rememberSelection records the picked title so the selection survives in
// history even when no stream ends up playing.
func (d *dash) rememberSelection() {
	if err := history.Append(history.NewEntry(history.ActionSelect, "", d.item, d.episode)); err != nil {
		log.Warnf("history: %s", err)
	}
}

// dispatchStream hands the stream to a player or downloader and records the
// outcome. History is written only after the spawn succeeded.
func (d *dash) dispatchStream(stream *media.Stream) error {
	if d.action.isDownload() {
		method, outDir, err := dispatch.Download(stream)
		if err != nil {
			return err
		}

		entry := history.NewEntry(history.ActionDownload, method, d.item, d.episode)
		entry.OutDir = outDir
		return history.Append(entry)
	}

	method, err := dispatch.Play(stream, d.streamTitle())
	if err != nil {
		return err
	}
	return history.Append(history.NewEntry(history.ActionPlay, method, d.item, d.episode))
}

func (d *dash) streamTitle() string {
	if d.episode != nil {
		return fmt.Sprintf("%s %s", d.item.Title, d.episode.String())
	}
	return d.item.Title
}

func openTMDB(item *media.Item) error {
	return open.Start(fmt.Sprintf("https://www.themoviedb.org/%s/%d", item.Kind, item.ID))
}
