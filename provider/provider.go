// Package provider manages the stream resolution providers and their availability gating.
package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/spf13/viper"
)

// ErrNotFound indicates a provider answered successfully but had no streams for the request.
var ErrNotFound = errors.New("no streams found")

// Error wraps a provider failure with its origin and HTTP status context.
type Error struct {
	Provider string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Request identifies the media a resolver should produce streams for.
// IMDBID is only needed by torrent-backed providers; Season/Episode only for TV.
type Request struct {
	Kind    media.Kind
	TMDBID  int64
	IMDBID  string
	Season  int
	Episode int
}

// IsTV reports whether the request targets a TV episode.
func (r Request) IsTV() bool { return r.Kind == media.TV }

// Validate rejects structurally incomplete requests before any network call.
func (r Request) Validate() error {
	if r.Kind != media.Movie && r.Kind != media.TV {
		return fmt.Errorf("invalid media kind %q", r.Kind)
	}
	if r.IsTV() && (r.Season == 0 || r.Episode == 0) {
		return errors.New("season and episode are required for tv")
	}
	return nil
}

// Resolver is a stateless mapper from a request to a set of candidate streams.
type Resolver interface {
	// Name returns the provider identifier recorded on resolved streams and history entries.
	Name() string

	// Resolve produces the candidate streams for the request, preserving provider ordering.
	Resolve(req Request) ([]*media.Stream, error)
}

// TorboxConfigured reports whether a TorBox API key is present.
// TorBox menu entries and resolvers are hidden while it returns false.
func TorboxConfigured() bool {
	return strings.TrimSpace(viper.GetString(key.TorboxAPIKey)) != ""
}

// AddonManifests returns the configured Stremio addon manifest URLs, keyed by display name.
func AddonManifests() map[string]string {
	manifests := make(map[string]string)
	if u := strings.TrimSpace(viper.GetString(key.StreamthruManifest)); u != "" {
		manifests["streamthru"] = u
	}
	if u := strings.TrimSpace(viper.GetString(key.CometManifest)); u != "" {
		manifests["comet"] = u
	}
	return manifests
}
