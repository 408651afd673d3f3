// Package torbox resolves debrid-backed direct streams through the TorBox Stremio endpoint.
package torbox

import (
	"fmt"
	"net/http"

	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/network"
	"github.com/cinecli/cinecli/provider"
	"github.com/cinecli/cinecli/provider/addon"
	"github.com/spf13/viper"
)

const (
	Name = "torbox"

	baseURL = "https://stremio.torbox.app"
	host    = "torbox.app"

	// Torrentio can resolve through a TorBox account as well; this variant is
	// exposed as its own action entry.
	TorrentioName    = "torrentio+torbox"
	torrentioBaseURL = "https://torrentio.strem.fun"
	torrentioHost    = "torrentio.strem.fun"
)

// Client resolves direct URLs from TorBox's own Stremio endpoint.
type Client struct {
	httpc *http.Client
	base  string
}

// New returns a TorBox client backed by the shared HTTP client.
func New() *Client {
	return &Client{httpc: network.Client, base: baseURL}
}

// NewWithBase overrides the endpoint base, used by tests.
func NewWithBase(base string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = network.Client
	}
	return &Client{httpc: httpc, base: base}
}

func (c *Client) Name() string { return Name }

// Resolve fetches direct streams keyed by the configured TorBox API key.
func (c *Client) Resolve(req provider.Request) ([]*media.Stream, error) {
	apiKey := viper.GetString(key.TorboxAPIKey)
	if apiKey == "" {
		return nil, &provider.Error{Provider: Name, Err: fmt.Errorf("no TorBox API key configured")}
	}

	base := fmt.Sprintf("%s/%s", c.base, apiKey)
	return addon.Fetch(Name, base, req, c.httpc, host)
}

// Torrentio resolves through Torrentio's TorBox-integrated catalogue, which
// returns direct URLs instead of magnets.
type Torrentio struct {
	httpc *http.Client
	base  string
}

// NewTorrentio returns the combined Torrentio+TorBox resolver.
func NewTorrentio() *Torrentio {
	return &Torrentio{httpc: network.Client, base: torrentioBaseURL}
}

// NewTorrentioWithBase overrides the endpoint base, used by tests.
func NewTorrentioWithBase(base string, httpc *http.Client) *Torrentio {
	if httpc == nil {
		httpc = network.Client
	}
	return &Torrentio{httpc: httpc, base: base}
}

func (t *Torrentio) Name() string { return TorrentioName }

func (t *Torrentio) Resolve(req provider.Request) ([]*media.Stream, error) {
	apiKey := viper.GetString(key.TorboxAPIKey)
	if apiKey == "" {
		return nil, &provider.Error{Provider: TorrentioName, Err: fmt.Errorf("no TorBox API key configured")}
	}

	base := fmt.Sprintf("%s/torbox=%s", t.base, apiKey)
	return addon.Fetch(TorrentioName, base, req, t.httpc, torrentioHost)
}
