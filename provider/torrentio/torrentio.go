// Package torrentio resolves magnet-backed streams from the Torrentio Stremio addon.
package torrentio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/network"
	"github.com/cinecli/cinecli/provider"
)

const (
	Name = "torrentio"

	baseURL = "https://torrentio.strem.fun"
	host    = "torrentio.strem.fun"
)

// Client maps resolution requests onto the Torrentio streams endpoint.
type Client struct {
	httpc *http.Client
	base  string
}

// New returns a Torrentio client backed by the shared HTTP client.
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

// stream mirrors a single entry of the Torrentio streams payload.
type stream struct {
	Name          string         `json:"name"`
	Title         string         `json:"title"`
	InfoHash      string         `json:"infoHash"`
	FileIdx       *int           `json:"fileIdx"`
	BehaviorHints map[string]any `json:"behaviorHints"`
	Sources       []string       `json:"sources"`
}

// Resolve fetches the stream catalogue for the request and maps each entry to a magnet stream.
// On 403 it retries once with an alternate User-Agent; otherwise a single attempt.
func (c *Client) Resolve(req provider.Request) ([]*media.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IMDBID == "" {
		return nil, &provider.Error{Provider: Name, Err: fmt.Errorf("missing IMDb id")}
	}

	endpoint := streamURL(c.base, req)

	resp, err := c.getJSON(endpoint, constant.UserAgent)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		log.Warnf("torrentio: 403 with default UA, retrying with alternate")
		if resp, err = c.getJSON(endpoint, constant.UserAgentAlt); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.Error{Provider: Name, Status: resp.StatusCode}
	}

	var payload struct {
		Streams []stream `json:"streams"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &provider.Error{Provider: Name, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(payload.Streams) == 0 {
		return nil, provider.ErrNotFound
	}

	streams := make([]*media.Stream, 0, len(payload.Streams))
	for _, s := range payload.Streams {
		fileIdx := -1
		if s.FileIdx != nil {
			fileIdx = *s.FileIdx
		}

		name := s.Name
		if filename, ok := s.BehaviorHints["filename"].(string); ok && name == "" {
			name = filename
		}

		streams = append(streams, &media.Stream{
			URL:       BuildMagnet(s.InfoHash, displayName(s), s.Sources),
			Provider:  Name,
			Kind:      media.StreamMagnet,
			Name:      name,
			Title:     s.Title,
			FileIndex: fileIdx,
		})
	}
	return streams, nil
}

func (c *Client) getJSON(endpoint, userAgent string) (*http.Response, error) {
	request, err := http.NewRequest(http.MethodGet, network.WrapForHosts(endpoint, host), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", userAgent)
	request.Header.Set("Accept", "application/json, text/plain, */*")
	request.Header.Set("Referer", baseURL+"/")
	request.Header.Set("Origin", baseURL)

	resp, err := c.httpc.Do(request)
	if err != nil {
		return nil, &provider.Error{Provider: Name, Err: err}
	}
	return resp, nil
}

func streamURL(base string, req provider.Request) string {
	if req.IsTV() {
		return fmt.Sprintf("%s/stream/series/%s:%d:%d.json", base, req.IMDBID, req.Season, req.Episode)
	}
	return fmt.Sprintf("%s/stream/movie/%s.json", base, req.IMDBID)
}

func displayName(s stream) string {
	if filename, ok := s.BehaviorHints["filename"].(string); ok && filename != "" {
		return filename
	}
	return s.Title
}

// BuildMagnet constructs a magnet URI from an info hash, an optional display
// name and Torrentio "tracker:" source entries.
func BuildMagnet(infoHash, displayName string, sources []string) string {
	var b strings.Builder
	b.WriteString("magnet:?xt=urn:btih:")
	b.WriteString(infoHash)

	if displayName != "" {
		b.WriteString("&dn=")
		b.WriteString(url.QueryEscape(displayName))
	}

	for _, src := range sources {
		tracker, ok := strings.CutPrefix(src, "tracker:")
		if !ok {
			continue
		}
		b.WriteString("&tr=")
		b.WriteString(url.QueryEscape(tracker))
	}
	return b.String()
}
