// Package addon implements a generic client for Stremio-addon stream endpoints
// serving direct URLs (TorBox, Streamthru, Comet and compatible services).
package addon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/network"
	"github.com/cinecli/cinecli/provider"
)

// Client resolves streams from a user-configured addon manifest URL.
type Client struct {
	name     string
	manifest string
	httpc    *http.Client
}

// New builds an addon client from its display name and manifest URL
// (".../manifest.json" or the already-stripped base).
func New(name, manifestURL string) *Client {
	return &Client{name: name, manifest: manifestURL, httpc: network.Client}
}

// NewWithClient overrides the HTTP client, used by tests.
func NewWithClient(name, manifestURL string, httpc *http.Client) *Client {
	c := New(name, manifestURL)
	if httpc != nil {
		c.httpc = httpc
	}
	return c
}

func (c *Client) Name() string { return c.name }

func (c *Client) Resolve(req provider.Request) ([]*media.Stream, error) {
	return Fetch(c.name, ManifestParent(c.manifest), req, c.httpc)
}

// ManifestParent strips a trailing /manifest.json so stream paths can be appended.
func ManifestParent(manifestURL string) string {
	base := strings.TrimSuffix(manifestURL, "/manifest.json")
	return strings.TrimRight(base, "/")
}

// stream mirrors one entry of a Stremio addon streams payload.
type stream struct {
	Name          string         `json:"name"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	URL           string         `json:"url"`
	File          string         `json:"file"`
	Src           string         `json:"src"`
	Size          any            `json:"size"`
	BehaviorHints map[string]any `json:"behaviorHints"`
}

// target returns the first usable URL field of the entry.
func (s *stream) target() string {
	for _, u := range []string{s.URL, s.File, s.Src} {
		if u != "" {
			return u
		}
	}
	return ""
}

// sizeBytes normalizes the loosely-typed size fields addons emit, either a
// top-level size or a videoSize behavior hint.
func (s *stream) sizeBytes() int64 {
	size := s.Size
	if size == nil {
		size = s.BehaviorHints["videoSize"]
	}
	switch v := size.(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// filename extracts a display filename from behavior hints or a "filename:" line
// inside the description, the two places addons put it.
func (s *stream) filename() string {
	if fn, ok := s.BehaviorHints["filename"].(string); ok && fn != "" {
		return fn
	}

	lower := strings.ToLower(s.Description)
	idx := strings.Index(lower, "filename:")
	if idx < 0 {
		return ""
	}

	chunk := s.Description[idx+len("filename:"):]
	for _, sep := range []string{"\n", `\n`} {
		if cut := strings.Index(chunk, sep); cut >= 0 {
			chunk = chunk[:cut]
		}
	}
	return strings.TrimSpace(chunk)
}

// Fetch issues the stream request against base and maps the payload to direct
// URL streams attributed to providerName. Proxy rewriting applies to the given
// host allowlist; with no hosts the configured template applies to any domain.
func Fetch(providerName, base string, req provider.Request, httpc *http.Client, proxyHosts ...string) ([]*media.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IMDBID == "" {
		return nil, &provider.Error{Provider: providerName, Err: fmt.Errorf("missing IMDb id")}
	}
	if httpc == nil {
		httpc = network.Client
	}

	endpoint := streamURL(base, req)
	if len(proxyHosts) > 0 {
		endpoint = network.WrapForHosts(endpoint, proxyHosts...)
	} else {
		endpoint = network.Wrap(endpoint)
	}

	request, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", constant.UserAgent)
	request.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := httpc.Do(request)
	if err != nil {
		return nil, &provider.Error{Provider: providerName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.Error{Provider: providerName, Status: resp.StatusCode}
	}

	var payload struct {
		Streams []stream `json:"streams"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &provider.Error{Provider: providerName, Err: fmt.Errorf("decode response: %w", err)}
	}

	var streams []*media.Stream
	for _, s := range payload.Streams {
		target := s.target()
		if target == "" {
			continue
		}

		name := s.filename()
		if name == "" {
			name = s.Name
		}

		streams = append(streams, &media.Stream{
			URL:       target,
			Provider:  providerName,
			Kind:      media.StreamHTTP,
			Name:      name,
			Title:     s.Title,
			FileIndex: -1,
			SizeBytes: s.sizeBytes(),
		})
	}
	if len(streams) == 0 {
		return nil, provider.ErrNotFound
	}
	return streams, nil
}

func streamURL(base string, req provider.Request) string {
	if req.IsTV() {
		return fmt.Sprintf("%s/stream/series/%s:%d:%d.json", base, req.IMDBID, req.Season, req.Episode)
	}
	return fmt.Sprintf("%s/stream/movie/%s.json", base, req.IMDBID)
}
