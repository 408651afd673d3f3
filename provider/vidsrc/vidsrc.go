// Package vidsrc discovers direct stream URLs by crawling VidSrc embed pages.
//
// VidSrc serves player pages rather than an API: the embed HTML references
// server hashes and nested iframes which eventually lead to m3u8/mp4 sources.
// Resolution is a bounded breadth-first crawl over those frames, best-effort.
package vidsrc

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/network"
	"github.com/cinecli/cinecli/provider"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	Name = "vidsrc"

	// maxPages bounds the crawl; embed chains are short when they work at all.
	maxPages = 20
)

// domains lists the VidSrc hosts tried for embed pages, ordered by likelihood of being up.
var domains = []string{"vidsrc.xyz"}

// Client crawls VidSrc embed chains for playable sources.
type Client struct {
	httpc   *http.Client
	domains []string
}

// New returns a VidSrc client backed by the shared HTTP client.
// Embed hosts are slow to fail, so the configured timeout caps each page fetch.
func New() *Client {
	httpc := network.Client
	if secs := viper.GetInt(key.VidsrcTimeoutSeconds); secs > 0 {
		clone := *network.Client
		clone.Timeout = time.Duration(secs) * time.Second
		httpc = &clone
	}
	return &Client{httpc: httpc, domains: domains}
}

// NewWithDomains overrides the embed hosts, used by tests.
func NewWithDomains(hosts []string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = network.Client
	}
	return &Client{httpc: httpc, domains: hosts}
}

func (c *Client) Name() string { return Name }

// crawlTarget is one page in the BFS queue with the context needed for headers.
type crawlTarget struct {
	url        string
	referer    string
	serverHash string
	rcpHost    string
}

// Resolve crawls embed candidates until direct stream URLs surface.
// Best-effort: unreachable hosts and broken pages are skipped, not fatal.
func (c *Client) Resolve(req provider.Request) ([]*media.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	maxHosts := viper.GetInt(key.VidsrcMaxHosts)
	if maxHosts <= 0 {
		maxHosts = 3
	}

	var streams []*media.Stream
	tried := 0

	for _, embedURL := range c.embedCandidates(req) {
		if tried >= maxHosts {
			break
		}
		tried++

		embedHTML, err := c.fetch(embedURL, nil)
		if err != nil {
			log.Debugf("vidsrc: embed %s: %v", embedURL, err)
			continue
		}

		streams = c.crawl(embedURL, embedHTML)
		if len(streams) > 0 {
			break
		}
	}

	if len(streams) == 0 {
		return nil, provider.ErrNotFound
	}
	return streams, nil
}

// embedCandidates builds the ordered, de-duplicated set of embed URL variants for the request.
func (c *Client) embedCandidates(req provider.Request) []string {
	var urls []string
	id := req.TMDBID

	for _, domain := range c.domains {
		base := "https://" + domain
		if !req.IsTV() {
			urls = append(urls,
				fmt.Sprintf("%s/embed/movie/%d", base, id),
				fmt.Sprintf("%s/embed/movie?tmdb=%d", base, id),
				fmt.Sprintf("%s/embed/?tmdb=%d", base, id),
			)
			continue
		}

		urls = append(urls,
			fmt.Sprintf("%s/embed/tv/%d/%d-%d", base, id, req.Season, req.Episode),
			fmt.Sprintf("%s/embed/tv?tmdb=%d&season=%d&episode=%d", base, id, req.Season, req.Episode),
			fmt.Sprintf("%s/embed/tv?tmdb=%d&s=%d&e=%d", base, id, req.Season, req.Episode),
		)
	}

	return lo.Uniq(urls)
}

// crawl walks the frame graph below an embed page until stream URLs are found.
func (c *Client) crawl(embedURL, embedHTML string) []*media.Stream {
	embedHost := hostOf(embedURL)

	var queue []crawlTarget
	for _, hash := range extractHashes(embedHTML) {
		for _, rcpHost := range rcpHosts(embedHTML, embedHost) {
			queue = append(queue, crawlTarget{
				url:        fmt.Sprintf("https://%s/rcp/%s", rcpHost, hash),
				referer:    embedURL,
				serverHash: hash,
				rcpHost:    rcpHost,
			})
		}
	}
	for _, child := range childCandidates(embedHTML) {
		queue = append(queue, crawlTarget{url: absoluteURL(embedHost, child), referer: embedURL})
	}

	visited := make(map[string]struct{})
	pages := 0

	for len(queue) > 0 && pages < maxPages {
		target := queue[0]
		queue = queue[1:]

		if _, seen := visited[target.url]; seen {
			continue
		}
		visited[target.url] = struct{}{}

		headers := map[string]string{}
		if target.referer != "" {
			headers["Referer"] = target.referer
		}
		if origin := originHost(target); origin != "" {
			headers["Origin"] = "https://" + origin
		}

		html, err := c.fetch(target.url, headers)
		if err != nil {
			log.Debugf("vidsrc: crawl %s: %v", target.url, err)
			continue
		}
		pages++

		if found := harvestStreams(html, target.url); len(found) > 0 {
			return found
		}

		baseHost := hostOf(target.url)
		for _, child := range childCandidates(html) {
			queue = append(queue, crawlTarget{
				url:        absoluteURL(baseHost, child),
				referer:    target.url,
				serverHash: target.serverHash,
				rcpHost:    target.rcpHost,
			})
		}
	}

	return nil
}

// originHost picks the Origin header host: rcp host, then referer host, then the page's own.
func originHost(t crawlTarget) string {
	if t.rcpHost != "" {
		return t.rcpHost
	}
	if t.referer != "" {
		return hostOf(t.referer)
	}
	return hostOf(t.url)
}

// harvestStreams converts raw stream URLs found in a page into attributed streams.
func harvestStreams(html, pageURL string) []*media.Stream {
	var streams []*media.Stream
	for _, found := range extractStreamURLs(html) {
		streams = append(streams, &media.Stream{
			URL:       found.url,
			Provider:  Name,
			Kind:      found.kind,
			Referer:   pageURL,
			FileIndex: -1,
		})
	}
	return streams
}

// fetch GETs a page with browser-like headers, rewriting VidSrc hosts through the proxy template.
func (c *Client) fetch(rawURL string, headers map[string]string) (string, error) {
	request, err := http.NewRequest(http.MethodGet, network.WrapForHosts(rawURL, c.domains...), nil)
	if err != nil {
		return "", err
	}

	request.Header.Set("User-Agent", constant.UserAgent)
	request.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	request.Header.Set("Cache-Control", "no-cache")
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(request)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty body")
	}
	return string(body), nil
}

func hostOf(rawURL string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	host, _, _ := strings.Cut(s, "/")
	return host
}

// absoluteURL resolves frame references that may be scheme-relative or path-relative.
func absoluteURL(baseHost, ref string) string {
	switch {
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	case strings.HasPrefix(ref, "/"):
		return "https://" + baseHost + ref
	default:
		return "https://" + baseHost + "/" + ref
	}
}
