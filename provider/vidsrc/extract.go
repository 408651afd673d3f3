package vidsrc

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cinecli/cinecli/media"
	"github.com/samber/lo"
)

var (
	hashAttrRe   = regexp.MustCompile(`data-(?:hash|id)\s*=\s*["']([A-Za-z0-9+/=_-]{8,})["']`)
	rcpSrcRe     = regexp.MustCompile(`(?:https?:)?//([A-Za-z0-9.-]+)/rcp/`)
	frameSrcRe   = regexp.MustCompile(`(?:src|file)\s*[:=]\s*["']((?:https?:)?//[^"']+|/[^"']+)["']`)
	m3u8Re       = regexp.MustCompile(`https?://[^\s"'\\]+?\.m3u8[^\s"'\\]*`)
	mp4Re        = regexp.MustCompile(`https?://[^\s"'\\]+?\.mp4[^\s"'\\]*`)
	escapedSlash = strings.NewReplacer(`\/`, `/`, `\u002F`, `/`, `\u002f`, `/`)
)

// extractHashes pulls server hashes from an embed page. The player markup
// lists mirrors as elements carrying data-hash attributes.
func extractHashes(html string) []string {
	var hashes []string

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("[data-hash]").Each(func(_ int, s *goquery.Selection) {
			if h, ok := s.Attr("data-hash"); ok && h != "" {
				hashes = append(hashes, h)
			}
		})
	}

	for _, m := range hashAttrRe.FindAllStringSubmatch(html, -1) {
		hashes = append(hashes, m[1])
	}

	return lo.Uniq(hashes)
}

// rcpHosts finds the hosts serving /rcp/ frames. cloudnestra.com is the usual
// backend and stays as a fallback when the page reveals nothing.
func rcpHosts(html, embedHost string) []string {
	var hosts []string
	for _, m := range rcpSrcRe.FindAllStringSubmatch(html, -1) {
		hosts = append(hosts, m[1])
	}

	if embedHost != "" {
		hosts = append(hosts, embedHost)
	}
	hosts = append(hosts, "cloudnestra.com")

	return lo.Uniq(hosts)
}

// childCandidates lists iframe targets and script-assigned frame sources
// worth following from a page.
func childCandidates(html string) []string {
	unescaped := escapedSlash.Replace(html)

	var refs []string
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(unescaped)); err == nil {
		doc.Find("iframe").Each(func(_ int, s *goquery.Selection) {
			if src, ok := s.Attr("src"); ok && src != "" {
				refs = append(refs, src)
			}
		})
	}

	for _, m := range frameSrcRe.FindAllStringSubmatch(unescaped, -1) {
		refs = append(refs, m[1])
	}

	return lo.Uniq(lo.Filter(refs, func(ref string, _ int) bool {
		return !isStreamURL(ref) && ref != "about:blank"
	}))
}

func isStreamURL(s string) bool {
	return strings.Contains(s, ".m3u8") || strings.Contains(s, ".mp4")
}

type foundStream struct {
	url  string
	kind media.StreamKind
}

// extractStreamURLs scrapes playable URLs from a page, m3u8 before mp4.
func extractStreamURLs(html string) []foundStream {
	unescaped := escapedSlash.Replace(html)

	var found []foundStream
	for _, u := range lo.Uniq(m3u8Re.FindAllString(unescaped, -1)) {
		found = append(found, foundStream{url: u, kind: media.StreamHLS})
	}
	for _, u := range lo.Uniq(mp4Re.FindAllString(unescaped, -1)) {
		found = append(found, foundStream{url: u, kind: media.StreamMP4})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].kind == media.StreamHLS && found[j].kind != media.StreamHLS
	})
	return found
}
