package vidsrc

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/provider"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExtractHashes(t *testing.T) {
	Convey("Server hashes are collected from data-hash attributes", t, func() {
		html := `<div class="server" data-hash="aGFzaG9uZQ=="></div>
			<div class="server" data-hash="aGFzaHR3bw=="></div>
			<div class="server" data-hash="aGFzaG9uZQ=="></div>`

		hashes := extractHashes(html)
		So(hashes, ShouldResemble, []string{"aGFzaG9uZQ==", "aGFzaHR3bw=="})
	})
}

func TestRcpHosts(t *testing.T) {
	Convey("Hosts serving /rcp/ frames are discovered with fallbacks", t, func() {
		html := `<iframe src="//edgedeliverynetwork.com/rcp/abc"></iframe>`

		hosts := rcpHosts(html, "vidsrc.xyz")
		So(hosts, ShouldResemble, []string{"edgedeliverynetwork.com", "vidsrc.xyz", "cloudnestra.com"})
	})

	Convey("The embed host is tried before the cloudnestra fallback", t, func() {
		hosts := rcpHosts("", "vidsrc.xyz")
		So(hosts, ShouldResemble, []string{"vidsrc.xyz", "cloudnestra.com"})
	})
}

func TestChildCandidates(t *testing.T) {
	Convey("Iframe targets and script frame sources are followed", t, func() {
		html := `<iframe src="/prorcp/xyz"></iframe>
			<script>player.src = "https:\/\/frames.example\/sub\/1";</script>
			<iframe src="about:blank"></iframe>
			<script>file: "https://cdn.example/video.m3u8"</script>`

		refs := childCandidates(html)
		So(refs, ShouldContain, "/prorcp/xyz")
		So(refs, ShouldContain, "https://frames.example/sub/1")

		Convey("Stream URLs and blank frames are not crawl targets", func() {
			So(refs, ShouldNotContain, "about:blank")
			for _, ref := range refs {
				So(ref, ShouldNotContainSubstring, ".m3u8")
			}
		})
	})
}

func TestExtractStreamURLs(t *testing.T) {
	Convey("Playable URLs are harvested with m3u8 preferred over mp4", t, func() {
		html := `<script>
			var backup = "https:\/\/cdn.example\/direct.mp4?token=1";
			var main = {file: "https://cdn.example/master.m3u8"};
		</script>`

		found := extractStreamURLs(html)
		So(found, ShouldHaveLength, 2)
		So(found[0].url, ShouldEqual, "https://cdn.example/master.m3u8")
		So(found[0].kind, ShouldEqual, media.StreamHLS)
		So(found[1].url, ShouldEqual, "https://cdn.example/direct.mp4?token=1")
		So(found[1].kind, ShouldEqual, media.StreamMP4)
	})
}

func TestAbsoluteURL(t *testing.T) {
	Convey("Frame references resolve against the page host", t, func() {
		So(absoluteURL("vidsrc.xyz", "https://a.example/x"), ShouldEqual, "https://a.example/x")
		So(absoluteURL("vidsrc.xyz", "//a.example/x"), ShouldEqual, "https://a.example/x")
		So(absoluteURL("vidsrc.xyz", "/rcp/abc"), ShouldEqual, "https://vidsrc.xyz/rcp/abc")
	})
}

func TestResolve(t *testing.T) {
	Convey("Given an embed chain ending in an hls source", t, func() {
		var srv *httptest.Server
		srv = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasPrefix(r.URL.Path, "/embed/movie/"):
				fmt.Fprintf(w, `<iframe src="%s/prorcp/inner"></iframe>`, srv.URL)
			case r.URL.Path == "/prorcp/inner":
				fmt.Fprint(w, `<script>var player = {file: "https://cdn.example/master.m3u8"};</script>`)
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		host := strings.TrimPrefix(srv.URL, "https://")
		c := NewWithDomains([]string{host}, srv.Client())

		Convey("Resolve walks the frames and returns the source", func() {
			streams, err := c.Resolve(provider.Request{Kind: media.Movie, TMDBID: 27205})

			So(err, ShouldBeNil)
			So(streams, ShouldHaveLength, 1)
			So(streams[0].URL, ShouldEqual, "https://cdn.example/master.m3u8")
			So(streams[0].Kind, ShouldEqual, media.StreamHLS)
			So(streams[0].Provider, ShouldEqual, Name)
			So(streams[0].Referer, ShouldNotBeEmpty)
		})
	})

	Convey("A dead host yields ErrNotFound rather than an error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
		host := strings.TrimPrefix(srv.URL, "http://")
		srv.Close()

		c := NewWithDomains([]string{host}, &http.Client{})
		_, err := c.Resolve(provider.Request{Kind: media.Movie, TMDBID: 27205})
		So(err, ShouldEqual, provider.ErrNotFound)
	})
}
