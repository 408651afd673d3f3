package torrentio

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/provider"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.NetworkProxy, "")
}

func TestResolveMovie(t *testing.T) {
	Convey("Given a torrentio movie response", t, func(cc C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cc.So(r.URL.Path, ShouldEqual, "/stream/movie/tt1375666.json")
			fmt.Fprint(w, `{"streams":[
				{"name":"Torrentio\n4k","title":"Inception.2010.2160p\n👤 120 💾 18.2 GB","infoHash":"abcdef0123456789abcdef0123456789abcdef01","fileIdx":1,"behaviorHints":{"filename":"Inception.2010.2160p.mkv"},"sources":["tracker:udp://tracker.example:1337","dht:abcdef"]},
				{"name":"Torrentio\n1080p","title":"Inception.2010.1080p","infoHash":"1111111111111111111111111111111111111111"}
			]}`)
		}))
		defer srv.Close()

		c := NewWithBase(srv.URL, srv.Client())
		streams, err := c.Resolve(provider.Request{Kind: media.Movie, TMDBID: 27205, IMDBID: "tt1375666"})

		Convey("Each torrent becomes a magnet stream", func() {
			So(err, ShouldBeNil)
			So(streams, ShouldHaveLength, 2)

			first := streams[0]
			So(first.Provider, ShouldEqual, Name)
			So(first.Kind, ShouldEqual, media.StreamMagnet)
			So(first.URL, ShouldStartWith, "magnet:?xt=urn:btih:abcdef0123456789abcdef0123456789abcdef01")
			So(first.URL, ShouldContainSubstring, "tr=udp")
			So(first.URL, ShouldContainSubstring, "dn=Inception.2010.2160p.mkv")
			So(first.FileIndex, ShouldEqual, 1)

			Convey("Missing hints leave the title and no file index", func() {
				second := streams[1]
				So(second.Title, ShouldEqual, "Inception.2010.1080p")
				So(second.FileIndex, ShouldEqual, -1)
			})
		})
	})
}

func TestResolveSeries(t *testing.T) {
	Convey("Series requests address season and episode in the path", t, func() {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, `{"streams":[{"title":"BB.S02E05","infoHash":"2222222222222222222222222222222222222222"}]}`)
		}))
		defer srv.Close()

		c := NewWithBase(srv.URL, srv.Client())
		streams, err := c.Resolve(provider.Request{Kind: media.TV, TMDBID: 1396, IMDBID: "tt0903747", Season: 2, Episode: 5})
		So(err, ShouldBeNil)
		So(gotPath, ShouldEqual, "/stream/series/tt0903747:2:5.json")
		So(streams, ShouldHaveLength, 1)
	})
}

func TestResolveErrors(t *testing.T) {
	Convey("A request without an IMDb id cannot be resolved", t, func() {
		c := New()
		_, err := c.Resolve(provider.Request{Kind: media.Movie, TMDBID: 27205})
		So(err, ShouldNotBeNil)
	})

	Convey("An empty stream list maps to ErrNotFound", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"streams":[]}`)
		}))
		defer srv.Close()

		c := NewWithBase(srv.URL, srv.Client())
		_, err := c.Resolve(provider.Request{Kind: media.Movie, TMDBID: 27205, IMDBID: "tt1375666"})
		So(err, ShouldEqual, provider.ErrNotFound)
	})

	Convey("A 403 is retried once with the alternate user agent", t, func() {
		agents := make([]string, 0, 2)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agents = append(agents, r.Header.Get("User-Agent"))
			if len(agents) == 1 {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			fmt.Fprint(w, `{"streams":[{"title":"ok","infoHash":"3333333333333333333333333333333333333333"}]}`)
		}))
		defer srv.Close()

		c := NewWithBase(srv.URL, srv.Client())
		streams, err := c.Resolve(provider.Request{Kind: media.Movie, TMDBID: 27205, IMDBID: "tt1375666"})
		So(err, ShouldBeNil)
		So(streams, ShouldHaveLength, 1)
		So(agents, ShouldHaveLength, 2)
		So(lo.Uniq(agents), ShouldHaveLength, 2)
	})
}

func TestBuildMagnet(t *testing.T) {
	Convey("BuildMagnet assembles hash, display name and trackers", t, func() {
		m := BuildMagnet("abc123", "Some Movie", []string{"tracker:udp://t.example:80", "dht:deadbeef"})
		So(m, ShouldStartWith, "magnet:?xt=urn:btih:abc123")
		So(m, ShouldContainSubstring, "dn=Some+Movie")
		So(m, ShouldContainSubstring, "tr=udp%3A%2F%2Ft.example%3A80")
		So(m, ShouldNotContainSubstring, "deadbeef")
	})
}
