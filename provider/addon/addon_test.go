package addon

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/provider"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManifestParent(t *testing.T) {
	Convey("ManifestParent strips a trailing manifest.json", t, func() {
		So(ManifestParent("https://addon.example/abc/manifest.json"), ShouldEqual, "https://addon.example/abc")
		So(ManifestParent("https://addon.example/abc/"), ShouldEqual, "https://addon.example/abc")
		So(ManifestParent("https://addon.example/abc"), ShouldEqual, "https://addon.example/abc")
	})
}

func TestFetch(t *testing.T) {
	Convey("Given a stremio addon stream response", t, func(c C) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/stream/series/tt0903747:2:5.json")
			fmt.Fprint(w, `{"streams":[
				{"name":"Addon 4k","title":"BB.S02E05.2160p","url":"https://cdn.example/a.mkv","behaviorHints":{"filename":"BB.S02E05.2160p.mkv","videoSize":19327352832}},
				{"name":"Addon 1080p","description":"BB S02E05\nfilename: BB.S02E05.1080p.mkv","url":"https://cdn.example/b.mkv"}
			]}`)
		}))
		defer srv.Close()

		req := provider.Request{Kind: media.TV, TMDBID: 1396, IMDBID: "tt0903747", Season: 2, Episode: 5}
		streams, err := Fetch("torbox", srv.URL, req, srv.Client())

		Convey("Streams carry direct URLs and extracted metadata", func() {
			So(err, ShouldBeNil)
			So(streams, ShouldHaveLength, 2)

			first := streams[0]
			So(first.Provider, ShouldEqual, "torbox")
			So(first.Kind, ShouldEqual, media.StreamHTTP)
			So(first.URL, ShouldEqual, "https://cdn.example/a.mkv")
			So(first.Name, ShouldEqual, "BB.S02E05.2160p.mkv")
			So(first.SizeBytes, ShouldEqual, int64(19327352832))
			So(first.FileIndex, ShouldEqual, -1)

			Convey("Filenames hidden in descriptions are recovered", func() {
				So(streams[1].Name, ShouldEqual, "BB.S02E05.1080p.mkv")
			})
		})
	})

	Convey("An empty stream list maps to ErrNotFound", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"streams":[]}`)
		}))
		defer srv.Close()

		req := provider.Request{Kind: media.Movie, TMDBID: 27205, IMDBID: "tt1375666"}
		_, err := Fetch("comet", srv.URL, req, srv.Client())
		So(err, ShouldEqual, provider.ErrNotFound)
	})

	Convey("A failing addon wraps the status in a provider error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		req := provider.Request{Kind: media.Movie, TMDBID: 27205, IMDBID: "tt1375666"}
		_, err := Fetch("streamthru", srv.URL, req, srv.Client())

		var perr *provider.Error
		So(err, ShouldNotBeNil)
		So(func() { perr = err.(*provider.Error) }, ShouldNotPanic)
		So(perr.Provider, ShouldEqual, "streamthru")
	})
}
