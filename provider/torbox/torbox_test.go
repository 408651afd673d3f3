package torbox

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/provider"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func movieRequest() provider.Request {
	return provider.Request{Kind: media.Movie, TMDBID: 27205, IMDBID: "tt1375666"}
}

func TestResolve(t *testing.T) {
	Convey("Given a configured TorBox API key", t, func() {
		viper.Set(key.TorboxAPIKey, "tb-secret")
		defer viper.Set(key.TorboxAPIKey, "")

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			fmt.Fprint(w, `{"streams":[{"name":"TorBox","title":"Inception 1080p","url":"https://store.torbox.app/dl/a.mkv"}]}`)
		}))
		defer srv.Close()

		Convey("TorBox streams address the key-scoped endpoint", func() {
			c := NewWithBase(srv.URL, srv.Client())
			streams, err := c.Resolve(movieRequest())

			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/tb-secret/stream/movie/tt1375666.json")
			So(streams, ShouldHaveLength, 1)
			So(streams[0].Provider, ShouldEqual, Name)
			So(streams[0].Kind, ShouldEqual, media.StreamHTTP)
		})

		Convey("The combined resolver addresses the torbox= catalogue", func() {
			tr := NewTorrentioWithBase(srv.URL, srv.Client())
			streams, err := tr.Resolve(movieRequest())

			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/torbox=tb-secret/stream/movie/tt1375666.json")
			So(streams, ShouldHaveLength, 1)
			So(streams[0].Provider, ShouldEqual, TorrentioName)
		})
	})

	Convey("Without an API key both resolvers refuse to run", t, func() {
		viper.Set(key.TorboxAPIKey, "")

		_, err := New().Resolve(movieRequest())
		So(err, ShouldNotBeNil)

		_, err = NewTorrentio().Resolve(movieRequest())
		So(err, ShouldNotBeNil)
	})
}
