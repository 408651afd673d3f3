package network

import (
	"testing"

	"github.com/cinecli/cinecli/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestWrap(t *testing.T) {
	Convey("Proxy wrapping", t, func() {
		Reset(func() {
			viper.Set(key.NetworkProxy, "")
		})

		Convey("Without a template the URL passes through", func() {
			viper.Set(key.NetworkProxy, "")
			So(Wrap("https://vidsrc.xyz/embed/movie/1"), ShouldEqual, "https://vidsrc.xyz/embed/movie/1")
		})

		Convey("With a template the destination is appended", func() {
			viper.Set(key.NetworkProxy, "https://p/?destination=")
			So(Wrap("https://vidsrc.io/x"), ShouldEqual, "https://p/?destination=https://vidsrc.io/x")
		})

		Convey("Reserved characters outside the safe set are escaped", func() {
			viper.Set(key.NetworkProxy, "https://p/?destination=")
			So(Wrap("https://h/a b"), ShouldEqual, "https://p/?destination=https://h/a%20b")
		})

		Convey("WrapForHosts only rewrites matching domains", func() {
			viper.Set(key.NetworkProxy, "https://p/?destination=")
			So(WrapForHosts("https://torrentio.strem.fun/stream/movie/tt1.json", "torrentio.strem.fun"),
				ShouldEqual, "https://p/?destination=https://torrentio.strem.fun/stream/movie/tt1.json")
			So(WrapForHosts("https://example.com/x", "torrentio.strem.fun"), ShouldEqual, "https://example.com/x")
			So(WrapForHosts("https://sub.torbox.app/x", "torbox.app"), ShouldNotEqual, "https://sub.torbox.app/x")
		})
	})
}
