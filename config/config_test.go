package config

import (
	"testing"

	"github.com/cinecli/cinecli/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("tmdb.api.key")
			So(result, ShouldEqual, "tmdb_api_key")
		})

		Convey("Env names should carry the application prefix", func() {
			f := Default["tmdb.api_key"]
			So(f.Env(), ShouldEqual, "CINECLI_TMDB_API_KEY")
		})
	})
}
