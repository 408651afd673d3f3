package history

import (
	"testing"

	"github.com/cinecli/cinecli/filesystem"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/media"
	"github.com/cinecli/cinecli/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.HistoryWrite, true)
}

func movie() *media.Item {
	return &media.Item{ID: 27205, Kind: media.Movie, Title: "Inception", ReleaseYear: 2010, VoteAverage: 8.4}
}

func show() *media.Item {
	return &media.Item{ID: 1396, Kind: media.TV, Title: "Breaking Bad", ReleaseYear: 2008}
}

func TestAppendAndList(t *testing.T) {
	Convey("Given a fresh history file", t, func() {
		filesystem.SetMemMapFs()

		Convey("Listing before any write returns nothing", func() {
			entries, err := List(10)
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})

		Convey("Appended entries come back in order with timestamps", func() {
			So(Append(NewEntry(ActionPlay, "mpv", movie(), nil)), ShouldBeNil)
			So(Append(NewEntry(ActionDownload, "yt-dlp", show(), &media.Episode{Season: 2, Episode: 5, Name: "Breakage"})), ShouldBeNil)

			entries, err := List(10)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)

			So(entries[0].Title, ShouldEqual, "Inception")
			So(entries[0].Action, ShouldEqual, ActionPlay)
			So(entries[0].Timestamp, ShouldNotBeEmpty)

			So(entries[1].MediaType, ShouldEqual, "tv")
			So(entries[1].Episode, ShouldNotBeNil)
			So(entries[1].Episode.Season, ShouldEqual, 2)
		})

		Convey("The limit keeps only the newest entries", func() {
			for i := 0; i < 5; i++ {
				So(Append(NewEntry(ActionPlay, "mpv", movie(), nil)), ShouldBeNil)
			}

			entries, err := List(2)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
		})
	})

	Convey("Disabled history swallows writes", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.HistoryWrite, false)
		defer viper.Set(key.HistoryWrite, true)

		So(Append(NewEntry(ActionPlay, "mpv", movie(), nil)), ShouldBeNil)
		entries, err := List(10)
		So(err, ShouldBeNil)
		So(entries, ShouldBeEmpty)
	})
}

func TestListSkipsCorruptLines(t *testing.T) {
	Convey("A corrupt line does not break the rest of the file", t, func() {
		filesystem.SetMemMapFs()

		So(Append(NewEntry(ActionPlay, "mpv", movie(), nil)), ShouldBeNil)

		path := where.History()
		raw, err := filesystem.API().ReadFile(path)
		So(err, ShouldBeNil)
		raw = append(raw, []byte("{not json}\n")...)
		So(filesystem.API().WriteFile(path, raw, 0644), ShouldBeNil)
		So(Append(NewEntry(ActionDownload, "yt-dlp", movie(), nil)), ShouldBeNil)

		entries, err := List(10)
		So(err, ShouldBeNil)
		So(entries, ShouldHaveLength, 2)
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given plays and downloads of the same items", t, func() {
		filesystem.SetMemMapFs()

		So(Append(NewEntry(ActionPlay, "mpv", movie(), nil)), ShouldBeNil)
		So(Append(NewEntry(ActionDownload, "yt-dlp", movie(), nil)), ShouldBeNil)
		So(Append(NewEntry(ActionPlay, "webtorrent", show(), &media.Episode{Season: 2, Episode: 5})), ShouldBeNil)
		So(Append(NewEntry(ActionPlay, "mpv", show(), &media.Episode{Season: 2, Episode: 6})), ShouldBeNil)

		summaries, err := Summarize(100)
		So(err, ShouldBeNil)

		Convey("Movies collapse to one row, episodes stay distinct", func() {
			So(summaries, ShouldHaveLength, 3)
		})

		Convey("Each row remembers the last play method", func() {
			for _, s := range summaries {
				if s.ID == 27205 {
					So(s.LastMethod, ShouldEqual, "mpv")
				}
			}
		})

		Convey("Rows reconstruct usable items", func() {
			item := summaries[0].Item()
			So(item.Kind, ShouldBeIn, media.Movie, media.TV)
			So(item.Title, ShouldNotBeEmpty)
		})
	})
}
