package filesystem

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestNewCache(t *testing.T) {
	Convey("Given a cache on the in-memory backend", t, func() {
		SetMemMapFs()
		cache := NewCache[[]string]("/cache/ids.json", time.Hour)

		Convey("A stored value can be read back", func() {
			So(cache.Set([]string{"a", "b"}), ShouldBeNil)

			ids, expired, err := cache.Get()
			So(err, ShouldBeNil)
			So(expired, ShouldBeFalse)
			So(ids, ShouldResemble, []string{"a", "b"})

			exists, err := API().Exists("/cache/ids.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
