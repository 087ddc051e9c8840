package media

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func newFixture(files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	So(fs.MkdirAll("videos", 0o755), ShouldBeNil)
	for name, body := range files {
		So(afero.WriteFile(fs, "videos/"+name, []byte(body), 0o644), ShouldBeNil)
	}
	return fs
}

func TestLibrary(t *testing.T) {
	Convey("Given a media directory", t, func() {
		fs := newFixture(map[string]string{
			"alpha.mp4":  "0123456789",
			"beta.webm":  "webm",
			"gamma.mkv":  "mkv",
			".gitignore": "*",
		})
		So(fs.MkdirAll("videos/nested", 0o755), ShouldBeNil)
		lib := NewLibrary(fs, "videos")

		Convey("IDs lists visible files without extensions", func() {
			ids, err := lib.IDs()
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"alpha", "beta", "gamma"})
		})

		Convey("Find matches on the stem", func() {
			res, err := lib.Find("beta")
			So(err, ShouldBeNil)
			So(res.Name, ShouldEqual, "beta.webm")
			So(res.Size, ShouldEqual, 4)
			So(res.ContentType, ShouldEqual, "video/webm")
		})

		Convey("Find does not match prefixes", func() {
			_, err := lib.Find("alp")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("Find ignores dotfiles and directories", func() {
			_, err := lib.Find("nested")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			_, err = lib.Find("")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("The first matching file wins", func() {
			So(afero.WriteFile(fs, "videos/alpha.webm", []byte("second"), 0o644), ShouldBeNil)
			res, err := lib.Find("alpha")
			So(err, ShouldBeNil)
			So(res.Name, ShouldEqual, "alpha.mp4")
		})

		Convey("Files added later are visible", func() {
			So(afero.WriteFile(fs, "videos/delta.mov", []byte("mov"), 0o644), ShouldBeNil)
			_, err := lib.Find("delta")
			So(err, ShouldBeNil)
		})
	})

	Convey("Given a missing directory", t, func() {
		lib := NewLibrary(afero.NewMemMapFs(), "videos")

		Convey("IDs reports the failure", func() {
			_, err := lib.IDs()
			So(err, ShouldNotBeNil)
		})

		Convey("Ensure creates it", func() {
			So(lib.Ensure(), ShouldBeNil)
			ids, err := lib.IDs()
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
		})
	})
}

func TestContentType(t *testing.T) {
	Convey("ContentType", t, func() {
		So(ContentType("a.mp4"), ShouldEqual, "video/mp4")
		So(ContentType("a.WEBM"), ShouldEqual, "video/webm")
		So(ContentType("a.mkv"), ShouldEqual, "video/x-matroska")
		So(ContentType("a"), ShouldEqual, "video/mp4")
		So(ContentType("a.unknownext"), ShouldEqual, "video/mp4")
	})
}
