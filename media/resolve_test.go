package media

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a resource of 1000 bytes", t, func() {
		const total = int64(1000)

		Convey("An absent header serves everything with 200", func() {
			plan, err := Resolve("", total)
			So(err, ShouldBeNil)
			So(plan, ShouldResemble, Plan{Status: http.StatusOK, Start: 0, End: 999, Length: 1000, Total: total})
		})

		Convey("bytes=a-b serves the closed window", func() {
			for _, c := range [][2]int64{{0, 0}, {200, 299}, {0, 999}, {999, 999}} {
				plan, err := Resolve(fmt.Sprintf("bytes=%d-%d", c[0], c[1]), total)
				So(err, ShouldBeNil)
				So(plan.Status, ShouldEqual, http.StatusPartialContent)
				So(plan.Start, ShouldEqual, c[0])
				So(plan.End, ShouldEqual, c[1])
				So(plan.Length, ShouldEqual, c[1]-c[0]+1)
				So(plan.Partial, ShouldBeTrue)
			}
		})

		Convey("bytes=a-b clamps the end to the last byte", func() {
			plan, err := Resolve("bytes=900-5000", total)
			So(err, ShouldBeNil)
			So(plan.End, ShouldEqual, 999)
			So(plan.Length, ShouldEqual, 100)
		})

		Convey("bytes=a- runs to the end", func() {
			for _, a := range []int64{0, 1, 500, 999} {
				plan, err := Resolve(fmt.Sprintf("bytes=%d-", a), total)
				So(err, ShouldBeNil)
				So(plan.Status, ShouldEqual, http.StatusPartialContent)
				So(plan.Start, ShouldEqual, a)
				So(plan.End, ShouldEqual, total-1)
				So(plan.Length, ShouldEqual, total-a)
			}
		})

		Convey("bytes=-k serves the last k bytes", func() {
			for _, k := range []int64{1, 10, 1000} {
				plan, err := Resolve(fmt.Sprintf("bytes=-%d", k), total)
				So(err, ShouldBeNil)
				So(plan.Start, ShouldEqual, total-k)
				So(plan.End, ShouldEqual, total-1)
				So(plan.Length, ShouldEqual, k)
			}
		})

		Convey("bytes=-k larger than the resource serves all of it", func() {
			plan, err := Resolve("bytes=-5000", total)
			So(err, ShouldBeNil)
			So(plan.Status, ShouldEqual, http.StatusPartialContent)
			So(plan.Start, ShouldEqual, 0)
			So(plan.Length, ShouldEqual, total)
		})

		Convey("A start at or beyond the size is not satisfiable", func() {
			for _, h := range []string{"bytes=1000-", "bytes=1000-1200", "bytes=5000-"} {
				_, err := Resolve(h, total)
				So(errors.Is(err, ErrRangeNotSatisfiable), ShouldBeTrue)
			}
		})

		Convey("Reversed, empty and malformed ranges are not satisfiable", func() {
			for _, h := range []string{
				"bytes=300-200",
				"bytes=-0",
				"bytes=-",
				"bytes=abc-",
				"bytes=1-x",
				"bytes=+1-2",
				"bytes=0-1,5-6",
				"items=0-1",
				"bytes",
			} {
				_, err := Resolve(h, total)
				So(errors.Is(err, ErrRangeNotSatisfiable), ShouldBeTrue)
			}
		})

		Convey("The unit is case-insensitive", func() {
			plan, err := Resolve("Bytes=0-9", total)
			So(err, ShouldBeNil)
			So(plan.Length, ShouldEqual, 10)
		})

		Convey("Content-Range renders the window", func() {
			plan, _ := Resolve("bytes=200-299", total)
			So(plan.ContentRange(), ShouldEqual, "bytes 200-299/1000")
			So(UnsatisfiableContentRange(total), ShouldEqual, "bytes */1000")
		})
	})

	Convey("Given an empty resource", t, func() {
		Convey("Any range is not satisfiable", func() {
			_, err := Resolve("bytes=0-", 0)
			So(errors.Is(err, ErrRangeNotSatisfiable), ShouldBeTrue)
		})

		Convey("No range serves an empty 200", func() {
			plan, err := Resolve("", 0)
			So(err, ShouldBeNil)
			So(plan.Status, ShouldEqual, http.StatusOK)
			So(plan.Length, ShouldEqual, 0)
		})
	})
}

func TestParseRange(t *testing.T) {
	Convey("ParseRange", t, func() {
		Convey("keeps absent bounds absent", func() {
			spec, err := ParseRange("bytes=-42")
			So(err, ShouldBeNil)
			So(spec.Start.IsAbsent(), ShouldBeTrue)
			So(spec.End.MustGet(), ShouldEqual, 42)

			spec, err = ParseRange("bytes=7-")
			So(err, ShouldBeNil)
			So(spec.Start.MustGet(), ShouldEqual, 7)
			So(spec.End.IsAbsent(), ShouldBeTrue)
		})
	})
}
