package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

// brokenWriter accepts headers but fails every body write, like a client that hung up.
type brokenWriter struct {
	header http.Header
	status int
}

func (b *brokenWriter) Header() http.Header       { return b.header }
func (b *brokenWriter) WriteHeader(status int)    { b.status = status }
func (b *brokenWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestStreamer(t *testing.T) {
	Convey("Given a 1000 byte video", t, func() {
		content := bytes.Repeat([]byte("0123456789"), 100)
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "videos/sample.mp4", content, 0o644), ShouldBeNil)
		streamer := NewStreamer(NewLibrary(fs, "videos"), WithChunkSize(64))
		ctx := context.Background()

		Convey("A window request gets 206 and exactly that window", func() {
			rec := httptest.NewRecorder()
			plan, err := streamer.Serve(ctx, rec, "sample", "bytes=200-299")
			So(err, ShouldBeNil)
			So(plan.Length, ShouldEqual, 100)
			So(rec.Code, ShouldEqual, http.StatusPartialContent)
			So(rec.Header().Get("Content-Range"), ShouldEqual, "bytes 200-299/1000")
			So(rec.Header().Get("Content-Length"), ShouldEqual, "100")
			So(rec.Header().Get("Accept-Ranges"), ShouldEqual, "bytes")
			So(rec.Header().Get("Content-Type"), ShouldEqual, "video/mp4")
			So(rec.Body.Bytes(), ShouldResemble, content[200:300])
		})

		Convey("No range gets 200 and the whole file", func() {
			rec := httptest.NewRecorder()
			_, err := streamer.Serve(ctx, rec, "sample", "")
			So(err, ShouldBeNil)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Length"), ShouldEqual, "1000")
			So(rec.Header().Get("Content-Range"), ShouldBeEmpty)
			So(rec.Body.Bytes(), ShouldResemble, content)
		})

		Convey("The same request twice yields identical bodies", func() {
			first, second := httptest.NewRecorder(), httptest.NewRecorder()
			_, err := streamer.Serve(ctx, first, "sample", "bytes=-137")
			So(err, ShouldBeNil)
			_, err = streamer.Serve(ctx, second, "sample", "bytes=-137")
			So(err, ShouldBeNil)
			So(first.Body.Len(), ShouldEqual, 137)
			So(first.Body.Bytes(), ShouldResemble, second.Body.Bytes())
		})

		Convey("An unknown id gets 404 with an empty body", func() {
			rec := httptest.NewRecorder()
			_, err := streamer.Serve(ctx, rec, "missing", "")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
			So(rec.Body.Len(), ShouldEqual, 0)
		})

		Convey("A start past the end gets 416", func() {
			rec := httptest.NewRecorder()
			_, err := streamer.Serve(ctx, rec, "sample", "bytes=1000-")
			So(errors.Is(err, ErrRangeNotSatisfiable), ShouldBeTrue)
			So(rec.Code, ShouldEqual, http.StatusRequestedRangeNotSatisfiable)
			So(rec.Header().Get("Content-Range"), ShouldEqual, "bytes */1000")
			So(rec.Body.Len(), ShouldEqual, 0)
		})

		Convey("HEAD writes headers only", func() {
			rec := httptest.NewRecorder()
			plan, err := streamer.Head(rec, "sample", "bytes=0-9")
			So(err, ShouldBeNil)
			So(plan.Length, ShouldEqual, 10)
			So(rec.Code, ShouldEqual, http.StatusPartialContent)
			So(rec.Header().Get("Content-Length"), ShouldEqual, "10")
			So(rec.Body.Len(), ShouldEqual, 0)
		})

		Convey("A cancelled request stops before copying", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			rec := httptest.NewRecorder()
			_, err := streamer.Serve(cancelled, rec, "sample", "")
			So(IsStreamError(err), ShouldBeTrue)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(rec.Body.Len(), ShouldEqual, 0)
		})

		Convey("A vanished client yields a stream error", func() {
			w := &brokenWriter{header: make(http.Header)}
			_, err := streamer.Serve(ctx, w, "sample", "bytes=0-499")
			So(w.status, ShouldEqual, http.StatusPartialContent)

			var streamErr *StreamError
			So(errors.As(err, &streamErr), ShouldBeTrue)
			So(streamErr.ID, ShouldEqual, "sample")
			So(streamErr.Written, ShouldEqual, 0)
			So(errors.Is(err, io.ErrClosedPipe), ShouldBeTrue)
		})

		Convey("Throttling does not change the body", func() {
			throttled := NewStreamer(NewLibrary(fs, "videos"), WithChunkSize(256), WithRateLimit(1<<20))
			rec := httptest.NewRecorder()
			_, err := throttled.Serve(ctx, rec, "sample", "bytes=100-")
			So(err, ShouldBeNil)
			So(rec.Body.Bytes(), ShouldResemble, content[100:])
		})

		Convey("A burst smaller than a chunk is waited out in steps", func() {
			throttled := NewStreamer(NewLibrary(fs, "videos"), WithChunkSize(512), WithRateLimit(100000))
			So(wait(ctx, throttled.newLimiter(), 150000), ShouldBeNil)
		})

		Convey("Concurrent throttled responses each get the full rate", func() {
			long := bytes.Repeat([]byte("x"), 40000)
			So(afero.WriteFile(fs, "videos/long.mp4", long, 0o644), ShouldBeNil)

			// The first 20000 bytes of each response are burst; the rest takes about a second.
			throttled := NewStreamer(NewLibrary(fs, "videos"), WithChunkSize(2000), WithRateLimit(20000))

			var wg sync.WaitGroup
			recs := []*httptest.ResponseRecorder{httptest.NewRecorder(), httptest.NewRecorder()}
			errs := make([]error, len(recs))

			start := time.Now()
			for i, rec := range recs {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, errs[i] = throttled.Serve(ctx, rec, "long", "")
				}()
			}
			wg.Wait()
			elapsed := time.Since(start)

			for i, rec := range recs {
				So(errs[i], ShouldBeNil)
				So(rec.Body.Len(), ShouldEqual, len(long))
			}
			So(elapsed, ShouldBeGreaterThanOrEqualTo, 800*time.Millisecond)
			So(elapsed, ShouldBeLessThan, 2*time.Second)
		})
	})
}
