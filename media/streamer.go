package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/syirilrakhulh/oddbit-player/util"
	"golang.org/x/time/rate"
)

// DefaultChunkSize is the copy granularity used when none is configured.
const DefaultChunkSize = 64 << 10

// Streamer writes library resources to HTTP responses honouring byte-range requests.
type Streamer struct {
	library   *Library
	chunkSize int
	rateLimit int
}

// Option configures a Streamer.
type Option func(*Streamer)

// WithChunkSize sets how many bytes are read and written per step. Non-positive values keep the default.
func WithChunkSize(n int) Option {
	return func(s *Streamer) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithRateLimit caps the outgoing throughput of each response at bytesPerSecond. Zero disables throttling.
func WithRateLimit(bytesPerSecond int) Option {
	return func(s *Streamer) {
		s.rateLimit = max(bytesPerSecond, 0)
	}
}

// NewStreamer returns a streamer serving files of library.
func NewStreamer(library *Library, opts ...Option) *Streamer {
	s := &Streamer{
		library:   library,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Library returns the library the streamer reads from.
func (s *Streamer) Library() *Library {
	return s.library
}

// Head writes the status and headers Serve would produce, without a body.
func (s *Streamer) Head(w http.ResponseWriter, id, rangeHeader string) (Plan, error) {
	res, plan, err := s.prepare(w, id, rangeHeader)
	if err != nil {
		return plan, err
	}

	writeHeaders(w, res, plan)
	return plan, nil
}

// Serve answers a media request for id. Status, headers and body are written to w:
// 404 for an unknown id, 416 for an unsatisfiable range, otherwise 200 or 206 followed by
// exactly Plan.Length bytes. Once headers are committed, failures are returned as *StreamError.
func (s *Streamer) Serve(ctx context.Context, w http.ResponseWriter, id, rangeHeader string) (Plan, error) {
	res, plan, err := s.prepare(w, id, rangeHeader)
	if err != nil {
		return plan, err
	}

	f, err := s.library.Open(res)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return plan, err
	}
	defer util.Ignore(f.Close)

	if _, err := f.Seek(plan.Start, io.SeekStart); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return plan, fmt.Errorf("seek %s: %w", res.Name, err)
	}

	writeHeaders(w, res, plan)

	written, err := s.copy(ctx, w, f, plan.Length)
	if err != nil {
		return plan, &StreamError{ID: id, Written: written, Err: err}
	}

	return plan, nil
}

// prepare resolves the resource and plan, writing the terminal response itself on failure.
func (s *Streamer) prepare(w http.ResponseWriter, id, rangeHeader string) (Resource, Plan, error) {
	res, err := s.library.Find(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		return Resource{}, Plan{}, err
	}

	plan, err := Resolve(rangeHeader, res.Size)
	if err != nil {
		w.Header().Set("Content-Range", UnsatisfiableContentRange(res.Size))
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return res, Plan{Status: http.StatusRequestedRangeNotSatisfiable, Total: res.Size}, err
	}

	return res, plan, nil
}

func writeHeaders(w http.ResponseWriter, res Resource, plan Plan) {
	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("Accept-Ranges", "bytes")
	h.Set("Content-Length", strconv.FormatInt(plan.Length, 10))
	if plan.Partial {
		h.Set("Content-Range", plan.ContentRange())
	}
	w.WriteHeader(plan.Status)
}

// copy moves exactly length bytes from r to w in chunks, stopping early when ctx is done.
func (s *Streamer) copy(ctx context.Context, w http.ResponseWriter, r io.Reader, length int64) (int64, error) {
	rc := http.NewResponseController(w)
	buf := make([]byte, s.chunkSize)
	limiter := s.newLimiter()

	var written int64
	for written < length {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		want := min(int64(len(buf)), length-written)
		n, readErr := io.ReadFull(r, buf[:want])

		if n > 0 {
			if err := wait(ctx, limiter, n); err != nil {
				return written, err
			}
			if _, err := w.Write(buf[:n]); err != nil {
				return written, fmt.Errorf("write: %w", err)
			}
			if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return written, fmt.Errorf("flush: %w", err)
			}
			written += int64(n)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				readErr = io.ErrUnexpectedEOF
			}
			return written, fmt.Errorf("read: %w", readErr)
		}
	}

	return written, nil
}

// newLimiter returns the throttle of a single response, or nil when throttling is off.
// Responses never share a limiter.
func (s *Streamer) newLimiter() *rate.Limiter {
	if s.rateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(s.rateLimit), s.rateLimit)
}

// wait blocks until limiter admits n bytes. A nil limiter admits everything.
func wait(ctx context.Context, limiter *rate.Limiter, n int) error {
	if limiter == nil {
		return nil
	}

	burst := limiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := limiter.WaitN(ctx, step); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}
		n -= step
	}
	return nil
}
