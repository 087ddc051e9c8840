package media

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// RangeSpec is a parsed single byte range. A missing Start denotes a suffix range (bytes=-k),
// a missing End an open range (bytes=a-).
type RangeSpec struct {
	Start mo.Option[int64]
	End   mo.Option[int64]
}

// Plan describes which bytes of a resource a response carries.
// For status 200 and 206, 0 <= Start <= End < Total and End-Start+1 == Length.
type Plan struct {
	Status  int
	Start   int64
	End     int64
	Length  int64
	Total   int64
	Partial bool
}

// ContentRange renders the Content-Range header value of a partial plan.
func (p Plan) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", p.Start, p.End, p.Total)
}

// UnsatisfiableContentRange renders the Content-Range header of a 416 response.
func UnsatisfiableContentRange(total int64) string {
	return fmt.Sprintf("bytes */%d", total)
}

// ParseRange parses a Range header value of the form bytes=a-b, bytes=a- or bytes=-k.
// Other units, several ranges and malformed numbers yield ErrRangeNotSatisfiable.
func ParseRange(header string) (RangeSpec, error) {
	unit, set, ok := strings.Cut(strings.TrimSpace(header), "=")
	if !ok || !strings.EqualFold(strings.TrimSpace(unit), "bytes") {
		return RangeSpec{}, fmt.Errorf("%w: unsupported unit in %q", ErrRangeNotSatisfiable, header)
	}

	if strings.Contains(set, ",") {
		return RangeSpec{}, fmt.Errorf("%w: multiple ranges in %q", ErrRangeNotSatisfiable, header)
	}

	first, last, ok := strings.Cut(strings.TrimSpace(set), "-")
	if !ok {
		return RangeSpec{}, fmt.Errorf("%w: malformed range %q", ErrRangeNotSatisfiable, header)
	}

	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" && last == "" {
		return RangeSpec{}, fmt.Errorf("%w: empty range %q", ErrRangeNotSatisfiable, header)
	}

	var spec RangeSpec
	if first != "" {
		n, err := parseOffset(first)
		if err != nil {
			return RangeSpec{}, fmt.Errorf("%w: %q", ErrRangeNotSatisfiable, header)
		}
		spec.Start = mo.Some(n)
	}
	if last != "" {
		n, err := parseOffset(last)
		if err != nil {
			return RangeSpec{}, fmt.Errorf("%w: %q", ErrRangeNotSatisfiable, header)
		}
		spec.End = mo.Some(n)
	}

	return spec, nil
}

func parseOffset(s string) (int64, error) {
	// ParseInt accepts a leading sign, which is never valid in a byte position.
	if s[0] == '+' || s[0] == '-' {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(s, 10, 64)
}

// Resolve computes the serving plan for a resource of size total given the raw Range header.
// An empty header serves the whole resource with status 200.
func Resolve(header string, total int64) (Plan, error) {
	if strings.TrimSpace(header) == "" {
		return Plan{
			Status: http.StatusOK,
			Start:  0,
			End:    total - 1,
			Length: total,
			Total:  total,
		}, nil
	}

	spec, err := ParseRange(header)
	if err != nil {
		return Plan{}, err
	}

	return spec.Resolve(total)
}

// Resolve bounds the range against a resource of size total.
func (r RangeSpec) Resolve(total int64) (Plan, error) {
	if total <= 0 {
		return Plan{}, fmt.Errorf("%w: empty resource", ErrRangeNotSatisfiable)
	}

	var start, end int64

	start, hasStart := r.Start.Get()
	if !hasStart {
		suffix := r.End.OrEmpty()
		if suffix == 0 {
			return Plan{}, fmt.Errorf("%w: zero-length suffix", ErrRangeNotSatisfiable)
		}
		start = max(total-suffix, 0)
		end = total - 1
	} else {
		if start >= total {
			return Plan{}, fmt.Errorf("%w: start %d beyond size %d", ErrRangeNotSatisfiable, start, total)
		}
		end = min(r.End.OrElse(total-1), total-1)
		if end < start {
			return Plan{}, fmt.Errorf("%w: end before start", ErrRangeNotSatisfiable)
		}
	}

	return Plan{
		Status:  http.StatusPartialContent,
		Start:   start,
		End:     end,
		Length:  end - start + 1,
		Total:   total,
		Partial: true,
	}, nil
}
