package gallery

import (
	"strconv"
	"strings"

	"github.com/syirilrakhulh/oddbit-player/style"
)

// maxPageButtons is how many page numbers are shown around the current one.
const maxPageButtons = 5

// Window is the set of page controls shown under a listing.
type Window struct {
	Pages       []int
	Current     int
	Total       int
	HasPrev     bool
	HasNext     bool
	ShowFirst   bool
	ShowLast    bool
	LeadingGap  bool
	TrailingGap bool
}

// PageWindow centres up to five page numbers on current, sliding the range at the edges,
// and adds shortcuts to the first and last page when they fall outside it.
func PageWindow(current, total int) Window {
	w := Window{Current: current, Total: total}
	if total < 1 {
		return w
	}

	start := max(1, current-maxPageButtons/2)
	end := min(total, start+maxPageButtons-1)
	if end-start+1 < maxPageButtons {
		start = max(1, end-maxPageButtons+1)
	}

	for i := start; i <= end; i++ {
		w.Pages = append(w.Pages, i)
	}

	w.HasPrev = current > 1
	w.HasNext = current < total
	w.ShowFirst = start > 1
	w.LeadingGap = start > 2
	w.ShowLast = end < total
	w.TrailingGap = end < total-1
	return w
}

// String renders the window on one line, highlighting the current page.
func (w Window) String() string {
	if w.Total <= 1 {
		return ""
	}

	var parts []string
	if w.HasPrev {
		parts = append(parts, "‹")
	}
	if w.ShowFirst {
		parts = append(parts, "1")
	}
	if w.LeadingGap {
		parts = append(parts, "…")
	}
	for _, p := range w.Pages {
		if p == w.Current {
			parts = append(parts, style.Bold("["+strconv.Itoa(p)+"]"))
		} else {
			parts = append(parts, strconv.Itoa(p))
		}
	}
	if w.TrailingGap {
		parts = append(parts, "…")
	}
	if w.ShowLast {
		parts = append(parts, strconv.Itoa(w.Total))
	}
	if w.HasNext {
		parts = append(parts, "›")
	}

	return strings.Join(parts, " ")
}
