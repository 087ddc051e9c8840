package media

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/syirilrakhulh/oddbit-player/constant"
)

// Entry is one item of a listing page.
type Entry struct {
	ID string `json:"id" jsonschema:"description=File name without extension"`
}

// Page is the body of the listing endpoint.
type Page struct {
	Videos        []Entry `json:"videos"`
	VideosPerPage int     `json:"videosPerPage"`
	Total         int     `json:"total"`
	Pages         int     `json:"pages"`
	HasNextPage   bool    `json:"hasNextPage"`
	HasPrevPage   bool    `json:"hasPrevPage"`
}

// ParsePage reads the 1-indexed page query parameter; anything that is not an integer means page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// Paginate slices ids into the requested page. The page number itself is not clamped;
// pages outside [1, pages] simply carry no videos.
func Paginate(ids []string, page int) Page {
	total := len(ids)
	size := constant.VideosPerPage
	pages := (total + size - 1) / size

	var window []string
	if page >= 1 && page <= pages {
		from := (page - 1) * size
		window = ids[from:min(from+size, total)]
	}

	return Page{
		Videos: lo.Map(window, func(id string, _ int) Entry {
			return Entry{ID: id}
		}),
		VideosPerPage: size,
		Total:         total,
		Pages:         pages,
		HasNextPage:   page < pages,
		HasPrevPage:   page > 1,
	}
}
