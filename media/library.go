// Package media locates video files on disk and serves them over HTTP with byte-range support.
package media

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/syirilrakhulh/oddbit-player/util"
)

// Resource is a video file addressed by the stem of its file name.
type Resource struct {
	ID          string
	Name        string
	Path        string
	Size        int64
	ContentType string
}

// Library resolves media ids against the files of a single directory.
// The directory is re-read on every call so additions and removals are visible immediately.
type Library struct {
	fs  afero.Fs
	dir string
}

// NewLibrary returns a library rooted at dir on fs.
func NewLibrary(fs afero.Fs, dir string) *Library {
	return &Library{fs: fs, dir: dir}
}

// Dir returns the directory the library scans.
func (l *Library) Dir() string {
	return l.dir
}

// Ensure creates the media directory when it is missing.
func (l *Library) Ensure() error {
	if err := l.fs.MkdirAll(l.dir, os.ModePerm); err != nil {
		return fmt.Errorf("create media directory: %w", err)
	}
	return nil
}

// entries lists the visible regular files of the directory in name order.
func (l *Library) entries() ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, fmt.Errorf("read media directory: %w", err)
	}

	return lo.Filter(infos, func(info os.FileInfo, _ int) bool {
		return !info.IsDir() && !util.Hidden(info.Name())
	}), nil
}

// IDs returns the id of every visible file in directory order.
func (l *Library) IDs() ([]string, error) {
	infos, err := l.entries()
	if err != nil {
		return nil, err
	}

	return lo.Map(infos, func(info os.FileInfo, _ int) string {
		return util.FileStem(info.Name())
	}), nil
}

// Find returns the first file whose stem equals id.
func (l *Library) Find(id string) (Resource, error) {
	if id == "" {
		return Resource{}, ErrNotFound
	}

	infos, err := l.entries()
	if err != nil {
		return Resource{}, err
	}

	info, ok := lo.Find(infos, func(info os.FileInfo) bool {
		return util.FileStem(info.Name()) == id
	})
	if !ok {
		return Resource{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return Resource{
		ID:          id,
		Name:        info.Name(),
		Path:        filepath.Join(l.dir, info.Name()),
		Size:        info.Size(),
		ContentType: ContentType(info.Name()),
	}, nil
}

// Open returns a read handle on the resource. The caller closes it.
func (l *Library) Open(r Resource) (afero.File, error) {
	f, err := l.fs.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.Name, err)
	}
	return f, nil
}
