package template

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Loader opens template sources by slash-separated path. Include markers
// resolve relative to the including template before reaching the loader, so
// implementations only ever see paths rooted at their own base.
type Loader interface {
	Open(name string) (io.ReadCloser, error)
}

// DirLoader serves templates from a directory on disk. Paths are cleaned
// against the root, so a template cannot include anything outside of it.
type DirLoader struct {
	root string
}

func NewDirLoader(root string) *DirLoader {
	return &DirLoader{root: root}
}

func (l *DirLoader) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.root, filepath.FromSlash(rootedPath(name))))
}

// FSLoader serves templates from an fs.FS, typically an embed.FS or a
// testing/fstest.MapFS.
type FSLoader struct {
	fsys fs.FS
}

func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

func (l *FSLoader) Open(name string) (io.ReadCloser, error) {
	return l.fsys.Open(strings.TrimPrefix(rootedPath(name), "/"))
}

// rootedPath normalizes name to an absolute slash path, discarding any ".."
// components that would climb above the loader base.
func rootedPath(name string) string {
	return path.Clean("/" + name)
}
