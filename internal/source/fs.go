package source

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the filesystem surface the scan pipeline depends on. Tests inject
// a fake implementation to count I/O calls and simulate failures.
type FS interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
}

type osFS struct{}

func (osFS) WalkDir(root string, fn fs.WalkDirFunc) error { return filepath.WalkDir(root, fn) }
func (osFS) Stat(name string) (fs.FileInfo, error)        { return os.Stat(name) }
func (osFS) Open(name string) (io.ReadCloser, error)      { return os.Open(name) }

// OSFS is the real filesystem.
var OSFS FS = osFS{}
