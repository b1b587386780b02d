package pipeline

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"time"
)

// fakeFS is an in-memory source.FS that counts Open calls, so tests can
// assert a short-circuited scan read no file content.
type fakeFS struct {
	files map[string]*fakeFile
	// paths whose Stat fails, simulating files vanishing mid-scan
	statErrs map[string]bool
	opens    atomic.Int64
}

type fakeFile struct {
	content string
	mtime   time.Time
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		files:    make(map[string]*fakeFile),
		statErrs: make(map[string]bool),
	}
}

func (f *fakeFS) write(p, content string, mtime time.Time) {
	f.files[p] = &fakeFile{content: content, mtime: mtime}
}

func (f *fakeFS) Stat(name string) (fs.FileInfo, error) {
	if f.statErrs[name] {
		return nil, errors.New("stat failed")
	}
	if file, ok := f.files[name]; ok {
		return fakeInfo{name: path.Base(name), size: int64(len(file.content)), mtime: file.mtime}, nil
	}
	// Directories exist wherever a file lives below them.
	for p := range f.files {
		if strings.HasPrefix(p, name+"/") {
			return fakeInfo{name: path.Base(name), dir: true}, nil
		}
	}
	return nil, fs.ErrNotExist
}

func (f *fakeFS) Open(name string) (io.ReadCloser, error) {
	f.opens.Add(1)
	file, ok := f.files[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader([]byte(file.content))), nil
}

func (f *fakeFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	var paths []string
	for p := range f.files {
		if strings.HasPrefix(p, root+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	for _, p := range paths {
		info := fakeInfo{name: path.Base(p), size: int64(len(f.files[p].content)), mtime: f.files[p].mtime}
		if err := fn(p, fs.FileInfoToDirEntry(info), nil); err != nil {
			if err == fs.SkipDir {
				return nil
			}
			return err
		}
	}
	return nil
}

type fakeInfo struct {
	name  string
	size  int64
	mtime time.Time
	dir   bool
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return i.size }
func (i fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (i fakeInfo) ModTime() time.Time { return i.mtime }
func (i fakeInfo) IsDir() bool        { return i.dir }
func (i fakeInfo) Sys() any           { return nil }
