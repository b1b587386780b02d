// Package source discovers, reads, and decodes Claude Code JSONL session logs.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Discover walks the log root and returns every .jsonl file at any depth,
// sorted by path. A missing or non-directory root yields an empty slice;
// unreadable entries are skipped.
func Discover(fsys FS, root string) []string {
	info, err := fsys.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []string
	_ = fsys.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".jsonl" {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files
}

// DefaultRoot returns the conventional per-user log root.
func DefaultRoot() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "projects")
}
