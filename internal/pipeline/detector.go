package pipeline

import (
	"time"

	"github.com/rub1cc/barcc/internal/source"
)

// fileMeta is the (size, mtime) pair used for change detection.
type fileMeta struct {
	size  int64
	mtime time.Time
}

// FileSnapshot records size and modification time for every watched file,
// captured once per scan attempt. It exists purely to short-circuit
// redundant rescans; skipping must never affect the correctness of a scan
// that does run.
type FileSnapshot struct {
	files map[string]fileMeta
	// incomplete is set when metadata could not be obtained for some file;
	// comparison is then inconclusive and a rescan is always forced.
	incomplete bool
}

// CaptureFileSnapshot stats every path and records its metadata.
func CaptureFileSnapshot(fsys source.FS, paths []string) FileSnapshot {
	snap := FileSnapshot{files: make(map[string]fileMeta, len(paths))}
	for _, p := range paths {
		info, err := fsys.Stat(p)
		if err != nil {
			snap.incomplete = true
			continue
		}
		snap.files[p] = fileMeta{size: info.Size(), mtime: info.ModTime()}
	}
	return snap
}

// NeedsRescan decides whether a full pass is required. Any added, removed,
// or changed file forces one, as does a calendar day change or an
// incomplete snapshot on either side.
func NeedsRescan(prev, cur FileSnapshot, prevDay, curDay string) bool {
	if prev.files == nil {
		return true
	}
	if prev.incomplete || cur.incomplete {
		return true
	}
	if prevDay != curDay {
		return true
	}
	if len(prev.files) != len(cur.files) {
		return true
	}
	for path, m := range cur.files {
		pm, ok := prev.files[path]
		if !ok || pm.size != m.size || !pm.mtime.Equal(m.mtime) {
			return true
		}
	}
	return false
}
