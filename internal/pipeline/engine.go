package pipeline

import (
	"runtime"
	"sync"
	"time"

	"github.com/rub1cc/barcc/internal/model"
	"github.com/rub1cc/barcc/internal/pricing"
	"github.com/rub1cc/barcc/internal/source"
)

// Engine owns one log tree and publishes immutable snapshots of its
// aggregated usage. All mutable scan state (the file snapshot cache, the
// last-day marker, the dedup set) is private to the engine; only finished
// snapshots cross the boundary.
type Engine struct {
	root  string
	table *pricing.Table
	fsys  source.FS
	now   func() time.Time

	mu       sync.Mutex
	snapshot *model.Snapshot
	files    FileSnapshot
	day      string
}

// Option configures an Engine.
type Option func(*Engine)

// WithFS injects a filesystem, used by tests.
func WithFS(fsys source.FS) Option {
	return func(e *Engine) { e.fsys = fsys }
}

// WithClock injects a clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns an engine scanning root with the given pricing table.
func NewEngine(root string, table *pricing.Table, opts ...Option) *Engine {
	e := &Engine{
		root:  root,
		table: table,
		fsys:  source.OSFS,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns the last published snapshot, or nil before the first
// scan completes.
func (e *Engine) Snapshot() *model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// Scan runs one pass over the log tree and returns the resulting
// snapshot. When nothing changed since the previous pass (same files, same
// sizes and mtimes, same calendar day) the previous snapshot is returned
// without re-reading any file content. Scan never fails: a missing root or
// unreadable file degrades to fewer events, and a valid (possibly
// all-zero) snapshot is always returned.
func (e *Engine) Scan() *model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	today := now.Local().Format(dayFormat)

	paths := source.Discover(e.fsys, e.root)
	cur := CaptureFileSnapshot(e.fsys, paths)

	if e.snapshot != nil && !NeedsRescan(e.files, cur, e.day, today) {
		return e.snapshot
	}

	perFile := decodeFiles(e.fsys, paths)

	// Fold in sorted-path order with a fresh dedup set so the result is
	// deterministic even though decoding ran in parallel.
	dedup := NewDedup()
	agg := NewAggregator(e.table, today)
	lineErrors := 0
	for _, fr := range perFile {
		lineErrors += fr.malformed
		for _, ev := range fr.events {
			if key, ok := ev.DedupKey(); ok && !dedup.IsNew(key) {
				continue
			}
			agg.Add(ev)
		}
	}

	snap := agg.Build(now)
	snap.LineErrors = lineErrors
	// Files discovered but not statted had their metadata vanish mid-scan.
	snap.FileErrors = len(paths) - len(cur.files)

	e.snapshot = snap
	e.files = cur
	e.day = today
	return snap
}

type fileResult struct {
	events    []model.UsageEvent
	malformed int
}

// decodeFiles streams every file through the reader and decoder using a
// bounded worker pool. Results are positional, preserving the caller's
// path order.
func decodeFiles(fsys source.FS, paths []string) []fileResult {
	results := make([]fileResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	work := make(chan int, len(paths))
	for i := range paths {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				var fr fileResult
				for line := range source.Lines(fsys, paths[idx]) {
					switch ev, verdict := source.Decode(line); verdict {
					case source.VerdictEvent:
						fr.events = append(fr.events, ev)
					case source.VerdictMalformed:
						fr.malformed++
					}
				}
				results[idx] = fr
			}
		}()
	}
	wg.Wait()

	return results
}
