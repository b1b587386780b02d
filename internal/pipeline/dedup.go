package pipeline

// Dedup tracks event identities seen during one scan. It is reset at the
// start of every pass and is only ever touched by the scan worker, so no
// locking is needed.
type Dedup struct {
	seen map[string]struct{}
}

// NewDedup returns an empty seen-set.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// IsNew reports whether key has not been seen in this scan, marking it
// seen. First occurrence wins; every repeat returns false.
func (d *Dedup) IsNew(key string) bool {
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct keys seen so far.
func (d *Dedup) Len() int {
	return len(d.seen)
}
