// Package model defines the data types shared across the barcc engine.
package model

import "time"

// TokenCounts is the per-category token quadruple attached to every
// assistant event and every aggregate derived from them.
type TokenCounts struct {
	Input         int64
	Output        int64
	CacheCreation int64
	CacheRead     int64
}

// Add accumulates another quadruple into t.
func (t *TokenCounts) Add(o TokenCounts) {
	t.Input += o.Input
	t.Output += o.Output
	t.CacheCreation += o.CacheCreation
	t.CacheRead += o.CacheRead
}

// Total returns the sum over all four categories.
func (t TokenCounts) Total() int64 {
	return t.Input + t.Output + t.CacheCreation + t.CacheRead
}

// Display returns the token count shown to the user. Cache tokens are
// included only when the display preference says so; the raw per-category
// counts are never affected.
func (t TokenCounts) Display(includeCache bool) int64 {
	if includeCache {
		return t.Total()
	}
	return t.Input + t.Output
}

// UsageEvent is one decoded assistant entry from a session log.
type UsageEvent struct {
	Timestamp time.Time
	SessionID string
	RequestID string
	MessageID string
	Model     string
	Tokens    TokenCounts
}

// DedupKey returns the identity used to collapse duplicate events and
// whether the event has one. An event carrying neither a message ID nor a
// request ID has no identity and is never suppressed.
func (e UsageEvent) DedupKey() (string, bool) {
	if e.MessageID == "" && e.RequestID == "" {
		return "", false
	}
	return e.MessageID + ":" + e.RequestID, true
}
