package source

import (
	"encoding/json"
	"time"

	"github.com/rub1cc/barcc/internal/model"
)

// timestampFormats are tried in order; the feed emits ISO-8601 with and
// without fractional seconds.
var timestampFormats = []string{time.RFC3339Nano, time.RFC3339}

// Verdict classifies one line of the feed.
type Verdict int

const (
	// VerdictEvent: the line decoded into a usage event.
	VerdictEvent Verdict = iota
	// VerdictSkip: well-formed but not a usage event (user turns,
	// summaries, assistant entries without a usage block). Normal feed
	// content, not a defect.
	VerdictSkip
	// VerdictMalformed: invalid JSON, or an assistant usage entry whose
	// timestamp cannot be parsed. Counted for diagnostics, never fatal.
	VerdictMalformed
)

// Decode parses one trimmed JSONL line. Only VerdictEvent carries a
// usable event; either way processing continues with the next line.
func Decode(line string) (model.UsageEvent, Verdict) {
	if line == "" {
		return model.UsageEvent{}, VerdictSkip
	}

	var raw RawEntry
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return model.UsageEvent{}, VerdictMalformed
	}

	if raw.Type != "assistant" || raw.Message == nil {
		return model.UsageEvent{}, VerdictSkip
	}
	msg := raw.Message
	if msg.Model == "" || msg.Usage == nil {
		return model.UsageEvent{}, VerdictSkip
	}

	ts, ok := parseTimestamp(raw.Timestamp)
	if !ok {
		return model.UsageEvent{}, VerdictMalformed
	}

	u := msg.Usage
	cacheCreation := u.CacheCreationInputTokens
	if cacheCreation == 0 && u.CacheCreation != nil {
		cacheCreation = u.CacheCreation.Ephemeral5mInputTokens + u.CacheCreation.Ephemeral1hInputTokens
	}

	return model.UsageEvent{
		Timestamp: ts,
		SessionID: raw.SessionID,
		RequestID: raw.RequestID,
		MessageID: msg.ID,
		Model:     msg.Model,
		Tokens: model.TokenCounts{
			Input:         u.InputTokens,
			Output:        u.OutputTokens,
			CacheCreation: cacheCreation,
			CacheRead:     u.CacheReadInputTokens,
		},
	}, VerdictEvent
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
