package source

import (
	"testing"
	"time"
)

func TestDecode_Valid(t *testing.T) {
	line := `{"type":"assistant","timestamp":"2026-08-29T10:30:00.123Z","sessionId":"s1","requestId":"req_1","message":{"id":"msg_1","model":"claude-sonnet-4-5-20250929","usage":{"input_tokens":1000,"output_tokens":500,"cache_creation_input_tokens":200,"cache_read_input_tokens":3000}}}`

	ev, verdict := Decode(line)
	if verdict != VerdictEvent {
		t.Fatalf("verdict = %v, want event", verdict)
	}
	if ev.Model != "claude-sonnet-4-5-20250929" {
		t.Errorf("Model = %q", ev.Model)
	}
	if ev.SessionID != "s1" || ev.RequestID != "req_1" || ev.MessageID != "msg_1" {
		t.Errorf("identity = %q/%q/%q", ev.SessionID, ev.RequestID, ev.MessageID)
	}
	if ev.Tokens.Input != 1000 || ev.Tokens.Output != 500 || ev.Tokens.CacheCreation != 200 || ev.Tokens.CacheRead != 3000 {
		t.Errorf("tokens = %+v", ev.Tokens)
	}
	want := time.Date(2026, 8, 29, 10, 30, 0, 123_000_000, time.UTC)
	if !ev.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", ev.Timestamp, want)
	}
}

func TestDecode_TimestampWithoutFraction(t *testing.T) {
	line := `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":{"id":"m","model":"claude-sonnet-4-5","usage":{"input_tokens":1}}}`
	ev, verdict := Decode(line)
	if verdict != VerdictEvent {
		t.Fatalf("verdict = %v for RFC3339 timestamp without fraction", verdict)
	}
	if ev.Timestamp.Second() != 0 || ev.Timestamp.Hour() != 10 {
		t.Errorf("Timestamp = %v", ev.Timestamp)
	}
}

func TestDecode_Verdicts(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Verdict
	}{
		{"empty line", "", VerdictSkip},
		{"invalid json", `{"type":"assistant"`, VerdictMalformed},
		{"not json at all", "plain text", VerdictMalformed},
		{"user turn", `{"type":"user","timestamp":"2026-08-29T10:30:00Z","message":{"model":"m","usage":{"input_tokens":1}}}`, VerdictSkip},
		{"summary entry", `{"type":"summary","summary":"refactoring"}`, VerdictSkip},
		{"missing type", `{"timestamp":"2026-08-29T10:30:00Z","message":{"model":"m","usage":{"input_tokens":1}}}`, VerdictSkip},
		{"assistant without message", `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z"}`, VerdictSkip},
		{"null message", `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":null}`, VerdictSkip},
		{"missing model", `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":{"usage":{"input_tokens":1}}}`, VerdictSkip},
		{"missing usage", `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":{"model":"m"}}`, VerdictSkip},
		{"null usage", `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":{"model":"m","usage":null}}`, VerdictSkip},
		{"missing timestamp", `{"type":"assistant","message":{"model":"m","usage":{"input_tokens":1}}}`, VerdictMalformed},
		{"unparseable timestamp", `{"type":"assistant","timestamp":"yesterday","message":{"model":"m","usage":{"input_tokens":1}}}`, VerdictMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, verdict := Decode(tt.line); verdict != tt.want {
				t.Errorf("verdict = %v, want %v", verdict, tt.want)
			}
		})
	}
}

func TestDecode_MissingCountsAreZero(t *testing.T) {
	line := `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":{"model":"m","usage":{"output_tokens":5}}}`
	ev, verdict := Decode(line)
	if verdict != VerdictEvent {
		t.Fatalf("verdict = %v for partial usage", verdict)
	}
	if ev.Tokens.Input != 0 || ev.Tokens.Output != 5 || ev.Tokens.CacheCreation != 0 || ev.Tokens.CacheRead != 0 {
		t.Errorf("tokens = %+v, want zeros except output", ev.Tokens)
	}
}

func TestDecode_EphemeralCacheBuckets(t *testing.T) {
	// When the flat cache creation count is absent, the ephemeral bucket
	// breakdown supplies it.
	line := `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":{"model":"m","usage":{"input_tokens":1,"cache_creation":{"ephemeral_5m_input_tokens":100,"ephemeral_1h_input_tokens":40}}}}`
	ev, verdict := Decode(line)
	if verdict != VerdictEvent {
		t.Fatalf("verdict = %v for ephemeral cache buckets", verdict)
	}
	if ev.Tokens.CacheCreation != 140 {
		t.Errorf("CacheCreation = %d, want 140", ev.Tokens.CacheCreation)
	}
}

func TestDecode_FlatCacheCountWins(t *testing.T) {
	line := `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","message":{"model":"m","usage":{"cache_creation_input_tokens":99,"cache_creation":{"ephemeral_5m_input_tokens":100}}}}`
	ev, verdict := Decode(line)
	if verdict != VerdictEvent {
		t.Fatalf("verdict = %v", verdict)
	}
	if ev.Tokens.CacheCreation != 99 {
		t.Errorf("CacheCreation = %d, want 99 (flat count takes precedence)", ev.Tokens.CacheCreation)
	}
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	line := `{"type":"assistant","timestamp":"2026-08-29T10:30:00Z","uuid":"x","cwd":"/tmp","message":{"model":"m","role":"assistant","content":[{"type":"text","text":"hi"}],"usage":{"input_tokens":7,"service_tier":"standard"}}}`
	ev, verdict := Decode(line)
	if verdict != VerdictEvent {
		t.Fatalf("verdict = %v for entry with extra fields", verdict)
	}
	if ev.Tokens.Input != 7 {
		t.Errorf("Input = %d, want 7", ev.Tokens.Input)
	}
}
