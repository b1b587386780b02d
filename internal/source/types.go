package source

// RawEntry represents a single line in a Claude Code JSONL session file.
// Every field is optional in the feed; absent and null are equivalent and
// unrecognized fields are ignored.
type RawEntry struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	SessionID string      `json:"sessionId"`
	RequestID string      `json:"requestId"`
	Message   *RawMessage `json:"message"`
}

// RawMessage is the assistant's message envelope.
type RawMessage struct {
	ID    string    `json:"id"`
	Model string    `json:"model"`
	Usage *RawUsage `json:"usage"`
}

// RawUsage holds token counts from the API response.
type RawUsage struct {
	InputTokens              int64          `json:"input_tokens"`
	OutputTokens             int64          `json:"output_tokens"`
	CacheCreationInputTokens int64          `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64          `json:"cache_read_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation"`
}

// CacheCreation is the ephemeral-bucket breakdown some feed versions emit
// instead of the flat cache creation count.
type CacheCreation struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens"`
}
