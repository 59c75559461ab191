package types

// TokenUsage is a snapshot of token-consumption counters at a point in time.
// Snapshots are immutable once recorded: the usage tracker appends copies to
// its history and never hands out aliases to live state.
type TokenUsage struct {
	// ID uniquely identifies a recorded snapshot. Empty on live counters
	// that have not been appended to history yet.
	ID string `json:"id,omitempty"`

	// RequestTokens is the token count of the most recent input.
	RequestTokens int `json:"request_tokens"`

	// ResponseTokens is the token count of the most recent output.
	ResponseTokens int `json:"response_tokens"`

	// PromptTokens is RequestTokens + ResponseTokens.
	PromptTokens int `json:"prompt_tokens"`

	// TotalTokens is the running total across all updates since the last reset.
	TotalTokens int `json:"total_tokens"`
}

// Add accumulates another TokenUsage into this one.
func (u *TokenUsage) Add(other TokenUsage) {
	u.RequestTokens += other.RequestTokens
	u.ResponseTokens += other.ResponseTokens
	u.PromptTokens += other.PromptTokens
	u.TotalTokens += other.TotalTokens
}

// Zero reports whether every counter is zero.
func (u TokenUsage) Zero() bool {
	return u.RequestTokens == 0 && u.ResponseTokens == 0 &&
		u.PromptTokens == 0 && u.TotalTokens == 0
}
