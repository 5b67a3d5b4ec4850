package audit

import "time"

// Outcome mirrors the outcome column of tool_call_log.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

// Entry is one dispatched tool call. Entries are append-only.
type Entry struct {
	ID           string    `json:"id"`
	ToolCallID   string    `json:"tool_call_id"`
	ToolName     string    `json:"tool_name"`
	Outcome      Outcome   `json:"outcome"`
	ErrorKind    *string   `json:"error_kind,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}
