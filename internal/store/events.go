package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures one provider call for the audit log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored audit row.
type LLMRequestEvent struct {
	ID        int64
	CreatedAt time.Time
	LLMRequestEventData
}

// Session event kinds.
const (
	SessionStarted   = "started"
	SessionCompleted = "completed"
	SessionReaped    = "reaped"
)

// SessionEventData records a session lifecycle transition.
type SessionEventData struct {
	SessionID string
	Kind      string
	Detail    string
}

// EventRepo provides access to the audit log. Appends must never fail a
// caller's request; errors are for the caller to log and drop.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// RecentLLMEvents returns up to limit events, newest first. A purpose
	// filter of "" matches everything.
	RecentLLMEvents(ctx context.Context, limit int, purpose string) ([]LLMRequestEvent, error)
}
