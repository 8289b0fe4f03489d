// Package session owns the in-memory assessment state: per-session
// question and result bookkeeping, the single-slot prefetch buffer, and
// the orchestrator that drives a session from first question to summary.
package session

import (
	"sync"
	"time"

	"github.com/anshul/litmus/internal/quiz"
)

// Session is one user's in-flight assessment. len(Results) is the
// authoritative next-question index: Questions may lead Results by at
// most one (the current unanswered question), and the prefetch slot is a
// tentative further look-ahead not yet committed into Questions.
//
// All field access goes through mu. The orchestrator holds the lock for
// the whole of each operation, which serializes concurrent requests
// against the same session.
type Session struct {
	mu sync.Mutex

	ID       string
	Identity quiz.Identity

	Questions []*quiz.Question
	Results   []quiz.Result

	prefetch    *quiz.Question
	prefetching bool

	StartedAt   time.Time
	CompletedAt time.Time
	lastActive  time.Time
}

// Snapshot is an immutable copy of the session state used by the summary
// pipeline, taken under the session lock.
type Snapshot struct {
	ID        string
	Identity  quiz.Identity
	Questions []*quiz.Question
	Results   []quiz.Result
	Completed bool
}

// Snapshot copies the answerable state out of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		Identity:  s.Identity,
		Questions: append([]*quiz.Question(nil), s.Questions...),
		Results:   append([]quiz.Result(nil), s.Results...),
		Completed: !s.CompletedAt.IsZero(),
	}
}

// Prefetched returns the question currently parked in the prefetch slot,
// if any. Exposed for tests and diagnostics.
func (s *Session) Prefetched() *quiz.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefetch
}

// touch records activity for idle-timeout accounting. Callers hold mu.
func (s *Session) touch() {
	s.lastActive = time.Now()
}

// idleSince reports the last activity timestamp.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
