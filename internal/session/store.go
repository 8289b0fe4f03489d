package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anshul/litmus/internal/quiz"
	"github.com/anshul/litmus/internal/store"
)

// Store maps session ids to live sessions. Teardown hooks let the
// scheduler and generator drop their per-session caches in the same
// operation that removes the session, so no session-keyed state outlives
// the session itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	teardown []func(sessionID string)
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// OnTeardown registers a hook invoked with the session id whenever a
// session is removed. Register before serving traffic.
func (st *Store) OnTeardown(fn func(sessionID string)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.teardown = append(st.teardown, fn)
}

// Create allocates a new session with a fresh id.
func (st *Store) Create(identity quiz.Identity) *Session {
	now := time.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		Identity:   identity,
		StartedAt:  now,
		lastActive: now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Get looks up a session.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Remove deletes a session and runs every teardown hook for it. Removing
// an unknown id is a no-op (hooks still run, they are idempotent).
func (st *Store) Remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	hooks := append(([]func(string))(nil), st.teardown...)
	st.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Janitor reaps sessions idle longer than idleTimeout, checking every
// interval until ctx is done. Run it in its own goroutine.
func (st *Store) Janitor(ctx context.Context, interval, idleTimeout time.Duration, events store.EventRepo, log *zap.SugaredLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.reapIdle(ctx, idleTimeout, events, log)
		}
	}
}

func (st *Store) reapIdle(ctx context.Context, idleTimeout time.Duration, events store.EventRepo, log *zap.SugaredLogger) {
	cutoff := time.Now().Add(-idleTimeout)

	st.mu.RLock()
	var stale []string
	for id, sess := range st.sessions {
		if sess.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	st.mu.RUnlock()

	for _, id := range stale {
		st.Remove(id)
		log.Infow("reaped idle session", "session", id)
		if err := events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: id,
			Kind:      store.SessionReaped,
		}); err != nil {
			log.Warnw("failed to record session reap", "session", id, "error", err)
		}
	}
}
