package session

import (
	"context"
	"testing"
	"time"

	"github.com/anshul/litmus/internal/logger"
	"github.com/anshul/litmus/internal/quiz"
)

func TestReapIdleRemovesOnlyStaleSessions(t *testing.T) {
	st := NewStore()
	var torn []string
	st.OnTeardown(func(id string) { torn = append(torn, id) })

	stale := st.Create(quiz.Identity{})
	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	fresh := st.Create(quiz.Identity{})

	st.reapIdle(context.Background(), 30*time.Minute, nopEvents{}, logger.Nop())

	if _, err := st.Get(stale.ID); err == nil {
		t.Fatal("stale session survived reaping")
	}
	if _, err := st.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session was reaped: %v", err)
	}
	if len(torn) != 1 || torn[0] != stale.ID {
		t.Fatalf("teardown hooks saw %v", torn)
	}
}
