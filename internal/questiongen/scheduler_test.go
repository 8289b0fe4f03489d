package questiongen

import (
	"testing"

	"github.com/anshul/litmus/internal/quiz"
)

func TestSchedulerCoverage(t *testing.T) {
	s := NewScheduler()

	for run := 0; run < 20; run++ {
		sessionID := string(rune('a' + run))
		seen := make(map[quiz.Archetype]bool)
		for i := 0; i < 5; i++ {
			seen[s.ArchetypeFor(sessionID, i, 6)] = true
		}
		for _, base := range quiz.BaseArchetypes {
			if !seen[base] {
				t.Fatalf("session %q: archetype %q never scheduled in first five questions", sessionID, base)
			}
		}
	}
}

func TestSchedulerFinalIndexIsFreeText(t *testing.T) {
	s := NewScheduler()
	if got := s.ArchetypeFor("s1", 5, 6); got != quiz.ArchetypeFreeText {
		t.Fatalf("final question archetype = %q, want free_text", got)
	}
}

func TestSchedulerDeterministicWithinSession(t *testing.T) {
	s := NewScheduler()
	for i := 0; i < 5; i++ {
		first := s.ArchetypeFor("s1", i, 6)
		second := s.ArchetypeFor("s1", i, 6)
		if first != second {
			t.Fatalf("index %d: %q then %q", i, first, second)
		}
	}
}

func TestSchedulerForget(t *testing.T) {
	s := NewScheduler()
	s.ArchetypeFor("s1", 0, 6)

	s.mu.Lock()
	_, cached := s.sequences["s1"]
	s.mu.Unlock()
	if !cached {
		t.Fatal("sequence not cached")
	}

	s.Forget("s1")

	s.mu.Lock()
	_, cached = s.sequences["s1"]
	s.mu.Unlock()
	if cached {
		t.Fatal("sequence survived Forget")
	}
}

func TestSchedulerDefensiveIndexBeyondSequence(t *testing.T) {
	s := NewScheduler()
	got := s.ArchetypeFor("s1", 10, 6)
	if !got.Valid() {
		t.Fatalf("out-of-range index returned invalid archetype %q", got)
	}
}
