// Package questiongen produces validated quiz questions: an archetype
// scheduler that guarantees coverage within a session, an LLM-backed
// generator with concept rotation, and a static fallback bank for when
// the provider is rate limited.
package questiongen

import (
	"math/rand/v2"
	"sync"

	"github.com/anshul/litmus/internal/quiz"
)

// Scheduler decides which archetype question i of a session uses. The
// final question is always free text; the preceding indices follow a
// per-session cached sequence that opens with a shuffled permutation of
// the base archetypes, so every base archetype appears before any
// repeats.
type Scheduler struct {
	mu        sync.Mutex
	sequences map[string][]quiz.Archetype
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{sequences: make(map[string][]quiz.Archetype)}
}

// ArchetypeFor returns the archetype for the given question index. The
// sequence is generated on first call for a session and replayed on
// subsequent calls, so the same (sessionID, index) always yields the same
// archetype.
func (s *Scheduler) ArchetypeFor(sessionID string, index, total int) quiz.Archetype {
	if index == total-1 {
		return quiz.ArchetypeFreeText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.sequences[sessionID]
	if !ok {
		seq = buildSequence(total)
		s.sequences[sessionID] = seq
	}

	if index >= 0 && index < len(seq) {
		return seq[index]
	}

	// Defensive: an index past the cached sequence should not happen, but
	// a random archetype beats a panic.
	return quiz.BaseArchetypes[rand.IntN(len(quiz.BaseArchetypes))]
}

// Forget drops the cached sequence for a session.
func (s *Scheduler) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sequences, sessionID)
}

// buildSequence covers indices 0..total-2: a shuffled permutation of the
// base archetypes extended with random picks.
func buildSequence(total int) []quiz.Archetype {
	seq := make([]quiz.Archetype, len(quiz.BaseArchetypes))
	copy(seq, quiz.BaseArchetypes)
	rand.Shuffle(len(seq), func(i, j int) {
		seq[i], seq[j] = seq[j], seq[i]
	})

	for len(seq) < total-1 {
		seq = append(seq, quiz.BaseArchetypes[rand.IntN(len(quiz.BaseArchetypes))])
	}
	if total-1 < len(seq) {
		seq = seq[:max(total-1, 0)]
	}
	return seq
}
