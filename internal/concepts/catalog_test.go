package concepts

import (
	"testing"

	"github.com/anshul/litmus/internal/quiz"
)

func TestEveryArchetypeHasConcepts(t *testing.T) {
	for _, a := range quiz.AllArchetypes {
		if len(Supporting(a)) == 0 {
			t.Errorf("no concepts support archetype %q", a)
		}
	}
}

func TestCatalogEntriesWellFormed(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range All() {
		if c.ID == "" || c.Description == "" {
			t.Errorf("concept %+v missing id or description", c)
		}
		if seen[c.ID] {
			t.Errorf("duplicate concept id %q", c.ID)
		}
		seen[c.ID] = true
		if len(c.Archetypes) == 0 {
			t.Errorf("concept %q supports no archetypes", c.ID)
		}
		for _, a := range c.Archetypes {
			if !a.Valid() {
				t.Errorf("concept %q lists unknown archetype %q", c.ID, a)
			}
		}
	}
}

func TestGet(t *testing.T) {
	c, ok := Get("hallucination")
	if !ok {
		t.Fatal("expected hallucination concept")
	}
	if !c.Supports(quiz.ArchetypeFreeText) {
		t.Fatal("hallucination should support free_text")
	}
	if _, ok := Get("no-such-concept"); ok {
		t.Fatal("unexpected hit for unknown id")
	}
}
