package resources

import "testing"

func TestForConceptsTargetsWeakAreas(t *testing.T) {
	got := ForConcepts([]string{"hallucination", "rag"})
	if len(got) != 3 {
		t.Fatalf("expected 3 resources, got %d", len(got))
	}
	if got[0].URL != library["hallucination"][0].URL {
		t.Fatalf("first resource should target the weakest concept, got %q", got[0].Title)
	}
	if got[1].URL != library["rag"][0].URL {
		t.Fatalf("second resource should target the next concept, got %q", got[1].Title)
	}
}

func TestForConceptsDeduplicates(t *testing.T) {
	got := ForConcepts([]string{"llm-basics", "llm-basics", "llm-basics"})
	seen := make(map[string]bool)
	for _, r := range got {
		if seen[r.URL] {
			t.Fatalf("duplicate URL %q", r.URL)
		}
		seen[r.URL] = true
	}
}

func TestForConceptsEmptyInput(t *testing.T) {
	if got := ForConcepts(nil); len(got) != 0 {
		t.Fatalf("expected no resources without weak concepts, got %d", len(got))
	}
}

func TestForConceptsFallsBackToGeneral(t *testing.T) {
	got := ForConcepts([]string{"unknown-concept"})
	if len(got) != 3 {
		t.Fatalf("expected general fallback to fill 3 slots, got %d", len(got))
	}
	if got[0].URL != general[0].URL {
		t.Fatalf("expected general list, got %q", got[0].Title)
	}
}

func TestLibraryEntriesWellFormed(t *testing.T) {
	kinds := map[string]bool{KindArticle: true, KindBlog: true, KindVideo: true, KindCourse: true}
	check := func(r Resource) {
		t.Helper()
		if r.Title == "" || r.Description == "" {
			t.Errorf("resource %q missing fields", r.URL)
		}
		if !kinds[r.Kind] {
			t.Errorf("resource %q has unknown kind %q", r.URL, r.Kind)
		}
		if len(r.URL) < 12 || r.URL[:8] != "https://" {
			t.Errorf("resource %q has suspicious URL %q", r.Title, r.URL)
		}
	}
	for _, pool := range library {
		for _, r := range pool {
			check(r)
		}
	}
	for _, r := range general {
		check(r)
	}
}
