package quiz

import "testing"

func matchQuestion() *Question {
	return &Question{
		Archetype: ArchetypeMatch,
		Prompt:    "Match each term to its definition",
		ConceptID: "llm-basics",
		Match: &MatchPayload{
			Left:  []Item{{ID: "A", Text: "Token"}, {ID: "B", Text: "Prompt"}},
			Right: []Item{{ID: "1", Text: "A unit of text"}, {ID: "2", Text: "The model's input"}},
			Pairs: []Pair{{Left: "A", Right: "1"}, {Left: "B", Right: "2"}},
		},
	}
}

func TestEvaluateMatch(t *testing.T) {
	q := matchQuestion()

	cases := []struct {
		name      string
		submitted []Pair
		want      Verdict
	}{
		{"all pairs right", []Pair{{Left: "A", Right: "1"}, {Left: "B", Right: "2"}}, VerdictCorrect},
		{"one correct pair submitted alone", []Pair{{Left: "A", Right: "1"}}, VerdictPartial},
		{"all pairs swapped", []Pair{{Left: "A", Right: "2"}, {Left: "B", Right: "1"}}, VerdictIncorrect},
		{"one of two right", []Pair{{Left: "A", Right: "1"}, {Left: "B", Right: "1"}}, VerdictPartial},
		{"empty submission", nil, VerdictIncorrect},
		{"every key pair plus a wrong extra", []Pair{{Left: "A", Right: "1"}, {Left: "B", Right: "2"}, {Left: "A", Right: "2"}}, VerdictPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(q, Answer{Archetype: ArchetypeMatch, Pairs: tc.submitted})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEvaluateBucket(t *testing.T) {
	q := &Question{
		Archetype: ArchetypeBucket,
		Prompt:    "Sort each task",
		ConceptID: "capability-boundary",
		Bucket: &BucketPayload{
			Cards:      []Item{{ID: "c1", Text: "Summarize a document"}, {ID: "c2", Text: "Verify a citation"}},
			Buckets:    []Item{{ID: "ai", Text: "AI does well"}, {ID: "human", Text: "Needs human review"}},
			Assignment: map[string]string{"c1": "ai", "c2": "human"},
		},
	}

	cases := []struct {
		name      string
		submitted map[string]string
		want      Verdict
	}{
		{"all right", map[string]string{"c1": "ai", "c2": "human"}, VerdictCorrect},
		{"one of two right", map[string]string{"c1": "ai", "c2": "ai"}, VerdictPartial},
		{"all wrong", map[string]string{"c1": "human", "c2": "ai"}, VerdictIncorrect},
		{"empty submission", map[string]string{}, VerdictIncorrect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(q, Answer{Archetype: ArchetypeBucket, Assignment: tc.submitted})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEvaluateSingleSelectNoPartialCredit(t *testing.T) {
	q := &Question{
		Archetype: ArchetypeSingleSelect,
		Prompt:    "Which statements are true?",
		ConceptID: "hallucination",
		SingleSelect: &SingleSelectPayload{
			Options:    []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			CorrectIDs: []string{"a", "c"},
		},
	}

	cases := []struct {
		name     string
		selected []string
		want     Verdict
	}{
		{"exact set", []string{"c", "a"}, VerdictCorrect},
		{"subset", []string{"a"}, VerdictIncorrect},
		{"superset", []string{"a", "b", "c"}, VerdictIncorrect},
		{"disjoint", []string{"b"}, VerdictIncorrect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(q, Answer{Archetype: ArchetypeSingleSelect, Selected: tc.selected})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEvaluateTrueFalse(t *testing.T) {
	q := &Question{
		Archetype: ArchetypeTrueFalse,
		Prompt:    "Judge the statement",
		ConceptID: "training-data",
		TrueFalse: &TrueFalsePayload{Statement: "Models know everything after their training cutoff.", Answer: false},
	}

	got, err := Evaluate(q, Answer{Archetype: ArchetypeTrueFalse, Bool: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != VerdictCorrect {
		t.Fatalf("got %q, want correct", got)
	}

	got, err = Evaluate(q, Answer{Archetype: ArchetypeTrueFalse, Bool: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != VerdictIncorrect {
		t.Fatalf("got %q, want incorrect", got)
	}
}

func TestQuickFreeTextVerdict(t *testing.T) {
	f := &FreeTextPayload{
		Scenario:  "A chatbot cites a court case you cannot find anywhere.",
		KeyPoints: []string{"models can hallucinate plausible details", "verify citations against primary sources"},
	}

	cases := []struct {
		name string
		text string
		want Verdict
	}{
		{"empty", "", VerdictIncorrect},
		{"too short", "it is wrong", VerdictIncorrect},
		{"mentions all points", "The model may hallucinate a plausible case that does not exist, so I would verify the citation against primary sources before using it.", VerdictCorrect},
		{"long but off topic", "I would simply trust the chatbot because it sounds confident and has always been useful to me before.", VerdictPartial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := QuickFreeTextVerdict(f, tc.text); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEvaluateArchetypeMismatch(t *testing.T) {
	q := matchQuestion()
	if _, err := Evaluate(q, Answer{Archetype: ArchetypeBucket}); err == nil {
		t.Fatal("expected error for mismatched archetype")
	}
}
