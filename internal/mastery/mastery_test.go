package mastery

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/logger"
	"github.com/anshul/litmus/internal/quiz"
)

func resultsWithVerdicts(verdicts ...quiz.Verdict) []quiz.Result {
	out := make([]quiz.Result, len(verdicts))
	concepts := []string{"rag", "hallucination", "prompting"}
	for i, v := range verdicts {
		out[i] = quiz.Result{
			ConceptID:     concepts[i%len(concepts)],
			Archetype:     quiz.ArchetypeTrueFalse,
			Verdict:       v,
			UserAnswer:    json.RawMessage(`{"answer":true}`),
			CorrectAnswer: json.RawMessage(`{"answer":true}`),
		}
	}
	return out
}

func TestCategoriesScoring(t *testing.T) {
	results := []quiz.Result{
		{ConceptID: "rag", Verdict: quiz.VerdictCorrect},
		{ConceptID: "rag", Verdict: quiz.VerdictIncorrect},
		{ConceptID: "prompting", Verdict: quiz.VerdictPartial},
	}
	categories, scores := Categories(results)
	if len(categories) != 2 {
		t.Fatalf("categories = %v", categories)
	}
	// rag has more attempts, so it sorts first: (100+0)/2 = 50.
	if categories[0] != "rag" || scores[0] != 50 {
		t.Fatalf("rag scored %v, categories %v", scores, categories)
	}
	if categories[1] != "prompting" || scores[1] != 50 {
		t.Fatalf("prompting scored %v", scores)
	}
}

func TestCategoriesCapped(t *testing.T) {
	var results []quiz.Result
	for _, c := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		results = append(results, quiz.Result{ConceptID: c, Verdict: quiz.VerdictCorrect})
	}
	categories, scores := Categories(results)
	if len(categories) != maxCategories || len(scores) != maxCategories {
		t.Fatalf("expected cap at %d, got %d", maxCategories, len(categories))
	}
}

func TestLevelForScore(t *testing.T) {
	cases := map[float64]int{0: 1, 20: 1, 21: 2, 40: 2, 41: 3, 65: 3, 66: 4, 85: 4, 86: 5, 100: 5}
	for avg, want := range cases {
		if got := LevelForScore(avg); got != want {
			t.Errorf("LevelForScore(%v) = %d, want %d", avg, got, want)
		}
	}
}

func TestBatchScores(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"scores":[90,40,120]}`)},
	)
	judge := NewLevelJudge(mock)

	scores, err := judge.BatchScores(context.Background(), nil, resultsWithVerdicts(
		quiz.VerdictCorrect, quiz.VerdictPartial, quiz.VerdictCorrect))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores[0] != 90 || scores[1] != 40 {
		t.Fatalf("scores = %v", scores)
	}
	if scores[2] != 100 {
		t.Fatalf("out-of-range score not clamped: %v", scores)
	}
}

func TestBatchScoresLengthMismatch(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"scores":[90]}`)},
	)
	judge := NewLevelJudge(mock)

	_, err := judge.BatchScores(context.Background(), nil, resultsWithVerdicts(
		quiz.VerdictCorrect, quiz.VerdictPartial))
	if err == nil {
		t.Fatal("expected error on score count mismatch")
	}
}

func TestOverallLevelBatchRing(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"scores":[90,90,90]}`)},
	)
	s := NewService(NewLevelJudge(mock), logger.Nop())

	level := s.OverallLevel(context.Background(), nil, resultsWithVerdicts(
		quiz.VerdictCorrect, quiz.VerdictCorrect, quiz.VerdictCorrect))
	if level != 5 {
		t.Fatalf("level = %d, want 5", level)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected single batch call, got %d", mock.CallCount())
	}
}

func TestOverallLevelDegradesToPerItem(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{}},                   // batch
		llm.MockResponse{Content: json.RawMessage(`{"score":70}`)},   // item 1
		llm.MockResponse{Content: json.RawMessage(`{"score":60}`)},   // item 2
	)
	s := NewService(NewLevelJudge(mock), logger.Nop())

	level := s.OverallLevel(context.Background(), nil, resultsWithVerdicts(
		quiz.VerdictCorrect, quiz.VerdictPartial))
	if level != 3 {
		t.Fatalf("level = %d, want 3 for average 65", level)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestOverallLevelDegradesToRules(t *testing.T) {
	// Empty mock queue: every call fails, so only rule scores remain.
	s := NewService(NewLevelJudge(llm.NewMockProvider()), logger.Nop())

	// The rule ring scores a correct answer 80, so level 4 is its
	// ceiling; level 5 needs an LLM-scored ring.
	allCorrect := s.OverallLevel(context.Background(), nil, resultsWithVerdicts(
		quiz.VerdictCorrect, quiz.VerdictCorrect, quiz.VerdictCorrect))
	if allCorrect != 4 {
		t.Fatalf("all-correct rule level = %d, want 4", allCorrect)
	}

	allWrong := s.OverallLevel(context.Background(), nil, resultsWithVerdicts(
		quiz.VerdictIncorrect, quiz.VerdictIncorrect, quiz.VerdictIncorrect))
	if allWrong != 1 {
		t.Fatalf("all-incorrect rule level = %d, want 1", allWrong)
	}
	if allCorrect <= allWrong {
		t.Fatal("rule levels not monotone in verdict quality")
	}
}

func TestOverallLevelEmptyResults(t *testing.T) {
	s := NewService(NewLevelJudge(llm.NewMockProvider()), logger.Nop())
	if level := s.OverallLevel(context.Background(), nil, nil); level != 1 {
		t.Fatalf("empty-session level = %d, want 1", level)
	}
}

func TestProfileCombinesViews(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"scores":[80,50]}`)},
	)
	s := NewService(NewLevelJudge(mock), logger.Nop())

	p := s.Profile(context.Background(), nil, resultsWithVerdicts(
		quiz.VerdictCorrect, quiz.VerdictPartial), 4)
	if p.SelfRating != 4 {
		t.Fatalf("selfRating = %d", p.SelfRating)
	}
	if p.OverallLevel != 3 {
		t.Fatalf("overallLevel = %d, want 3 for average 65", p.OverallLevel)
	}
	if len(p.Categories) == 0 || len(p.Categories) != len(p.CategoryScores) {
		t.Fatalf("profile shape: %+v", p)
	}
}
