package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/logger"
	"github.com/anshul/litmus/internal/quiz"
)

func freeTextQuestion() *quiz.Question {
	return &quiz.Question{
		Archetype: quiz.ArchetypeFreeText,
		Prompt:    "Respond to the scenario.",
		ConceptID: "hallucination",
		FreeText: &quiz.FreeTextPayload{
			Scenario:  "A chatbot cites a study you cannot find.",
			KeyPoints: []string{"models fabricate citations", "verify against primary sources"},
		},
	}
}

func TestJudgedVerdict(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"result":"partial","reason":"mentions verification but not fabrication"}`)},
	)
	s := NewService(mock, logger.Nop())

	verdict, err := s.JudgedVerdict(context.Background(), freeTextQuestion(), "I would double check the study first.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != quiz.VerdictPartial {
		t.Fatalf("verdict = %q", verdict)
	}
}

func TestJudgedVerdictFailureSurfaces(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	s := NewService(mock, logger.Nop())

	if _, err := s.JudgedVerdict(context.Background(), freeTextQuestion(), "some answer"); err == nil {
		t.Fatal("expected error when judge call fails")
	}
}

func TestJudgedVerdictRejectsStructuredQuestion(t *testing.T) {
	s := NewService(llm.NewMockProvider(), logger.Nop())
	q := &quiz.Question{Archetype: quiz.ArchetypeTrueFalse, TrueFalse: &quiz.TrueFalsePayload{Statement: "x"}}
	if _, err := s.JudgedVerdict(context.Background(), q, "yes"); err == nil {
		t.Fatal("expected error for non-free-text question")
	}
}

func TestFeedbackTruncationRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrMaxTokensExceeded{}},
		llm.MockResponse{Content: json.RawMessage(`{"message":"You correctly spotted the risk."}`)},
	)
	s := NewService(mock, logger.Nop())

	fb, err := s.Feedback(context.Background(), freeTextQuestion(), quiz.VerdictCorrect,
		json.RawMessage(`{"answer":"verify it"}`), json.RawMessage(`{"answer":"verify sources"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fb.IsCorrect || fb.Message == "" {
		t.Fatalf("feedback = %+v", fb)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected truncation retry, got %d calls", mock.CallCount())
	}
	if mock.Calls[1].MaxTokens <= mock.Calls[0].MaxTokens {
		t.Fatal("retry did not raise token budget")
	}
}

func TestFeedbackNoSilentDefault(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue -> provider unavailable
	s := NewService(mock, logger.Nop())

	_, err := s.Feedback(context.Background(), freeTextQuestion(), quiz.VerdictIncorrect,
		json.RawMessage(`{}`), json.RawMessage(`{}`))
	if err == nil {
		t.Fatal("expected hard failure, got fabricated feedback")
	}
}
