// Package feedback generates the per-answer responses a user sees after
// submitting: the authoritative LLM-judged verdict for free-text answers
// and a short narrative explanation for every archetype. Both calls must
// succeed; once a submission reaches this stage there is no canned text
// to fall back on.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/quiz"
)

const (
	judgeMaxTokens    = 1024
	feedbackMaxTokens = 2048
)

// Feedback is the narrative returned with a verdict.
type Feedback struct {
	Message   string `json:"message"`
	IsCorrect bool   `json:"isCorrect"`
}

// Service runs the judge and feedback prompts against the LLM.
type Service struct {
	provider llm.Provider
	log      *zap.SugaredLogger
}

// NewService creates a feedback Service.
func NewService(provider llm.Provider, log *zap.SugaredLogger) *Service {
	return &Service{provider: provider, log: log}
}

var judgeSchema = &llm.Schema{
	Name:        "free-text-judgment",
	Description: "Verdict on a free-text answer against its rubric",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"result": map[string]any{
				"type": "string",
				"enum": []any{"correct", "partial", "incorrect"},
			},
			"reason": map[string]any{"type": "string"},
		},
		"required": []any{"result"},
	},
}

// JudgedVerdict asks the LLM to score a free-text answer against the
// question's key points. This verdict supersedes the quick heuristic and
// is what gets recorded and aggregated. A truncated response is retried
// once with a larger budget; any other failure fails the submission.
func (s *Service) JudgedVerdict(ctx context.Context, q *quiz.Question, answerText string) (quiz.Verdict, error) {
	if q.FreeText == nil {
		return "", fmt.Errorf("judged verdict requires a free_text question")
	}

	var b strings.Builder
	b.WriteString("Evaluate the quality of the user's answer to a short-answer question.\n\n")
	fmt.Fprintf(&b, "Question scenario: %s\n\n", q.FreeText.Scenario)
	b.WriteString("Key points a good answer covers:\n")
	for i, p := range q.FreeText.KeyPoints {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	fmt.Fprintf(&b, "\nUser's answer: %q\n\n", answerText)
	b.WriteString(`Read the user's actual answer carefully; do not assume content that is not there.
Criteria:
- correct: fully covers the key points with accurate understanding
- partial: covers some points but is incomplete or partly mistaken
- incorrect: misses the key points or shows serious misunderstanding`)

	req := llm.Request{
		System: "You are an AI literacy education expert grading short answers.",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		Schema:      judgeSchema,
		MaxTokens:   judgeMaxTokens,
		Temperature: 0.3,
	}

	resp, err := s.generateWithTruncationRetry(llm.WithPurpose(ctx, "free-text-judge"), req)
	if err != nil {
		return "", fmt.Errorf("judge free-text answer: %w", err)
	}

	var out struct {
		Result quiz.Verdict `json:"result"`
		Reason string       `json:"reason"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse judgment: %w", err)
	}

	s.log.Debugw("free-text answer judged", "verdict", out.Result, "reason", out.Reason)
	return out.Result, nil
}

var feedbackSchema = &llm.Schema{
	Name:        "answer-feedback",
	Description: "Short narrative feedback on an answered question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"message"},
	},
}

// Feedback generates the narrative shown with the verdict. userAnswer and
// correctAnswer are the wire-format payloads so the model can point at
// the user's specific mistakes.
func (s *Service) Feedback(ctx context.Context, q *quiz.Question, verdict quiz.Verdict, userAnswer, correctAnswer json.RawMessage) (Feedback, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "The user just answered a %s question on the concept %q and was judged %q.\n\n", q.Archetype, q.ConceptID, verdict)
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Author's explanation: %s\n", q.Explanation)
	}
	fmt.Fprintf(&b, "User's answer: %s\n", userAnswer)
	fmt.Fprintf(&b, "Correct answer: %s\n\n", correctAnswer)
	b.WriteString(`Write 2-4 sentences of feedback addressed to the user:
1. Acknowledge what they got right, if anything.
2. Point at the specific gap in their answer, referencing what they actually chose or wrote.
3. End with the key takeaway for this concept.
Be encouraging but precise. Address the user as "you".`)

	req := llm.Request{
		System: "You are an AI literacy tutor giving feedback on a quiz answer.",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		Schema:      feedbackSchema,
		MaxTokens:   feedbackMaxTokens,
		Temperature: 0.7,
	}

	resp, err := s.generateWithTruncationRetry(llm.WithPurpose(ctx, "feedback"), req)
	if err != nil {
		return Feedback{}, fmt.Errorf("generate feedback: %w", err)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Feedback{}, fmt.Errorf("parse feedback: %w", err)
	}

	return Feedback{
		Message:   out.Message,
		IsCorrect: verdict == quiz.VerdictCorrect,
	}, nil
}

// generateWithTruncationRetry retries exactly once with double the token
// budget when the first attempt was cut off.
func (s *Service) generateWithTruncationRetry(ctx context.Context, req llm.Request) (*llm.Response, error) {
	resp, err := s.provider.Generate(ctx, req)

	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		s.log.Warnw("response truncated, retrying with larger budget", "purpose", llm.PurposeFrom(ctx))
		req.MaxTokens *= 2
		resp, err = s.provider.Generate(ctx, req)
	}
	return resp, err
}
