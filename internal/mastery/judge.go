package mastery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/quiz"
)

const judgeMaxTokens = 2048

// LevelJudge asks the LLM to rate answer quality 0-100 per question,
// which is finer-grained than the three-way verdicts alone.
type LevelJudge struct {
	provider llm.Provider
}

// NewLevelJudge creates a LevelJudge.
func NewLevelJudge(provider llm.Provider) *LevelJudge {
	return &LevelJudge{provider: provider}
}

var batchScoreSchema = &llm.Schema{
	Name:        "mastery-batch-scores",
	Description: "Per-answer mastery scores for a completed quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scores": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": 100,
				},
			},
		},
		"required": []any{"scores"},
	},
}

// BatchScores scores every result in one call. The returned slice must
// be the same length as results; a length mismatch is an error so the
// caller can degrade to per-item scoring.
func (j *LevelJudge) BatchScores(ctx context.Context, questions []*quiz.Question, results []quiz.Result) ([]int, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Score each of the %d quiz answers below from 0 to 100 for demonstrated AI literacy.\n", len(results))
	b.WriteString("A correct answer shows solid understanding (70-100), a partially correct one shows gaps (35-65), an incorrect one shows little (0-30). Within those bands, weigh how demanding the question was.\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "Answer %d:\n", i+1)
		writeResult(&b, questionFor(questions, i), r)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Return exactly %d scores, in order.", len(results))

	req := llm.Request{
		System: "You are an AI literacy education expert scoring quiz answers.",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		Schema:      batchScoreSchema,
		MaxTokens:   judgeMaxTokens,
		Temperature: 0.2,
	}

	resp, err := j.provider.Generate(llm.WithPurpose(ctx, "mastery-batch"), req)
	if err != nil {
		return nil, fmt.Errorf("batch mastery scores: %w", err)
	}

	var out struct {
		Scores []int `json:"scores"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse batch scores: %w", err)
	}
	if len(out.Scores) != len(results) {
		return nil, fmt.Errorf("batch scores: got %d scores for %d answers", len(out.Scores), len(results))
	}
	for i, s := range out.Scores {
		out.Scores[i] = clampScore(s)
	}
	return out.Scores, nil
}

var itemScoreSchema = &llm.Schema{
	Name:        "mastery-item-score",
	Description: "Mastery score for a single quiz answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
		},
		"required": []any{"score"},
	},
}

// ItemScore scores one result. Used when the batch call failed.
func (j *LevelJudge) ItemScore(ctx context.Context, q *quiz.Question, r quiz.Result) (int, error) {
	var b strings.Builder
	b.WriteString("Score the quiz answer below from 0 to 100 for demonstrated AI literacy.\n")
	b.WriteString("A correct answer shows solid understanding (70-100), a partially correct one shows gaps (35-65), an incorrect one shows little (0-30).\n\n")
	writeResult(&b, q, r)

	req := llm.Request{
		System: "You are an AI literacy education expert scoring quiz answers.",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: b.String()},
		},
		Schema:      itemScoreSchema,
		MaxTokens:   256,
		Temperature: 0.2,
	}

	resp, err := j.provider.Generate(llm.WithPurpose(ctx, "mastery-item"), req)
	if err != nil {
		return 0, fmt.Errorf("item mastery score: %w", err)
	}

	var out struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return 0, fmt.Errorf("parse item score: %w", err)
	}
	return clampScore(out.Score), nil
}

func writeResult(b *strings.Builder, q *quiz.Question, r quiz.Result) {
	fmt.Fprintf(b, "Concept: %s (%s question)\n", r.ConceptID, r.Archetype)
	if q != nil {
		fmt.Fprintf(b, "Question: %s\n", q.Prompt)
	}
	fmt.Fprintf(b, "Verdict: %s\n", r.Verdict)
	fmt.Fprintf(b, "User's answer: %s\n", r.UserAnswer)
	fmt.Fprintf(b, "Correct answer: %s\n", r.CorrectAnswer)
}

func questionFor(questions []*quiz.Question, i int) *quiz.Question {
	if i < len(questions) {
		return questions[i]
	}
	return nil
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
