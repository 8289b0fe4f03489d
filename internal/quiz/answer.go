package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is a user's submitted answer, shaped by the question's archetype.
// Exactly the field matching Archetype is meaningful.
type Answer struct {
	Archetype Archetype

	Pairs      []Pair            // match
	Assignment map[string]string // bucket
	Selected   []string          // single_select
	Bool       bool              // true_false
	Text       string            // free_text
}

// answerWire is the submitted JSON shape. The "answer" key is overloaded:
// a boolean for true_false, a string for free_text.
type answerWire struct {
	Matches     []Pair            `json:"matches"`
	Assignments map[string]string `json:"assignments"`
	Selected    []string          `json:"selected"`
	Answer      json.RawMessage   `json:"answer"`
}

// ParseAnswer decodes a submitted answer payload for the given archetype.
func ParseAnswer(archetype Archetype, raw json.RawMessage) (Answer, error) {
	var w answerWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Answer{}, fmt.Errorf("decode answer: %w", err)
	}

	ans := Answer{Archetype: archetype}
	switch archetype {
	case ArchetypeMatch:
		ans.Pairs = w.Matches
	case ArchetypeBucket:
		ans.Assignment = w.Assignments
	case ArchetypeSingleSelect:
		ans.Selected = w.Selected
	case ArchetypeTrueFalse:
		if len(w.Answer) == 0 {
			return Answer{}, fmt.Errorf("true_false answer missing")
		}
		if err := json.Unmarshal(w.Answer, &ans.Bool); err != nil {
			return Answer{}, fmt.Errorf("true_false answer must be a boolean: %w", err)
		}
	case ArchetypeFreeText:
		if len(w.Answer) == 0 {
			return Answer{}, fmt.Errorf("free_text answer missing")
		}
		if err := json.Unmarshal(w.Answer, &ans.Text); err != nil {
			return Answer{}, fmt.Errorf("free_text answer must be a string: %w", err)
		}
	default:
		return Answer{}, fmt.Errorf("unknown archetype %q", archetype)
	}

	return ans, nil
}

// MarshalJSON renders the answer back into its submitted wire shape, used
// when recording results.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Archetype {
	case ArchetypeMatch:
		return json.Marshal(map[string]any{"matches": a.Pairs})
	case ArchetypeBucket:
		return json.Marshal(map[string]any{"assignments": a.Assignment})
	case ArchetypeSingleSelect:
		return json.Marshal(map[string]any{"selected": a.Selected})
	case ArchetypeTrueFalse:
		return json.Marshal(map[string]any{"answer": a.Bool})
	case ArchetypeFreeText:
		return json.Marshal(map[string]any{"answer": a.Text})
	}
	return nil, fmt.Errorf("unknown archetype %q", a.Archetype)
}

// CorrectAnswer renders a question's answer key in the same wire shape as
// a submitted answer, for recording and for feedback prompts.
func CorrectAnswer(q *Question) (json.RawMessage, error) {
	switch q.Archetype {
	case ArchetypeMatch:
		return json.Marshal(map[string]any{"matches": q.Match.Pairs})
	case ArchetypeBucket:
		return json.Marshal(map[string]any{"assignments": q.Bucket.Assignment})
	case ArchetypeSingleSelect:
		return json.Marshal(map[string]any{"selected": q.SingleSelect.CorrectIDs})
	case ArchetypeTrueFalse:
		return json.Marshal(map[string]any{"answer": q.TrueFalse.Answer})
	case ArchetypeFreeText:
		return json.Marshal(map[string]any{
			"answer":     strings.Join(q.FreeText.KeyPoints, "; "),
			"key_points": q.FreeText.KeyPoints,
		})
	}
	return nil, fmt.Errorf("unknown archetype %q", q.Archetype)
}

// Result is the permanent record of one answered question. Appended once,
// never mutated.
type Result struct {
	ConceptID     string          `json:"concept"`
	Archetype     Archetype       `json:"type"`
	Verdict       Verdict         `json:"result"`
	UserAnswer    json.RawMessage `json:"userAnswer"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
}
