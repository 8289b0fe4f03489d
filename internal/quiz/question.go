// Package quiz defines the question model shared by the whole assessment
// pipeline: the five question archetypes, their answer keys, user answer
// parsing, and the verdict rules that score a submission.
package quiz

import (
	"encoding/json"
	"fmt"
)

// Archetype identifies the shape of a question and the rule used to
// evaluate an answer to it.
type Archetype string

const (
	// ArchetypeMatch pairs items from a left column with a right column.
	ArchetypeMatch Archetype = "match"

	// ArchetypeBucket sorts cards into labeled buckets.
	ArchetypeBucket Archetype = "bucket"

	// ArchetypeSingleSelect picks option(s) from a list; evaluation is
	// exact set equality with no partial credit.
	ArchetypeSingleSelect Archetype = "single_select"

	// ArchetypeTrueFalse judges a statement as true or false.
	ArchetypeTrueFalse Archetype = "true_false"

	// ArchetypeFreeText answers a scenario in the user's own words.
	ArchetypeFreeText Archetype = "free_text"
)

// BaseArchetypes are the archetypes eligible for the shuffled portion of a
// session. The final question of every session is free text, so it is not
// part of the base set.
var BaseArchetypes = []Archetype{
	ArchetypeMatch,
	ArchetypeBucket,
	ArchetypeSingleSelect,
	ArchetypeTrueFalse,
}

// AllArchetypes lists every archetype.
var AllArchetypes = []Archetype{
	ArchetypeMatch,
	ArchetypeBucket,
	ArchetypeSingleSelect,
	ArchetypeTrueFalse,
	ArchetypeFreeText,
}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeMatch, ArchetypeBucket, ArchetypeSingleSelect, ArchetypeTrueFalse, ArchetypeFreeText:
		return true
	}
	return false
}

// Item is an identified piece of question content (an option, card,
// bucket label, or column entry).
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Pair links a left item to a right item in a match question. On the wire
// it is a two-element array [left, right].
type Pair struct {
	Left  string
	Right string
}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Left, p.Right})
}

func (p *Pair) UnmarshalJSON(data []byte) error {
	var arr [2]string
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("pair must be a two-element array: %w", err)
	}
	p.Left, p.Right = arr[0], arr[1]
	return nil
}

// MatchPayload is the body of a match question. Pairs is the answer key:
// bijective, every left id appearing exactly once.
type MatchPayload struct {
	Left  []Item
	Right []Item
	Pairs []Pair
}

// BucketPayload is the body of a bucket question. Assignment maps card id
// to the correct bucket id and covers every card.
type BucketPayload struct {
	Cards      []Item
	Buckets    []Item
	Assignment map[string]string
}

// SingleSelectPayload is the body of a selection question.
type SingleSelectPayload struct {
	Options    []Item
	CorrectIDs []string
}

// TrueFalsePayload is the body of a true/false question.
type TrueFalsePayload struct {
	Statement string
	Answer    bool
}

// FreeTextPayload is the body of a free-text question. KeyPoints drive
// both the quick heuristic verdict and the LLM-judged rubric.
type FreeTextPayload struct {
	Scenario       string
	KeyPoints      []string
	ExpectedLength string
}

// Question is a tagged union over the five archetypes. Exactly one payload
// pointer is non-nil, matching Archetype.
type Question struct {
	Archetype   Archetype
	Prompt      string
	Explanation string
	ConceptID   string

	Match        *MatchPayload
	Bucket       *BucketPayload
	SingleSelect *SingleSelectPayload
	TrueFalse    *TrueFalsePayload
	FreeText     *FreeTextPayload
}

// Clone returns a deep copy. The fallback bank hands out clones so callers
// can pin the archetype without mutating the pool.
func (q *Question) Clone() *Question {
	out := &Question{
		Archetype:   q.Archetype,
		Prompt:      q.Prompt,
		Explanation: q.Explanation,
		ConceptID:   q.ConceptID,
	}
	if q.Match != nil {
		out.Match = &MatchPayload{
			Left:  append([]Item(nil), q.Match.Left...),
			Right: append([]Item(nil), q.Match.Right...),
			Pairs: append([]Pair(nil), q.Match.Pairs...),
		}
	}
	if q.Bucket != nil {
		assignment := make(map[string]string, len(q.Bucket.Assignment))
		for k, v := range q.Bucket.Assignment {
			assignment[k] = v
		}
		out.Bucket = &BucketPayload{
			Cards:      append([]Item(nil), q.Bucket.Cards...),
			Buckets:    append([]Item(nil), q.Bucket.Buckets...),
			Assignment: assignment,
		}
	}
	if q.SingleSelect != nil {
		out.SingleSelect = &SingleSelectPayload{
			Options:    append([]Item(nil), q.SingleSelect.Options...),
			CorrectIDs: append([]string(nil), q.SingleSelect.CorrectIDs...),
		}
	}
	if q.TrueFalse != nil {
		tf := *q.TrueFalse
		out.TrueFalse = &tf
	}
	if q.FreeText != nil {
		out.FreeText = &FreeTextPayload{
			Scenario:       q.FreeText.Scenario,
			KeyPoints:      append([]string(nil), q.FreeText.KeyPoints...),
			ExpectedLength: q.FreeText.ExpectedLength,
		}
	}
	return out
}

// questionWire is the flat JSON shape questions travel in, both toward
// the client and from the LLM. answer_key carries pairs for match and a
// card→bucket map for bucket, so it stays raw until the type is known.
type questionWire struct {
	Type           Archetype       `json:"type"`
	QuestionText   string          `json:"question_text"`
	Explanation    string          `json:"short_explanation"`
	Concept        string          `json:"concept"`
	OptionsLeft    []Item          `json:"options_left,omitempty"`
	OptionsRight   []Item          `json:"options_right,omitempty"`
	AnswerKey      json.RawMessage `json:"answer_key,omitempty"`
	Cards          []Item          `json:"cards,omitempty"`
	Buckets        []Item          `json:"buckets,omitempty"`
	Options        []Item          `json:"options,omitempty"`
	CorrectOptions []string        `json:"correct_options,omitempty"`
	Statement      string          `json:"statement,omitempty"`
	CorrectAnswer  *bool           `json:"correct_answer,omitempty"`
	Scenario       string          `json:"scenario,omitempty"`
	KeyPoints      []string        `json:"key_points,omitempty"`
	ExpectedLength string          `json:"expected_length,omitempty"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	w := questionWire{
		Type:         q.Archetype,
		QuestionText: q.Prompt,
		Explanation:  q.Explanation,
		Concept:      q.ConceptID,
	}

	switch q.Archetype {
	case ArchetypeMatch:
		if q.Match == nil {
			return nil, fmt.Errorf("match question missing payload")
		}
		w.OptionsLeft = q.Match.Left
		w.OptionsRight = q.Match.Right
		key, err := json.Marshal(q.Match.Pairs)
		if err != nil {
			return nil, err
		}
		w.AnswerKey = key
	case ArchetypeBucket:
		if q.Bucket == nil {
			return nil, fmt.Errorf("bucket question missing payload")
		}
		w.Cards = q.Bucket.Cards
		w.Buckets = q.Bucket.Buckets
		key, err := json.Marshal(q.Bucket.Assignment)
		if err != nil {
			return nil, err
		}
		w.AnswerKey = key
	case ArchetypeSingleSelect:
		if q.SingleSelect == nil {
			return nil, fmt.Errorf("single_select question missing payload")
		}
		w.Options = q.SingleSelect.Options
		w.CorrectOptions = q.SingleSelect.CorrectIDs
	case ArchetypeTrueFalse:
		if q.TrueFalse == nil {
			return nil, fmt.Errorf("true_false question missing payload")
		}
		w.Statement = q.TrueFalse.Statement
		answer := q.TrueFalse.Answer
		w.CorrectAnswer = &answer
	case ArchetypeFreeText:
		if q.FreeText == nil {
			return nil, fmt.Errorf("free_text question missing payload")
		}
		w.Scenario = q.FreeText.Scenario
		w.KeyPoints = q.FreeText.KeyPoints
		w.ExpectedLength = q.FreeText.ExpectedLength
	default:
		return nil, fmt.Errorf("unknown archetype %q", q.Archetype)
	}

	return json.Marshal(w)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	q.Archetype = w.Type
	q.Prompt = w.QuestionText
	q.Explanation = w.Explanation
	q.ConceptID = w.Concept
	q.Match = nil
	q.Bucket = nil
	q.SingleSelect = nil
	q.TrueFalse = nil
	q.FreeText = nil

	switch w.Type {
	case ArchetypeMatch:
		var pairs []Pair
		if len(w.AnswerKey) > 0 {
			if err := json.Unmarshal(w.AnswerKey, &pairs); err != nil {
				return fmt.Errorf("match answer_key: %w", err)
			}
		}
		q.Match = &MatchPayload{Left: w.OptionsLeft, Right: w.OptionsRight, Pairs: pairs}
	case ArchetypeBucket:
		var assignment map[string]string
		if len(w.AnswerKey) > 0 {
			if err := json.Unmarshal(w.AnswerKey, &assignment); err != nil {
				return fmt.Errorf("bucket answer_key: %w", err)
			}
		}
		q.Bucket = &BucketPayload{Cards: w.Cards, Buckets: w.Buckets, Assignment: assignment}
	case ArchetypeSingleSelect:
		q.SingleSelect = &SingleSelectPayload{Options: w.Options, CorrectIDs: w.CorrectOptions}
	case ArchetypeTrueFalse:
		var answer bool
		if w.CorrectAnswer != nil {
			answer = *w.CorrectAnswer
		}
		q.TrueFalse = &TrueFalsePayload{Statement: w.Statement, Answer: answer}
	case ArchetypeFreeText:
		q.FreeText = &FreeTextPayload{Scenario: w.Scenario, KeyPoints: w.KeyPoints, ExpectedLength: w.ExpectedLength}
	default:
		return fmt.Errorf("unknown archetype %q", w.Type)
	}

	return nil
}
