package questiongen

import (
	"fmt"

	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/quiz"
)

func idTextItems() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "string"},
				"text": map[string]any{"type": "string"},
			},
			"required":             []any{"id", "text"},
			"additionalProperties": false,
		},
	}
}

func baseProperties(archetype quiz.Archetype) map[string]any {
	return map[string]any{
		"type":              map[string]any{"type": "string", "enum": []any{string(archetype)}},
		"question_text":     map[string]any{"type": "string"},
		"short_explanation": map[string]any{"type": "string"},
		"concept":           map[string]any{"type": "string"},
	}
}

// schemaFor returns the response schema the LLM must produce for a given
// archetype. Field names mirror the question wire format exactly so the
// validated response unmarshals straight into a quiz.Question.
func schemaFor(archetype quiz.Archetype) (*llm.Schema, error) {
	props := baseProperties(archetype)
	required := []any{"type", "question_text", "short_explanation", "concept"}

	switch archetype {
	case quiz.ArchetypeMatch:
		props["options_left"] = idTextItems()
		props["options_right"] = idTextItems()
		props["answer_key"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
				"maxItems": 2,
			},
		}
		required = append(required, "options_left", "options_right", "answer_key")
	case quiz.ArchetypeBucket:
		props["cards"] = idTextItems()
		props["buckets"] = idTextItems()
		props["answer_key"] = map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		}
		required = append(required, "cards", "buckets", "answer_key")
	case quiz.ArchetypeSingleSelect:
		props["options"] = idTextItems()
		props["correct_options"] = map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 1,
		}
		required = append(required, "options", "correct_options")
	case quiz.ArchetypeTrueFalse:
		props["statement"] = map[string]any{"type": "string"}
		props["correct_answer"] = map[string]any{"type": "boolean"}
		required = append(required, "statement", "correct_answer")
	case quiz.ArchetypeFreeText:
		props["scenario"] = map[string]any{"type": "string"}
		props["key_points"] = map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 2,
			"maxItems": 4,
		}
		props["expected_length"] = map[string]any{"type": "string"}
		required = append(required, "scenario", "key_points")
	default:
		return nil, fmt.Errorf("no schema for archetype %q", archetype)
	}

	return &llm.Schema{
		Name:        "quiz-question-" + string(archetype),
		Description: "A generated AI-literacy quiz question",
		Definition: map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	}, nil
}
