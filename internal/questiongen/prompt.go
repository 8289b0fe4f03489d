package questiongen

import (
	"fmt"
	"strings"

	"github.com/anshul/litmus/internal/concepts"
	"github.com/anshul/litmus/internal/quiz"
)

const generationSystemPrompt = `You are an AI literacy education expert writing assessment questions for a general audience.
Rules:
1. Each question tests exactly one core concept.
2. Target common misconceptions (e.g. "an LLM is a search engine", "AI can fully replace human judgment").
3. Keep wording concrete and scenario-driven; avoid academic jargon unless the audience tier calls for it.
4. The answer key must be unambiguous.
Respond with a single JSON object matching the requested shape and nothing else.`

// archetypeInstructions describe the shape and intent of each archetype
// in the generation prompt.
var archetypeInstructions = map[quiz.Archetype]string{
	quiz.ArchetypeMatch:        "Write a matching question: 3-4 left items and the same number of right items, with answer_key as an array of [left_id, right_id] pairs where every left id appears exactly once.",
	quiz.ArchetypeBucket:       "Write a sorting question: 3-4 cards and 2-3 buckets, with answer_key mapping every card id to its correct bucket id.",
	quiz.ArchetypeSingleSelect: "Write a multiple-choice question with 3-4 options and correct_options listing the id(s) of the correct one(s). Distractors should reflect plausible misconceptions.",
	quiz.ArchetypeTrueFalse:    "Write a judgment question: a single statement embodying a common misconception or a true principle, with correct_answer set to whether the statement is true.",
	quiz.ArchetypeFreeText:     "Write a short-answer question: a concrete real-world scenario the user must respond to, with 2-4 key_points a good answer should cover and an expected_length hint like \"50-100 words\".",
}

// roleFraming maps the user's role to a scenario domain for question
// contexts, keeping generated scenarios relatable.
func roleFraming(role string) string {
	switch role {
	case quiz.RoleStudent:
		return "Frame scenarios around studying, coursework, and campus life (e.g. using AI to prepare for an exam or summarize readings)."
	case quiz.RoleProfessional:
		return "Frame scenarios around workplace tasks: reports, client communication, project management (e.g. \"You're a product manager who needs to...\")."
	case quiz.RoleEducator:
		return "Frame scenarios around teaching: lesson planning, grading support, guiding students' AI use."
	case quiz.RoleResearcher:
		return "Frame scenarios around research workflows: literature review, data analysis, manuscript drafting."
	case quiz.RoleEntrepreneur:
		return "Frame scenarios around running a small business: marketing copy, customer support, product decisions."
	default:
		return "Frame scenarios around everyday life: planning, writing, and finding information."
	}
}

// complexityFraming maps the 1-5 self rating to a vocabulary and
// reasoning tier.
func complexityFraming(selfRating int) string {
	switch {
	case selfRating <= 1:
		return "Audience tier: complete beginner. Use very simple language and explain fundamental terms explicitly."
	case selfRating == 2:
		return "Audience tier: novice. Use plain language with light technical vocabulary."
	case selfRating == 3:
		return "Audience tier: intermediate. Use balanced technical language and real-world application scenarios."
	case selfRating == 4:
		return "Audience tier: advanced. Expect the learner to compare alternatives and reason across AI components."
	default:
		return "Audience tier: expert. Encourage deep analysis referencing architectural, ethical, or scaling considerations."
	}
}

// buildGenerationPrompt assembles the user message for one question.
func buildGenerationPrompt(concept concepts.Concept, archetype quiz.Archetype, identity quiz.Identity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a %s question testing the concept %q.\n", archetype, concept.ID)
	fmt.Fprintf(&b, "Concept description: %s\n\n", concept.Description)
	b.WriteString(archetypeInstructions[archetype])
	b.WriteString("\n\n")
	b.WriteString(roleFraming(identity.Role))
	b.WriteString("\n")
	b.WriteString(complexityFraming(identity.ClampedSelfRating()))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Set the \"concept\" field to %q and the \"type\" field to %q.", concept.ID, archetype)

	return b.String()
}
