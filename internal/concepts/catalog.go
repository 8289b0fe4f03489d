// Package concepts holds the static registry of assessable AI-literacy
// concepts. Each concept is tagged with the question archetypes that can
// express it; the question generator filters on those tags when pairing a
// concept with the scheduled archetype.
package concepts

import "github.com/anshul/litmus/internal/quiz"

// Concept is one assessable knowledge unit. Loaded once, immutable.
type Concept struct {
	ID          string
	Archetypes  []quiz.Archetype
	Description string
}

// Supports reports whether the concept can be expressed as the given
// archetype.
func (c Concept) Supports(a quiz.Archetype) bool {
	for _, t := range c.Archetypes {
		if t == a {
			return true
		}
	}
	return false
}

var catalog = []Concept{
	{
		ID:          "llm-basics",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse, quiz.ArchetypeFreeText},
		Description: "What a large language model is: next-word prediction, how it is structured, how it is trained, and where it is applied.",
	},
	{
		ID:          "llm-applications",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeBucket, quiz.ArchetypeSingleSelect},
		Description: "Which tasks LLMs handle well versus tasks that need human judgment or other tools.",
	},
	{
		ID:          "prompting",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeTrueFalse, quiz.ArchetypeSingleSelect, quiz.ArchetypeFreeText},
		Description: "How to construct effective prompts, common prompt patterns, and misconceptions like 'more mystical prompts work better'.",
	},
	{
		ID:          "deep-learning",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse},
		Description: "Introductory deep learning: what a neural network is, layers, activations, and the training loop.",
	},
	{
		ID:          "machine-learning",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse},
		Description: "Supervised versus unsupervised learning, labeled data, and how machine learning relates to deep learning.",
	},
	{
		ID:          "ai-ml-dl-relation",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeBucket},
		Description: "The nesting of AI, machine learning, deep learning, and neural networks, and how the terms differ.",
	},
	{
		ID:          "rag",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse},
		Description: "Retrieval-augmented generation: what it is, the retrieve-then-generate workflow, and when to use it.",
	},
	{
		ID:          "embeddings",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse},
		Description: "Embeddings as vectors, vector databases, and the basics of semantic search.",
	},
	{
		ID:          "transformers",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse},
		Description: "Self-attention and the role of the Transformer architecture inside modern LLMs.",
	},
	{
		ID:          "context-window",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse},
		Description: "The context window and tokenization: how text becomes tokens and how the window limits what the model can use.",
	},
	{
		ID:          "fine-tuning",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeMatch, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse},
		Description: "What fine-tuning is, why a base model gets fine-tuned, and the basic workflow.",
	},
	{
		ID:          "hallucination",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse, quiz.ArchetypeFreeText},
		Description: "Why models produce confident but false output and how to verify generated claims against primary sources.",
	},
	{
		ID:          "capability-boundary",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeBucket, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse, quiz.ArchetypeFreeText},
		Description: "Where AI capability ends: misconceptions like 'AI can fully replace human judgment' or 'models know everything'.",
	},
	{
		ID:          "responsible-ai",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeBucket, quiz.ArchetypeSingleSelect, quiz.ArchetypeTrueFalse, quiz.ArchetypeFreeText},
		Description: "Compliance, privacy, and safety when using generative AI, including workplace and classroom usage norms.",
	},
	{
		ID:          "output-evaluation",
		Archetypes:  []quiz.Archetype{quiz.ArchetypeBucket, quiz.ArchetypeSingleSelect, quiz.ArchetypeFreeText},
		Description: "Checking and evaluating model output quality before relying on it.",
	},
}

// All returns the full catalog. The returned slice must not be mutated.
func All() []Concept {
	return catalog
}

// Get looks up a concept by id.
func Get(id string) (Concept, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Concept{}, false
}

// Supporting returns the concepts that can be expressed as the given
// archetype.
func Supporting(a quiz.Archetype) []Concept {
	var out []Concept
	for _, c := range catalog {
		if c.Supports(a) {
			out = append(out, c)
		}
	}
	return out
}
