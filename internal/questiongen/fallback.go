package questiongen

import "github.com/anshul/litmus/internal/quiz"

// FallbackBank is a small static pool of pre-authored questions per
// archetype, used when the LLM provider is rate limited or out of quota.
// Selection is questionIndex mod pool size, and every question handed out
// is a deep copy with the archetype pinned to what the caller asked for.
type FallbackBank struct {
	pools map[quiz.Archetype][]*quiz.Question
}

// NewFallbackBank builds the bank with its built-in question pools.
func NewFallbackBank() *FallbackBank {
	return &FallbackBank{pools: buildPools()}
}

// Question returns the pool entry for (archetype, index mod pool size).
// If the archetype has no pool of its own, content is borrowed from
// another pool but the archetype field still reflects the request.
func (b *FallbackBank) Question(archetype quiz.Archetype, index int) *quiz.Question {
	pool := b.pools[archetype]
	if len(pool) == 0 {
		for _, a := range quiz.AllArchetypes {
			if len(b.pools[a]) > 0 {
				pool = b.pools[a]
				break
			}
		}
	}
	if len(pool) == 0 {
		return nil
	}

	if index < 0 {
		index = 0
	}
	q := pool[index%len(pool)].Clone()
	q.Archetype = archetype
	return q
}

func buildPools() map[quiz.Archetype][]*quiz.Question {
	return map[quiz.Archetype][]*quiz.Question{
		quiz.ArchetypeMatch: {
			{
				Archetype:   quiz.ArchetypeMatch,
				Prompt:      "Match each AI term to its description.",
				Explanation: "These four terms are the vocabulary most discussions of AI assume.",
				ConceptID:   "llm-basics",
				Match: &quiz.MatchPayload{
					Left: []quiz.Item{
						{ID: "l1", Text: "LLM"},
						{ID: "l2", Text: "Prompt"},
						{ID: "l3", Text: "Token"},
					},
					Right: []quiz.Item{
						{ID: "r1", Text: "A model trained to predict the next word over huge text corpora"},
						{ID: "r2", Text: "The instruction or context you give the model"},
						{ID: "r3", Text: "A small unit of text the model reads and writes"},
					},
					Pairs: []quiz.Pair{
						{Left: "l1", Right: "r1"},
						{Left: "l2", Right: "r2"},
						{Left: "l3", Right: "r3"},
					},
				},
			},
			{
				Archetype:   quiz.ArchetypeMatch,
				Prompt:      "Match each layer of the AI field to what it covers.",
				Explanation: "AI ⊃ machine learning ⊃ deep learning; neural networks are the mechanism deep learning uses.",
				ConceptID:   "ai-ml-dl-relation",
				Match: &quiz.MatchPayload{
					Left: []quiz.Item{
						{ID: "l1", Text: "Artificial intelligence"},
						{ID: "l2", Text: "Machine learning"},
						{ID: "l3", Text: "Deep learning"},
					},
					Right: []quiz.Item{
						{ID: "r1", Text: "The broad goal of making machines behave intelligently"},
						{ID: "r2", Text: "Systems that improve from data instead of hand-written rules"},
						{ID: "r3", Text: "Learning with many-layered neural networks"},
					},
					Pairs: []quiz.Pair{
						{Left: "l1", Right: "r1"},
						{Left: "l2", Right: "r2"},
						{Left: "l3", Right: "r3"},
					},
				},
			},
		},
		quiz.ArchetypeBucket: {
			{
				Archetype:   quiz.ArchetypeBucket,
				Prompt:      "Sort each task by whether today's AI handles it reliably on its own.",
				Explanation: "Generation and summarization are strengths; factual verification and high-stakes judgment still need a human.",
				ConceptID:   "capability-boundary",
				Bucket: &quiz.BucketPayload{
					Cards: []quiz.Item{
						{ID: "c1", Text: "Draft a first version of an email"},
						{ID: "c2", Text: "Verify a legal citation is real"},
						{ID: "c3", Text: "Summarize a long report"},
						{ID: "c4", Text: "Decide whether to approve a loan"},
					},
					Buckets: []quiz.Item{
						{ID: "ai", Text: "AI handles well"},
						{ID: "human", Text: "Needs human verification or judgment"},
					},
					Assignment: map[string]string{
						"c1": "ai",
						"c2": "human",
						"c3": "ai",
						"c4": "human",
					},
				},
			},
			{
				Archetype:   quiz.ArchetypeBucket,
				Prompt:      "Sort each practice into safe or risky use of a public AI chatbot at work.",
				Explanation: "Anything confidential pasted into a public tool may leave your control.",
				ConceptID:   "responsible-ai",
				Bucket: &quiz.BucketPayload{
					Cards: []quiz.Item{
						{ID: "c1", Text: "Pasting a customer's personal data into the chat"},
						{ID: "c2", Text: "Asking it to rephrase a public blog post"},
						{ID: "c3", Text: "Sharing unreleased financial figures to get a summary"},
					},
					Buckets: []quiz.Item{
						{ID: "safe", Text: "Safe"},
						{ID: "risky", Text: "Risky"},
					},
					Assignment: map[string]string{
						"c1": "risky",
						"c2": "safe",
						"c3": "risky",
					},
				},
			},
		},
		quiz.ArchetypeSingleSelect: {
			{
				Archetype:   quiz.ArchetypeSingleSelect,
				Prompt:      "An AI chatbot gives you a confident, detailed answer with a source you can't find anywhere. What is the most likely explanation?",
				Explanation: "Models generate plausible text; they do not look facts up unless connected to a retrieval tool.",
				ConceptID:   "hallucination",
				SingleSelect: &quiz.SingleSelectPayload{
					Options: []quiz.Item{
						{ID: "a", Text: "The source is behind a paywall, so it must exist"},
						{ID: "b", Text: "The model fabricated a plausible-sounding source"},
						{ID: "c", Text: "The model searched the web and found an obscure source"},
					},
					CorrectIDs: []string{"b"},
				},
			},
			{
				Archetype:   quiz.ArchetypeSingleSelect,
				Prompt:      "What does a large language model fundamentally do when it answers you?",
				Explanation: "Everything an LLM produces comes from predicting likely next tokens given the context.",
				ConceptID:   "llm-basics",
				SingleSelect: &quiz.SingleSelectPayload{
					Options: []quiz.Item{
						{ID: "a", Text: "Looks your question up in a database of facts"},
						{ID: "b", Text: "Predicts the most likely next words given your prompt"},
						{ID: "c", Text: "Reasons about the world the way a person does"},
					},
					CorrectIDs: []string{"b"},
				},
			},
		},
		quiz.ArchetypeTrueFalse: {
			{
				Archetype:   quiz.ArchetypeTrueFalse,
				Prompt:      "Judge the statement.",
				Explanation: "A model's knowledge is frozen at training time; it does not learn from your chats.",
				ConceptID:   "llm-basics",
				TrueFalse: &quiz.TrueFalsePayload{
					Statement: "A language model keeps learning new facts from every conversation it has.",
					Answer:    false,
				},
			},
			{
				Archetype:   quiz.ArchetypeTrueFalse,
				Prompt:      "Judge the statement.",
				Explanation: "Retrieval-augmented generation fetches relevant documents first, then generates from them.",
				ConceptID:   "rag",
				TrueFalse: &quiz.TrueFalsePayload{
					Statement: "RAG systems retrieve relevant documents and let the model generate its answer from them.",
					Answer:    true,
				},
			},
		},
		quiz.ArchetypeFreeText: {
			{
				Archetype:   quiz.ArchetypeFreeText,
				Prompt:      "Respond to the scenario in your own words.",
				Explanation: "Verification against primary sources is the core habit for AI-assisted work.",
				ConceptID:   "hallucination",
				FreeText: &quiz.FreeTextPayload{
					Scenario:       "A colleague used a chatbot to write a report and it cites a study neither of you can find. They say: \"the AI found it, it must exist somewhere.\" How do you respond, and what would you do before the report goes out?",
					KeyPoints:      []string{"models can fabricate plausible citations", "verify claims against primary sources before publishing"},
					ExpectedLength: "50-100 words",
				},
			},
			{
				Archetype:   quiz.ArchetypeFreeText,
				Prompt:      "Respond to the scenario in your own words.",
				Explanation: "Good prompts give the model role, context, and constraints instead of vague requests.",
				ConceptID:   "prompting",
				FreeText: &quiz.FreeTextPayload{
					Scenario:       "You ask an AI assistant to \"write something about our product\" and get generic, unusable text. What would you change about your request to get a useful draft?",
					KeyPoints:      []string{"provide context and audience", "state the format and constraints explicitly", "iterate on the output"},
					ExpectedLength: "50-100 words",
				},
			},
		},
	}
}
