// Package resources holds the curated learning-resource library attached
// to the final summary. Entries are hand-picked so every URL in a report
// is real; LLM-proposed links never reach the user.
package resources

// Resource is one recommended learning material.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Kind        string `json:"type"` // article, blog, video or course
	Description string `json:"description"`
}

const (
	KindArticle = "article"
	KindBlog    = "blog"
	KindVideo   = "video"
	KindCourse  = "course"
)

// maxResources caps how many recommendations a summary carries.
const maxResources = 3

// library maps concept ids to curated materials, strongest match first.
var library = map[string][]Resource{
	"llm-basics": {
		{
			Title:       "What Is ChatGPT Doing … and Why Does It Work?",
			URL:         "https://writings.stephenwolfram.com/2023/02/what-is-chatgpt-doing-and-why-does-it-work/",
			Kind:        KindArticle,
			Description: "A long-form walkthrough of next-token prediction and why it produces fluent text.",
		},
		{
			Title:       "Intro to Large Language Models",
			URL:         "https://www.youtube.com/watch?v=zjkBMFhNj_g",
			Kind:        KindVideo,
			Description: "Andrej Karpathy's one-hour general-audience talk on how LLMs are built and used.",
		},
	},
	"llm-applications": {
		{
			Title:       "Building LLM applications for production",
			URL:         "https://huyenchip.com/2023/04/11/llm-engineering.html",
			Kind:        KindBlog,
			Description: "Chip Huyen on where LLMs fit real products and where they fall over.",
		},
	},
	"prompting": {
		{
			Title:       "Prompt Engineering Guide",
			URL:         "https://www.promptingguide.ai/",
			Kind:        KindCourse,
			Description: "A structured reference covering prompting techniques from basics to tool use.",
		},
		{
			Title:       "Prompt engineering overview",
			URL:         "https://platform.openai.com/docs/guides/prompt-engineering",
			Kind:        KindArticle,
			Description: "Practical strategies for writing prompts that get reliable results.",
		},
	},
	"deep-learning": {
		{
			Title:       "Neural Networks: Zero to Hero",
			URL:         "https://karpathy.ai/zero-to-hero.html",
			Kind:        KindCourse,
			Description: "Builds neural networks from scratch in code, up to a small GPT.",
		},
		{
			Title:       "But what is a neural network?",
			URL:         "https://www.youtube.com/watch?v=aircAruvnKk",
			Kind:        KindVideo,
			Description: "3Blue1Brown's visual introduction to how neural networks learn.",
		},
	},
	"machine-learning": {
		{
			Title:       "Machine Learning Crash Course",
			URL:         "https://developers.google.com/machine-learning/crash-course",
			Kind:        KindCourse,
			Description: "Google's free hands-on introduction to core machine learning ideas.",
		},
	},
	"ai-ml-dl-relation": {
		{
			Title:       "AI vs. Machine Learning vs. Deep Learning: What's the Difference?",
			URL:         "https://www.ibm.com/think/topics/ai-vs-machine-learning-vs-deep-learning-vs-neural-networks",
			Kind:        KindArticle,
			Description: "Untangles the nested relationship between AI, ML and deep learning.",
		},
	},
	"rag": {
		{
			Title:       "What is retrieval-augmented generation?",
			URL:         "https://research.ibm.com/blog/retrieval-augmented-generation-RAG",
			Kind:        KindBlog,
			Description: "Why grounding a model in retrieved documents reduces made-up answers.",
		},
	},
	"embeddings": {
		{
			Title:       "What are embeddings?",
			URL:         "https://vickiboykis.com/what_are_embeddings/",
			Kind:        KindArticle,
			Description: "A deep but approachable explanation of vector representations of meaning.",
		},
	},
	"transformers": {
		{
			Title:       "The Illustrated Transformer",
			URL:         "https://jalammar.github.io/illustrated-transformer/",
			Kind:        KindArticle,
			Description: "The classic visual guide to attention and the transformer architecture.",
		},
	},
	"context-window": {
		{
			Title:       "Context windows",
			URL:         "https://www.anthropic.com/news/100k-context-windows",
			Kind:        KindBlog,
			Description: "What a context window is and what longer ones make possible.",
		},
	},
	"fine-tuning": {
		{
			Title:       "When to fine-tune an LLM",
			URL:         "https://platform.openai.com/docs/guides/fine-tuning",
			Kind:        KindArticle,
			Description: "When fine-tuning helps, when prompting or retrieval is the better tool.",
		},
	},
	"hallucination": {
		{
			Title:       "Why language models hallucinate",
			URL:         "https://openai.com/index/why-language-models-hallucinate/",
			Kind:        KindArticle,
			Description: "Why models produce confident falsehoods and how training shapes that.",
		},
	},
	"capability-boundary": {
		{
			Title:       "GPTs are GPTs: An early look at the labor market impact potential of large language models",
			URL:         "https://arxiv.org/abs/2303.10130",
			Kind:        KindArticle,
			Description: "Evidence on which tasks current models can and cannot take over.",
		},
	},
	"responsible-ai": {
		{
			Title:       "Elements of AI: Ethics",
			URL:         "https://ethics-of-ai.mooc.fi/",
			Kind:        KindCourse,
			Description: "A free university course on the ethical questions AI systems raise.",
		},
	},
	"output-evaluation": {
		{
			Title:       "How to verify AI-generated content",
			URL:         "https://guides.library.cornell.edu/evaluate_ai",
			Kind:        KindArticle,
			Description: "A librarian's checklist for fact-checking model output before trusting it.",
		},
	},
}

// general is the fallback when no weak concept has curated material.
var general = []Resource{
	{
		Title:       "Elements of AI",
		URL:         "https://www.elementsofai.com/",
		Kind:        KindCourse,
		Description: "A free, widely used introduction to what AI is and what it can do.",
	},
	{
		Title:       "Intro to Large Language Models",
		URL:         "https://www.youtube.com/watch?v=zjkBMFhNj_g",
		Kind:        KindVideo,
		Description: "Andrej Karpathy's one-hour general-audience talk on how LLMs are built and used.",
	},
	{
		Title:       "The Illustrated Transformer",
		URL:         "https://jalammar.github.io/illustrated-transformer/",
		Kind:        KindArticle,
		Description: "The classic visual guide to attention and the transformer architecture.",
	},
}

// ForConcepts picks up to three resources targeting the given concepts,
// weakest first. Duplicate URLs across concepts are collapsed and any
// remaining slots are filled from the general list. An empty concept
// list returns nothing.
func ForConcepts(conceptIDs []string) []Resource {
	if len(conceptIDs) == 0 {
		return nil
	}

	var out []Resource
	seen := make(map[string]bool)

	add := func(r Resource) bool {
		if seen[r.URL] {
			return false
		}
		seen[r.URL] = true
		out = append(out, r)
		return len(out) >= maxResources
	}

	// One resource per weak concept first, then second picks.
	for round := 0; round < 2; round++ {
		for _, id := range conceptIDs {
			pool := library[id]
			if round < len(pool) && add(pool[round]) {
				return out
			}
		}
	}
	for _, r := range general {
		if len(out) >= maxResources {
			break
		}
		add(r)
	}
	return out
}
