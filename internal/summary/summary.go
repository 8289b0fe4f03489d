// Package summary builds the final report for a completed session: an
// LLM-written narrative over the user's actual answers, the mastery
// radar, and curated learning resources. There is no canned fallback
// report; if the narrative cannot be produced the request fails.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/mastery"
	"github.com/anshul/litmus/internal/quiz"
	"github.com/anshul/litmus/internal/resources"
)

const (
	summaryMaxTokens = 4096

	// minAnalysisLength guards against the model returning a stub
	// paragraph where the detailed analysis should be.
	minAnalysisLength = 50
)

// ErrIncomplete reports that the model's narrative was missing required
// sections. Callers surface this instead of fabricating a report.
var ErrIncomplete = errors.New("summary narrative incomplete")

// ErrNoResults reports a summary request before any answer was recorded.
var ErrNoResults = errors.New("no answers to summarize")

// RadarData is the category breakdown rendered as a radar chart.
type RadarData struct {
	Categories []string `json:"categories"`
	Scores     []int    `json:"scores"`
}

// Summary is the complete report returned to the client.
type Summary struct {
	Overall           string               `json:"overall"`
	Highlights        []string             `json:"highlights"`
	Blindspots        []string             `json:"blindspots"`
	Suggestions       []string             `json:"suggestions"`
	LearningResources []resources.Resource `json:"learningResources"`
	DetailedAnalysis  string               `json:"detailedAnalysis"`
	RadarData         RadarData            `json:"radarData"`
	SelfRating        int                  `json:"selfRating"`
	SystemLevel       int                  `json:"systemLevel"`
}

// Builder assembles summaries from session results.
type Builder struct {
	provider llm.Provider
	mastery  *mastery.Service
	log      *zap.SugaredLogger
}

// NewBuilder creates a Builder.
func NewBuilder(provider llm.Provider, masterySvc *mastery.Service, log *zap.SugaredLogger) *Builder {
	return &Builder{provider: provider, mastery: masterySvc, log: log}
}

var summarySchema = &llm.Schema{
	Name:        "session-summary",
	Description: "Narrative assessment of a completed AI literacy quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall":     map[string]any{"type": "string", "minLength": 1},
			"highlights":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"blindspots":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"suggestions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"detailedAnalysis": map[string]any{
				"type": "string",
			},
			"radarData": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"categories": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"scores":     map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
				},
			},
		},
		"required": []any{"overall", "highlights", "blindspots", "suggestions", "detailedAnalysis"},
	},
}

// narrative is the LLM-authored portion of the summary.
type narrative struct {
	Overall          string     `json:"overall"`
	Highlights       []string   `json:"highlights"`
	Blindspots       []string   `json:"blindspots"`
	Suggestions      []string   `json:"suggestions"`
	DetailedAnalysis string     `json:"detailedAnalysis"`
	RadarData        *RadarData `json:"radarData"`
}

// Build produces the report. The mastery profile is computed first so
// its category scores can ground the prompt and backstop the radar.
func (b *Builder) Build(ctx context.Context, identity quiz.Identity, questions []*quiz.Question, results []quiz.Result) (*Summary, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	profile := b.mastery.Profile(ctx, questions, results, identity.ClampedSelfRating())

	nar, err := b.generateNarrative(ctx, identity, questions, results, profile)
	if err != nil {
		return nil, err
	}
	if err := validateNarrative(nar); err != nil {
		return nil, err
	}

	radar := RadarData{Categories: profile.Categories, Scores: profile.CategoryScores}
	if nar.RadarData != nil && radarValid(*nar.RadarData) {
		radar = *nar.RadarData
	}

	return &Summary{
		Overall:           nar.Overall,
		Highlights:        nar.Highlights,
		Blindspots:        nar.Blindspots,
		Suggestions:       nar.Suggestions,
		LearningResources: resources.ForConcepts(weakConcepts(results, profile)),
		DetailedAnalysis:  nar.DetailedAnalysis,
		RadarData:         radar,
		SelfRating:        profile.SelfRating,
		SystemLevel:       profile.OverallLevel,
	}, nil
}

func (b *Builder) generateNarrative(ctx context.Context, identity quiz.Identity, questions []*quiz.Question, results []quiz.Result, profile mastery.Profile) (*narrative, error) {
	req := llm.Request{
		System: "You are an AI literacy education expert writing a personalized assessment report.",
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSummaryPrompt(identity, questions, results, profile)},
		},
		Schema:      summarySchema,
		MaxTokens:   summaryMaxTokens,
		Temperature: 0.7,
	}
	ctx = llm.WithPurpose(ctx, "summary")

	resp, err := b.generate(ctx, req)

	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		b.log.Warnw("summary truncated, retrying with larger budget")
		req.MaxTokens *= 2
		resp, err = b.generate(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	var nar narrative
	if err := json.Unmarshal(resp.Content, &nar); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	return &nar, nil
}

// generate prefers a grounded call when the underlying provider supports
// search grounding. Citations are logged for audit; recommended links
// always come from the curated library, never from search results.
func (b *Builder) generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if llm.SupportsGrounding(b.provider) {
		gp, ok := b.provider.(llm.GroundedProvider)
		if ok {
			grounded, err := gp.GenerateWithGrounding(ctx, req)
			if err != nil {
				return nil, err
			}
			if len(grounded.Citations) > 0 {
				b.log.Debugw("summary grounded in search results", "citations", len(grounded.Citations))
			}
			return &grounded.Response, nil
		}
	}
	return b.provider.Generate(ctx, req)
}

func buildSummaryPrompt(identity quiz.Identity, questions []*quiz.Question, results []quiz.Result, profile mastery.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %s (age %d, self-rated AI familiarity %d/5) just completed an AI literacy quiz.\n",
		identity.Role, identity.Age, profile.SelfRating)
	fmt.Fprintf(&b, "Our scoring places them at level %d of 5 overall.\n\n", profile.OverallLevel)

	b.WriteString("Per-concept scores (0-100):\n")
	for i, c := range profile.Categories {
		fmt.Fprintf(&b, "- %s: %d\n", c, profile.CategoryScores[i])
	}

	b.WriteString("\nTheir answers:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. [%s, %s] judged %s\n", i+1, r.ConceptID, r.Archetype, r.Verdict)
		if i < len(questions) && questions[i] != nil {
			fmt.Fprintf(&b, "   Question: %s\n", questions[i].Prompt)
		}
		fmt.Fprintf(&b, "   Their answer: %s\n", r.UserAnswer)
	}

	b.WriteString(`
Write the assessment report:
- overall: 2-3 sentences summarizing their AI literacy, referencing their role.
- highlights: 2-4 specific strengths, each citing something they actually answered well.
- blindspots: 2-4 specific gaps, each citing a question they missed and what it reveals.
- suggestions: 2-4 concrete next steps matched to their level and role.
- detailedAnalysis: one substantial paragraph tying it together, including how their self-rating compares to their performance.
- radarData: optional refined 0-100 scores for the concept categories listed above.
Address the user as "you". Be specific to their answers, never generic.`)
	return b.String()
}

func validateNarrative(n *narrative) error {
	switch {
	case strings.TrimSpace(n.Overall) == "":
		return fmt.Errorf("%w: missing overall", ErrIncomplete)
	case len(n.Highlights) == 0:
		return fmt.Errorf("%w: missing highlights", ErrIncomplete)
	case len(n.Blindspots) == 0:
		return fmt.Errorf("%w: missing blindspots", ErrIncomplete)
	case len(n.Suggestions) == 0:
		return fmt.Errorf("%w: missing suggestions", ErrIncomplete)
	case utf8.RuneCountInString(strings.TrimSpace(n.DetailedAnalysis)) < minAnalysisLength:
		return fmt.Errorf("%w: detailed analysis too short", ErrIncomplete)
	}
	return nil
}

func radarValid(r RadarData) bool {
	if len(r.Categories) == 0 || len(r.Categories) != len(r.Scores) {
		return false
	}
	for _, s := range r.Scores {
		if s < 0 || s > 100 {
			return false
		}
	}
	return true
}

// weakConcepts lists the concepts holding at least one incorrect or
// partial verdict, weakest category score first. An all-correct session
// has no weak set and gets no remedial resources.
func weakConcepts(results []quiz.Result, p mastery.Profile) []string {
	scores := make(map[string]int, len(p.Categories))
	for i, c := range p.Categories {
		scores[c] = p.CategoryScores[i]
	}

	var weak []string
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Verdict == quiz.VerdictCorrect || seen[r.ConceptID] {
			continue
		}
		seen[r.ConceptID] = true
		weak = append(weak, r.ConceptID)
	}
	sort.SliceStable(weak, func(i, j int) bool { return scores[weak[i]] < scores[weak[j]] })
	return weak
}
