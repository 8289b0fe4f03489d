package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/anshul/litmus/internal/concepts"
	"github.com/anshul/litmus/internal/llm"
	"github.com/anshul/litmus/internal/quiz"
)

const (
	generationMaxTokens = 2048

	// truncationRetryFactor scales MaxTokens for the single retry after a
	// truncated response.
	truncationRetryFactor = 2
)

// Params identifies what to generate. Zero values mean "resolve for me":
// an empty Archetype is derived from the scheduler, a nil Concept is
// picked least-recently-used from the catalog.
type Params struct {
	SessionID string
	Index     int
	Total     int
	Identity  quiz.Identity

	Archetype quiz.Archetype
	Concept   *concepts.Concept
}

// Generator materializes questions via the LLM, tracking per-session
// concept usage so six questions in a row do not all land on the same
// concept. On rate limit it degrades to the fallback bank; on any other
// provider failure it fails hard.
type Generator struct {
	provider  llm.Provider
	scheduler *Scheduler
	bank      *FallbackBank
	log       *zap.SugaredLogger

	mu   sync.Mutex
	used map[string]map[string]bool // sessionID -> concept ids used
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, scheduler *Scheduler, bank *FallbackBank, log *zap.SugaredLogger) *Generator {
	return &Generator{
		provider:  provider,
		scheduler: scheduler,
		bank:      bank,
		log:       log,
		used:      make(map[string]map[string]bool),
	}
}

// Generate produces one validated question. Failures are *GenerationError
// or *MalformedError.
func (g *Generator) Generate(ctx context.Context, p Params) (*quiz.Question, error) {
	archetype := g.resolveArchetype(p)
	concept, err := g.resolveConcept(p, archetype)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	schema, err := schemaFor(archetype)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	req := llm.Request{
		System: generationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerationPrompt(concept, archetype, p.Identity)},
		},
		Schema:      schema,
		MaxTokens:   generationMaxTokens,
		Temperature: 0.7,
	}

	ctx = llm.WithPurpose(ctx, "question-generation")

	resp, err := g.provider.Generate(ctx, req)

	// One retry with a larger budget when the response was cut off.
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		g.log.Warnw("generation truncated, retrying with larger budget",
			"session", p.SessionID, "index", p.Index, "archetype", archetype)
		req.MaxTokens = generationMaxTokens * truncationRetryFactor
		resp, err = g.provider.Generate(ctx, req)
	}

	if err != nil {
		var rateLimited *llm.ErrRateLimit
		if errors.As(err, &rateLimited) {
			g.log.Warnw("provider rate limited, using fallback bank",
				"session", p.SessionID, "index", p.Index, "archetype", archetype)
			return g.bank.Question(archetype, p.Index), nil
		}
		return nil, &GenerationError{Err: err}
	}

	q, err := parseQuestion(resp.Content, archetype, concept.ID)
	if err != nil {
		g.log.Errorw("generated question failed validation",
			"session", p.SessionID, "index", p.Index, "archetype", archetype, "error", err)
		return nil, err
	}

	return q, nil
}

// Forget drops the used-concept record for a session.
func (g *Generator) Forget(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.used, sessionID)
}

func (g *Generator) resolveArchetype(p Params) quiz.Archetype {
	if p.Archetype.Valid() {
		return p.Archetype
	}
	if p.SessionID != "" && p.Total > 0 {
		return g.scheduler.ArchetypeFor(p.SessionID, p.Index, p.Total)
	}
	return quiz.AllArchetypes[rand.IntN(len(quiz.AllArchetypes))]
}

// resolveConcept picks an archetype-compatible concept, preferring ones
// this session has not used yet, and marks the pick as used.
func (g *Generator) resolveConcept(p Params, archetype quiz.Archetype) (concepts.Concept, error) {
	if p.Concept != nil {
		g.markUsed(p.SessionID, p.Concept.ID)
		return *p.Concept, nil
	}

	candidates := concepts.Supporting(archetype)
	if len(candidates) == 0 {
		return concepts.Concept{}, fmt.Errorf("no concepts support archetype %q", archetype)
	}

	g.mu.Lock()
	usedSet := g.used[p.SessionID]
	var fresh []concepts.Concept
	for _, c := range candidates {
		if !usedSet[c.ID] {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		fresh = candidates
	}
	pick := fresh[rand.IntN(len(fresh))]
	g.mu.Unlock()

	g.markUsed(p.SessionID, pick.ID)
	return pick, nil
}

func (g *Generator) markUsed(sessionID, conceptID string) {
	if sessionID == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	set, ok := g.used[sessionID]
	if !ok {
		set = make(map[string]bool)
		g.used[sessionID] = set
	}
	set[conceptID] = true
}

// parseQuestion decodes and validates LLM output, pinning the archetype
// and concept the pipeline asked for.
func parseQuestion(content json.RawMessage, archetype quiz.Archetype, conceptID string) (*quiz.Question, error) {
	var q quiz.Question
	if err := json.Unmarshal(content, &q); err != nil {
		return nil, &MalformedError{Content: content, Err: err}
	}

	if q.Archetype != archetype {
		return nil, &MalformedError{Content: content, Err: fmt.Errorf("asked for %q, got %q", archetype, q.Archetype)}
	}
	if q.ConceptID == "" {
		q.ConceptID = conceptID
	}

	if err := q.Validate(); err != nil {
		return nil, &MalformedError{Content: content, Err: err}
	}

	return &q, nil
}
