package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anshul/litmus/internal/feedback"
	"github.com/anshul/litmus/internal/questiongen"
	"github.com/anshul/litmus/internal/quiz"
	"github.com/anshul/litmus/internal/store"
)

// Generator is the slice of questiongen.Generator the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, p questiongen.Params) (*quiz.Question, error)
}

// Grader is the slice of feedback.Service the orchestrator needs.
type Grader interface {
	JudgedVerdict(ctx context.Context, q *quiz.Question, answerText string) (quiz.Verdict, error)
	Feedback(ctx context.Context, q *quiz.Question, verdict quiz.Verdict, userAnswer, correctAnswer json.RawMessage) (feedback.Feedback, error)
}

// Orchestrator drives a session through its lifecycle: generate, serve,
// evaluate, prefetch, complete. Every operation takes the session lock
// for its full duration, so concurrent requests against one session are
// serialized rather than racing on results.length.
type Orchestrator struct {
	store    *Store
	gen      Generator
	feedback Grader
	events   store.EventRepo
	log      *zap.SugaredLogger
	total    int
}

// NewOrchestrator wires the orchestrator.
func NewOrchestrator(st *Store, gen Generator, fb Grader, events store.EventRepo, log *zap.SugaredLogger, totalQuestions int) *Orchestrator {
	return &Orchestrator{
		store:    st,
		gen:      gen,
		feedback: fb,
		events:   events,
		log:      log,
		total:    totalQuestions,
	}
}

// TotalQuestions reports the configured session length.
func (o *Orchestrator) TotalQuestions() int { return o.total }

// Session exposes store lookup for the summary path.
func (o *Orchestrator) Session(id string) (*Session, error) {
	return o.store.Get(id)
}

// Start creates a session and synchronously generates its first question.
// If generation fails the session is torn down again: no half-usable
// session is left behind.
func (o *Orchestrator) Start(ctx context.Context, identity quiz.Identity) (*Session, *quiz.Question, error) {
	sess := o.store.Create(identity)

	q, err := o.gen.Generate(ctx, questiongen.Params{
		SessionID: sess.ID,
		Index:     0,
		Total:     o.total,
		Identity:  identity,
	})
	if err != nil {
		o.store.Remove(sess.ID)
		return nil, nil, fmt.Errorf("generate first question: %w", err)
	}

	sess.mu.Lock()
	sess.Questions = append(sess.Questions, q)
	sess.touch()
	o.armPrefetchLocked(sess)
	sess.mu.Unlock()

	if err := o.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: sess.ID,
		Kind:      store.SessionStarted,
		Detail:    fmt.Sprintf("role=%s selfRating=%d", identity.Role, identity.ClampedSelfRating()),
	}); err != nil {
		o.log.Warnw("failed to record session start", "session", sess.ID, "error", err)
	}

	o.log.Infow("session started", "session", sess.ID, "firstArchetype", q.Archetype)
	return sess, q, nil
}

// NextQuestion returns the question at index len(results). complete=true
// is the terminal signal once every question has been answered; it is not
// an error and repeated calls keep returning it without mutating state.
func (o *Orchestrator) NextQuestion(ctx context.Context, sessionID string) (q *quiz.Question, complete bool, err error) {
	sess, err := o.store.Get(sessionID)
	if err != nil {
		return nil, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	idx := len(sess.Results)
	if idx >= o.total {
		return nil, true, nil
	}

	// Idempotent re-fetch of the current unanswered question.
	if idx < len(sess.Questions) {
		return sess.Questions[idx], false, nil
	}

	if sess.prefetch != nil {
		q = sess.prefetch
		sess.prefetch = nil
		sess.Questions = append(sess.Questions, q)
		o.log.Debugw("served prefetched question", "session", sess.ID, "index", idx)
	} else {
		// Prefetch was not ready; generate inline.
		q, err = o.gen.Generate(ctx, questiongen.Params{
			SessionID: sess.ID,
			Index:     idx,
			Total:     o.total,
			Identity:  sess.Identity,
		})
		if err != nil {
			return nil, false, err
		}
		sess.Questions = append(sess.Questions, q)
		o.log.Debugw("generated question inline", "session", sess.ID, "index", idx)
	}

	o.armPrefetchLocked(sess)
	return q, false, nil
}

// SubmitAnswer evaluates the answer to the question at index len(results)
// and records the result. For free text the recorded verdict is the LLM
// judge's, not the quick heuristic. Nothing is recorded until the whole
// chain (judge, feedback) has succeeded, so a failed submission can be
// retried without desyncing the index bookkeeping.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, sessionID string, rawAnswer json.RawMessage) (quiz.Verdict, feedback.Feedback, bool, error) {
	sess, err := o.store.Get(sessionID)
	if err != nil {
		return "", feedback.Feedback{}, false, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	idx := len(sess.Results)
	if idx >= o.total {
		return "", feedback.Feedback{}, false, fmt.Errorf("%w: all questions already answered", ErrOutOfSequence)
	}
	if idx >= len(sess.Questions) {
		return "", feedback.Feedback{}, false, fmt.Errorf("%w: question %d not generated yet", ErrOutOfSequence, idx)
	}

	q := sess.Questions[idx]

	ans, err := quiz.ParseAnswer(q.Archetype, rawAnswer)
	if err != nil {
		return "", feedback.Feedback{}, false, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}

	verdict, err := quiz.Evaluate(q, ans)
	if err != nil {
		return "", feedback.Feedback{}, false, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}

	// The quick heuristic never counts as final truth for free text.
	if q.Archetype == quiz.ArchetypeFreeText {
		judged, err := o.feedback.JudgedVerdict(ctx, q, ans.Text)
		if err != nil {
			return "", feedback.Feedback{}, false, err
		}
		verdict = judged
	}

	userJSON, err := json.Marshal(ans)
	if err != nil {
		return "", feedback.Feedback{}, false, err
	}
	correctJSON, err := quiz.CorrectAnswer(q)
	if err != nil {
		return "", feedback.Feedback{}, false, err
	}

	fb, err := o.feedback.Feedback(ctx, q, verdict, userJSON, correctJSON)
	if err != nil {
		return "", feedback.Feedback{}, false, err
	}

	sess.Results = append(sess.Results, quiz.Result{
		ConceptID:     q.ConceptID,
		Archetype:     q.Archetype,
		Verdict:       verdict,
		UserAnswer:    userJSON,
		CorrectAnswer: correctJSON,
	})

	complete := len(sess.Results) >= o.total
	if complete {
		sess.CompletedAt = time.Now()
		if err := o.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: sess.ID,
			Kind:      store.SessionCompleted,
			Detail:    fmt.Sprintf("questions=%d", len(sess.Results)),
		}); err != nil {
			o.log.Warnw("failed to record session completion", "session", sess.ID, "error", err)
		}
		o.log.Infow("session completed", "session", sess.ID)
	} else {
		o.armPrefetchLocked(sess)
	}

	o.log.Debugw("answer recorded", "session", sess.ID, "index", idx, "archetype", q.Archetype, "verdict", verdict)
	return verdict, fb, complete, nil
}

// armPrefetchLocked starts background generation of the next ungenerated
// question. Caller holds sess.mu. The goroutine re-validates the slot
// before committing: the user may have finished, or an inline generation
// may have advanced the question list while the prefetch was in flight.
func (o *Orchestrator) armPrefetchLocked(sess *Session) {
	if sess.prefetching || sess.prefetch != nil || len(sess.Questions) >= o.total {
		return
	}

	idx := len(sess.Questions)
	sess.prefetching = true

	go func() {
		// Prefetch outlives the triggering request, so it cannot use that
		// request's context.
		q, err := o.gen.Generate(context.Background(), questiongen.Params{
			SessionID: sess.ID,
			Index:     idx,
			Total:     o.total,
			Identity:  sess.Identity,
		})

		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.prefetching = false

		if err != nil {
			// Leave the slot empty; the next request generates inline.
			o.log.Warnw("prefetch generation failed", "session", sess.ID, "index", idx, "error", err)
			return
		}

		if sess.prefetch != nil || len(sess.Questions) != idx || len(sess.Questions) >= o.total {
			o.log.Debugw("prefetch result discarded, session moved on", "session", sess.ID, "index", idx)
			return
		}
		sess.prefetch = q
		o.log.Debugw("prefetch committed", "session", sess.ID, "index", idx, "archetype", q.Archetype)
	}()
}
