package mastery

import (
	"context"

	"go.uber.org/zap"

	"github.com/anshul/litmus/internal/quiz"
)

// Service computes the overall mastery level with three concentric
// fallback rings: one batch LLM call, then per-item LLM calls, then
// verdict-based rule scores. Each degradation is logged, so a profile
// is always produced even with the provider fully down.
type Service struct {
	judge *LevelJudge
	log   *zap.SugaredLogger
}

// NewService creates a mastery Service.
func NewService(judge *LevelJudge, log *zap.SugaredLogger) *Service {
	return &Service{judge: judge, log: log}
}

// Profile builds the full mastery view for a completed session.
func (s *Service) Profile(ctx context.Context, questions []*quiz.Question, results []quiz.Result, selfRating int) Profile {
	categories, scores := Categories(results)
	return Profile{
		Categories:     categories,
		CategoryScores: scores,
		OverallLevel:   s.OverallLevel(ctx, questions, results),
		SelfRating:     selfRating,
	}
}

// OverallLevel averages per-answer mastery scores into a 1-5 level.
func (s *Service) OverallLevel(ctx context.Context, questions []*quiz.Question, results []quiz.Result) int {
	if len(results) == 0 {
		return 1
	}

	scores, err := s.judge.BatchScores(ctx, questions, results)
	if err != nil {
		s.log.Warnw("batch mastery scoring failed, degrading to per-item", "error", err)
		scores = s.itemScores(ctx, questions, results)
	}

	var sum int
	for _, sc := range scores {
		sum += sc
	}
	avg := float64(sum) / float64(len(scores))
	level := LevelForScore(avg)
	s.log.Infow("overall mastery computed", "answers", len(results), "average", avg, "level", level)
	return level
}

// itemScores is the middle ring. Any per-item failure falls through to
// the rule score for that result, so the slice is always complete.
func (s *Service) itemScores(ctx context.Context, questions []*quiz.Question, results []quiz.Result) []int {
	scores := make([]int, len(results))
	for i, r := range results {
		score, err := s.judge.ItemScore(ctx, questionFor(questions, i), r)
		if err != nil {
			s.log.Warnw("per-item mastery scoring failed, using rule score",
				"index", i, "verdict", r.Verdict, "error", err)
			score = RuleScore(r.Verdict)
		}
		scores[i] = score
	}
	return scores
}
