// Package mastery turns a session's heterogeneous question results into
// the diagnostic numbers of the final report: per-concept category scores
// for the radar breakdown and a calibrated 1-5 overall level.
package mastery

import (
	"sort"

	"github.com/anshul/litmus/internal/quiz"
)

// maxCategories caps the radar breakdown so the report stays digestible.
const maxCategories = 6

// Profile is the derived mastery view. Computed fresh from results on
// every summary request, never cached.
type Profile struct {
	Categories     []string `json:"categories"`
	CategoryScores []int    `json:"scores"`
	OverallLevel   int      `json:"overallLevel"`
	SelfRating     int      `json:"selfRating"`
}

// categoryStat accumulates one concept's attempts.
type categoryStat struct {
	concept  string
	attempts int
	points   int // 100 per correct, 50 per partial
}

func (c categoryStat) score() int {
	if c.attempts == 0 {
		return 0
	}
	return c.points / c.attempts
}

// Categories groups results by concept and scores each 0-100, keeping at
// most six concepts ranked by attempt count then score.
func Categories(results []quiz.Result) ([]string, []int) {
	byConcept := make(map[string]*categoryStat)
	var order []string
	for _, r := range results {
		stat, ok := byConcept[r.ConceptID]
		if !ok {
			stat = &categoryStat{concept: r.ConceptID}
			byConcept[r.ConceptID] = stat
			order = append(order, r.ConceptID)
		}
		stat.attempts++
		switch r.Verdict {
		case quiz.VerdictCorrect:
			stat.points += 100
		case quiz.VerdictPartial:
			stat.points += 50
		case quiz.VerdictIncorrect:
		}
	}

	stats := make([]*categoryStat, 0, len(order))
	for _, c := range order {
		stats = append(stats, byConcept[c])
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].attempts != stats[j].attempts {
			return stats[i].attempts > stats[j].attempts
		}
		return stats[i].score() > stats[j].score()
	})
	if len(stats) > maxCategories {
		stats = stats[:maxCategories]
	}

	categories := make([]string, len(stats))
	scores := make([]int, len(stats))
	for i, s := range stats {
		categories[i] = s.concept
		scores[i] = s.score()
	}
	return categories, scores
}

// LevelForScore maps a 0-100 mastery average to the 1-5 level scale.
func LevelForScore(avg float64) int {
	switch {
	case avg <= 20:
		return 1
	case avg <= 40:
		return 2
	case avg <= 65:
		return 3
	case avg <= 85:
		return 4
	default:
		return 5
	}
}

// RuleScore is the innermost fallback ring: a fixed score per verdict
// when no LLM judgment is available for a question.
func RuleScore(v quiz.Verdict) int {
	switch v {
	case quiz.VerdictCorrect:
		return 80
	case quiz.VerdictPartial:
		return 50
	default:
		return 20
	}
}
