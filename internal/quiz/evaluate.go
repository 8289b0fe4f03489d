package quiz

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Verdict classifies a submitted answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictPartial   Verdict = "partial"
	VerdictIncorrect Verdict = "incorrect"
)

// minFreeTextLength is the rune count below which a free-text answer is
// treated as too short to engage with the question.
const minFreeTextLength = 20

// Evaluate scores an answer against a question's answer key. It is a pure
// function over the structured archetypes. For free text it returns the
// quick heuristic verdict only; the authoritative verdict for that
// archetype comes from the LLM judge and is recorded separately.
func Evaluate(q *Question, ans Answer) (Verdict, error) {
	if ans.Archetype != q.Archetype {
		return "", fmt.Errorf("answer archetype %q does not match question archetype %q", ans.Archetype, q.Archetype)
	}

	switch q.Archetype {
	case ArchetypeMatch:
		return evaluateMatch(q.Match, ans.Pairs), nil
	case ArchetypeBucket:
		return evaluateBucket(q.Bucket, ans.Assignment), nil
	case ArchetypeSingleSelect:
		return evaluateSingleSelect(q.SingleSelect, ans.Selected), nil
	case ArchetypeTrueFalse:
		if ans.Bool == q.TrueFalse.Answer {
			return VerdictCorrect, nil
		}
		return VerdictIncorrect, nil
	case ArchetypeFreeText:
		return QuickFreeTextVerdict(q.FreeText, ans.Text), nil
	}
	return "", fmt.Errorf("unknown archetype %q", q.Archetype)
}

func evaluateMatch(m *MatchPayload, submitted []Pair) Verdict {
	key := make(map[Pair]bool, len(m.Pairs))
	for _, p := range m.Pairs {
		key[p] = true
	}

	correct := 0
	for _, p := range submitted {
		if key[p] {
			correct++
		}
	}

	// Full credit requires every key pair submitted and nothing extra;
	// any correct pair, even in an incomplete submission, earns partial.
	switch {
	case correct == len(m.Pairs) && len(submitted) == len(m.Pairs):
		return VerdictCorrect
	case correct > 0:
		return VerdictPartial
	default:
		return VerdictIncorrect
	}
}

func evaluateBucket(b *BucketPayload, submitted map[string]string) Verdict {
	total := len(b.Assignment)
	correct := 0
	for cardID, bucketID := range b.Assignment {
		if submitted[cardID] == bucketID {
			correct++
		}
	}

	switch {
	case correct == total:
		return VerdictCorrect
	case correct > 0:
		return VerdictPartial
	default:
		return VerdictIncorrect
	}
}

// evaluateSingleSelect requires exact set equality. No partial credit:
// over-selecting to cover every option must not pay off.
func evaluateSingleSelect(s *SingleSelectPayload, selected []string) Verdict {
	if len(selected) != len(s.CorrectIDs) {
		return VerdictIncorrect
	}

	correct := make(map[string]bool, len(s.CorrectIDs))
	for _, id := range s.CorrectIDs {
		correct[id] = true
	}
	for _, id := range selected {
		if !correct[id] {
			return VerdictIncorrect
		}
	}
	return VerdictCorrect
}

// QuickFreeTextVerdict is the synchronous first-pass verdict for a
// free-text answer: long enough, and mentioning keywords from the key
// points. It is deliberately lenient (defaults to partial) because the
// LLM-judged verdict supersedes it for feedback and mastery aggregation.
func QuickFreeTextVerdict(f *FreeTextPayload, text string) Verdict {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return VerdictIncorrect
	}
	if utf8.RuneCountInString(trimmed) < minFreeTextLength {
		return VerdictIncorrect
	}

	lower := strings.ToLower(trimmed)
	mentioned := 0
	for _, point := range f.KeyPoints {
		if mentionsKeyPoint(lower, point) {
			mentioned++
		}
	}

	switch {
	case mentioned == len(f.KeyPoints):
		return VerdictCorrect
	default:
		return VerdictPartial
	}
}

// mentionsKeyPoint reports whether any keyword of the key point appears in
// the lowercased answer. Keywords are whitespace/punctuation separated
// tokens longer than one rune.
func mentionsKeyPoint(answerLower, point string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(point), func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', '.', ';', ':', '，', '。', '、':
			return true
		}
		return false
	})
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) > 1 && strings.Contains(answerLower, tok) {
			return true
		}
	}
	return false
}
