package quiz

import "fmt"

// Validate checks the structural invariants a question must satisfy before
// it may enter a session: non-empty content, an answer key that references
// only declared ids, and a key that covers every item it is supposed to
// cover. Generated questions that fail validation are rejected as
// malformed rather than patched up.
func (q *Question) Validate() error {
	if !q.Archetype.Valid() {
		return fmt.Errorf("unknown archetype %q", q.Archetype)
	}
	if q.Prompt == "" {
		return fmt.Errorf("empty question_text")
	}
	if q.ConceptID == "" {
		return fmt.Errorf("empty concept")
	}

	switch q.Archetype {
	case ArchetypeMatch:
		return q.validateMatch()
	case ArchetypeBucket:
		return q.validateBucket()
	case ArchetypeSingleSelect:
		return q.validateSingleSelect()
	case ArchetypeTrueFalse:
		return q.validateTrueFalse()
	case ArchetypeFreeText:
		return q.validateFreeText()
	}
	return fmt.Errorf("unhandled archetype %q", q.Archetype)
}

func (q *Question) validateMatch() error {
	m := q.Match
	if m == nil {
		return fmt.Errorf("match: missing payload")
	}
	if len(m.Left) == 0 || len(m.Right) == 0 {
		return fmt.Errorf("match: empty option columns")
	}
	if len(m.Pairs) != len(m.Left) {
		return fmt.Errorf("match: answer_key has %d pairs for %d left items", len(m.Pairs), len(m.Left))
	}

	leftIDs := itemIDSet(m.Left)
	rightIDs := itemIDSet(m.Right)
	seenLeft := make(map[string]bool, len(m.Pairs))
	for _, p := range m.Pairs {
		if !leftIDs[p.Left] {
			return fmt.Errorf("match: answer_key references unknown left id %q", p.Left)
		}
		if !rightIDs[p.Right] {
			return fmt.Errorf("match: answer_key references unknown right id %q", p.Right)
		}
		if seenLeft[p.Left] {
			return fmt.Errorf("match: left id %q paired more than once", p.Left)
		}
		seenLeft[p.Left] = true
	}
	return nil
}

func (q *Question) validateBucket() error {
	b := q.Bucket
	if b == nil {
		return fmt.Errorf("bucket: missing payload")
	}
	if len(b.Cards) == 0 || len(b.Buckets) == 0 {
		return fmt.Errorf("bucket: empty cards or buckets")
	}
	if len(b.Assignment) != len(b.Cards) {
		return fmt.Errorf("bucket: answer_key covers %d of %d cards", len(b.Assignment), len(b.Cards))
	}

	cardIDs := itemIDSet(b.Cards)
	bucketIDs := itemIDSet(b.Buckets)
	for cardID, bucketID := range b.Assignment {
		if !cardIDs[cardID] {
			return fmt.Errorf("bucket: answer_key references unknown card %q", cardID)
		}
		if !bucketIDs[bucketID] {
			return fmt.Errorf("bucket: answer_key references unknown bucket %q", bucketID)
		}
	}
	return nil
}

func (q *Question) validateSingleSelect() error {
	s := q.SingleSelect
	if s == nil {
		return fmt.Errorf("single_select: missing payload")
	}
	if len(s.Options) < 2 {
		return fmt.Errorf("single_select: need at least 2 options, got %d", len(s.Options))
	}
	if len(s.CorrectIDs) == 0 {
		return fmt.Errorf("single_select: empty correct_options")
	}
	optionIDs := itemIDSet(s.Options)
	for _, id := range s.CorrectIDs {
		if !optionIDs[id] {
			return fmt.Errorf("single_select: correct_options references unknown option %q", id)
		}
	}
	return nil
}

func (q *Question) validateTrueFalse() error {
	if q.TrueFalse == nil {
		return fmt.Errorf("true_false: missing payload")
	}
	if q.TrueFalse.Statement == "" {
		return fmt.Errorf("true_false: empty statement")
	}
	return nil
}

func (q *Question) validateFreeText() error {
	f := q.FreeText
	if f == nil {
		return fmt.Errorf("free_text: missing payload")
	}
	if f.Scenario == "" {
		return fmt.Errorf("free_text: empty scenario")
	}
	if len(f.KeyPoints) < 2 || len(f.KeyPoints) > 4 {
		return fmt.Errorf("free_text: need 2-4 key_points, got %d", len(f.KeyPoints))
	}
	return nil
}

func itemIDSet(items []Item) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it.ID] = true
	}
	return set
}
