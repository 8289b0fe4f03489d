package quiz

// Role buckets for scenario framing in generated questions.
const (
	RoleStudent      = "student"
	RoleProfessional = "professional"
	RoleEducator     = "educator"
	RoleResearcher   = "researcher"
	RoleEntrepreneur = "entrepreneur"
	RoleOther        = "other"
)

// Identity is the self-reported profile captured when a session starts.
// Role steers the scenario domain of generated questions; SelfRating
// steers vocabulary and complexity, and is later compared against the
// computed mastery level.
type Identity struct {
	Age        int    `json:"age,omitempty"`
	Role       string `json:"role,omitempty"`
	SelfRating int    `json:"selfRating,omitempty"`
}

// ClampedSelfRating returns the self rating forced into [1,5], defaulting
// to 3 when unset.
func (id Identity) ClampedSelfRating() int {
	if id.SelfRating == 0 {
		return 3
	}
	if id.SelfRating < 1 {
		return 1
	}
	if id.SelfRating > 5 {
		return 5
	}
	return id.SelfRating
}
