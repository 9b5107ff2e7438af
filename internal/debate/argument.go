package debate

import "time"

// Argument entry kinds. Anything else coming off the wire is ignored.
const (
	TypeArgument  = "argument"
	TypeSystem    = "system"
	TypeModerator = "ai_moderator"
)

// Argument is one ledger entry: a debate turn, a synthesized system
// notice, or a moderator message. Identity fields are immutable once
// the entry exists; only the enrichment scores mutate, in place, keyed
// by TempID. Enrichment fields are pointers so a partial merge can tell
// "absent from the event" apart from a zero score.
type Argument struct {
	Type     string `json:"type"`
	TempID   string `json:"temp_id"`
	DebateID int64  `json:"debate_id"`
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	Content  string `json:"content"`
	FullName string `json:"fullName"`

	Timestamp time.Time `json:"timestamp"`

	// Civility enrichment.
	CivilityScore *float64 `json:"civility_score,omitempty"`
	ToxicityScore *float64 `json:"toxicity_score,omitempty"`
	Flag          *string  `json:"flag,omitempty"`

	// Credibility enrichment.
	RelevanceScore   *float64 `json:"relevance_score,omitempty"`
	ConsistencyScore *float64 `json:"consistency_score,omitempty"`
	EvidenceScore    *float64 `json:"evidence_score,omitempty"`
	OverallStrength  *float64 `json:"overall_strength,omitempty"`

	// Moderator-only fields.
	FairnessWarning *bool  `json:"fairness_warning,omitempty"`
	ToxicityLabel   string `json:"toxicity_label,omitempty"`
}

// OutboundArgument is the single frame type the client transmits.
type OutboundArgument struct {
	Type      string    `json:"type"`
	DebateID  int64     `json:"debate_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	FullName  string    `json:"fullName"`
	Timestamp time.Time `json:"timestamp"`
	TempID    string    `json:"temp_id"`
}
