package debate

import "encoding/json"

// Event is one decoded channel frame. The concrete type is driven by
// the frame's "type" discriminator; frames with a discriminator this
// client does not know decode to UnknownEvent so callers can no-op
// instead of erroring.
type Event interface {
	eventType() string
}

// Inbound frame discriminators.
const (
	eventArgument    = "argument"
	eventCivility    = "civility_analysis"
	eventCredibility = "credibility_score"
	eventModerator   = "ai_moderator"
)

// ArgumentEvent carries a full argument record, including the sender's
// own echo.
type ArgumentEvent struct {
	Argument Argument
}

func (ArgumentEvent) eventType() string { return eventArgument }

// CivilityEvent enriches an existing entry, matched by TempID.
type CivilityEvent struct {
	TempID        string   `json:"temp_id"`
	CivilityScore *float64 `json:"civility_score"`
	ToxicityScore *float64 `json:"toxicity_score"`
	Flag          *string  `json:"flag"`
}

func (CivilityEvent) eventType() string { return eventCivility }

// CredibilityEvent enriches an existing entry, matched by TempID.
// Absent fields leave the prior value untouched.
type CredibilityEvent struct {
	TempID           string   `json:"temp_id"`
	RelevanceScore   *float64 `json:"relevance_score"`
	ConsistencyScore *float64 `json:"consistency_score"`
	EvidenceScore    *float64 `json:"evidence_score"`
	OverallStrength  *float64 `json:"overall_strength"`
}

func (CredibilityEvent) eventType() string { return eventCredibility }

// ModeratorEvent announces moderator feedback. It has no TempID of its
// own; the session synthesizes a fresh moderator entry from it.
type ModeratorEvent struct {
	FollowUpQuestion string   `json:"follow_up_question"`
	FairnessWarning  *bool    `json:"fairness_warning"`
	ToxicityLabel    string   `json:"toxicity_label"`
	ToxicityScore    *float64 `json:"toxicity_score"`
	CivilityScore    *float64 `json:"civility_score"`
}

func (ModeratorEvent) eventType() string { return eventModerator }

// UnknownEvent is the no-op arm for unrecognized discriminators.
type UnknownEvent struct {
	Type string
}

func (UnknownEvent) eventType() string { return "unknown" }

// ParseEvent decodes one channel frame. A frame that is not valid JSON
// is an error and should be dropped by the caller without touching the
// ledger; a missing or unrecognized discriminator yields UnknownEvent.
func ParseEvent(data []byte) (Event, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	switch envelope.Type {
	case eventArgument:
		var arg Argument
		if err := json.Unmarshal(data, &arg); err != nil {
			return nil, err
		}
		return ArgumentEvent{Argument: arg}, nil
	case eventCivility:
		var ev CivilityEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case eventCredibility:
		var ev CredibilityEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case eventModerator:
		var ev ModeratorEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	}
	return UnknownEvent{Type: envelope.Type}, nil
}
