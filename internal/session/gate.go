package session

import "github.com/debatehub/console/internal/debate"

// ParticipantState tracks where roster resolution stands. Unresolved
// means the roster fetch has not completed: compose stays blocked but
// is treated as loading, not denied.
type ParticipantState int

const (
	ParticipantUnresolved ParticipantState = iota
	ParticipantConfirmed
	ParticipantDenied
)

func (s ParticipantState) String() string {
	switch s {
	case ParticipantConfirmed:
		return "confirmed"
	case ParticipantDenied:
		return "denied"
	}
	return "unresolved"
}

// ComposeAllowed is the gate rule: sending is enabled iff the debate
// is active and the current user is a confirmed participant.
func ComposeAllowed(status debate.Status, ps ParticipantState) bool {
	return status == debate.StatusActive && ps == ParticipantConfirmed
}

// ComposeNotice is the user-facing reason the compose form is hidden,
// or empty when composing is (or may become) available.
func ComposeNotice(status debate.Status) string {
	switch status {
	case debate.StatusPending:
		return "Debate hasn't started yet. You'll be able to send arguments once it begins."
	case debate.StatusCompleted:
		return "Debate has ended. You can no longer send arguments."
	case debate.StatusArchived:
		return "Debate is archived."
	}
	return ""
}

// CurrentParticipant finds the roster entry for userID. Pure function
// of its inputs; never triggers a fetch.
func CurrentParticipant(roster []debate.Participant, userID int64) (debate.Participant, bool) {
	for _, p := range roster {
		if p.UserID == userID {
			return p, true
		}
	}
	return debate.Participant{}, false
}

// IsParticipant reports whether userID appears in the roster.
func IsParticipant(roster []debate.Participant, userID int64) bool {
	_, ok := CurrentParticipant(roster, userID)
	return ok
}
