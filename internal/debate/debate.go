package debate

import "time"

// Status is the server-authoritative debate lifecycle state. The client
// mirrors it optimistically on transitions it requests itself.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal step from s.
// pending -> active -> completed; archived is reachable from any state.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusArchived {
		return s != StatusArchived
	}
	switch s {
	case StatusPending:
		return next == StatusActive
	case StatusActive:
		return next == StatusCompleted
	}
	return false
}

type Debate struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Participant side roles as the server reports them. RoleModerator is
// only ever attached to locally synthesized entries (user id 0).
const (
	RoleFor       = "for_side"
	RoleAgainst   = "against_side"
	RoleNeutral   = "neutral_side"
	RoleModerator = "moderator"
)

// Participant is a user's membership in one debate. A user has at most
// one participant record per debate.
type Participant struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// User is the authenticated account as /auth/me reports it.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
