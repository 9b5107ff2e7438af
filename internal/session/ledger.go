package session

import (
	"time"

	"github.com/debatehub/console/internal/debate"
)

// FallbackModeratorContent is used when a moderator event carries no
// follow-up question.
const FallbackModeratorContent = "Moderator feedback received."

// Ledger is the ordered in-memory log backing the chat view. Append
// order is display order: entries are never reordered and never
// removed during a session. Enrichment events mutate matched entries
// in place; everything else appends.
//
// The Ledger is not safe for concurrent use on its own; the owning
// Session serializes access.
type Ledger struct {
	entries []debate.Argument
	seeded  bool
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Seed installs the REST history ahead of any channel-delivered entry.
// It applies at most once; a second call is a no-op.
func (l *Ledger) Seed(history []debate.Argument) {
	if l.seeded {
		return
	}
	l.seeded = true
	l.entries = append(l.entries, history...)
}

func (l *Ledger) Seeded() bool { return l.seeded }

func (l *Ledger) Append(arg debate.Argument) {
	l.entries = append(l.entries, arg)
}

func (l *Ledger) find(tempID string) *debate.Argument {
	if tempID == "" {
		return nil
	}
	for i := range l.entries {
		if l.entries[i].TempID == tempID {
			return &l.entries[i]
		}
	}
	return nil
}

// MergeCivility folds a civility analysis into the matched entry.
// An unmatched temp_id is a no-op: the originating message may simply
// not have arrived yet. Replaying the same event is idempotent.
func (l *Ledger) MergeCivility(ev debate.CivilityEvent) bool {
	entry := l.find(ev.TempID)
	if entry == nil {
		return false
	}
	entry.CivilityScore = ev.CivilityScore
	entry.ToxicityScore = ev.ToxicityScore
	entry.Flag = ev.Flag
	return true
}

// MergeCredibility folds credibility scores into the matched entry.
// The merge is per-field: a score absent from the event leaves the
// entry's prior value untouched.
func (l *Ledger) MergeCredibility(ev debate.CredibilityEvent) bool {
	entry := l.find(ev.TempID)
	if entry == nil {
		return false
	}
	if ev.RelevanceScore != nil {
		entry.RelevanceScore = ev.RelevanceScore
	}
	if ev.ConsistencyScore != nil {
		entry.ConsistencyScore = ev.ConsistencyScore
	}
	if ev.EvidenceScore != nil {
		entry.EvidenceScore = ev.EvidenceScore
	}
	if ev.OverallStrength != nil {
		entry.OverallStrength = ev.OverallStrength
	}
	return true
}

// AppendModerator synthesizes a moderator-authored entry from a
// moderator event and appends it.
func (l *Ledger) AppendModerator(ev debate.ModeratorEvent, tempID string, debateID int64, at time.Time) debate.Argument {
	content := ev.FollowUpQuestion
	if content == "" {
		content = FallbackModeratorContent
	}
	entry := debate.Argument{
		Type:            debate.TypeModerator,
		TempID:          tempID,
		DebateID:        debateID,
		UserID:          0,
		Role:            debate.RoleModerator,
		Content:         content,
		FullName:        "AI Moderator",
		Timestamp:       at,
		FairnessWarning: ev.FairnessWarning,
		ToxicityLabel:   ev.ToxicityLabel,
		ToxicityScore:   ev.ToxicityScore,
		CivilityScore:   ev.CivilityScore,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// AppendSystem synthesizes a local system entry (moderation trigger
// suggestions). These never ride the channel.
func (l *Ledger) AppendSystem(content, tempID string, debateID int64, at time.Time) debate.Argument {
	entry := debate.Argument{
		Type:      debate.TypeSystem,
		TempID:    tempID,
		DebateID:  debateID,
		UserID:    0,
		Role:      debate.RoleModerator,
		Content:   content,
		FullName:  "Moderator",
		Timestamp: at,
	}
	l.entries = append(l.entries, entry)
	return entry
}

func (l *Ledger) Len() int { return len(l.entries) }

// ArgumentCount is the number of argument-type entries, the figure the
// moderation trigger watches.
func (l *Ledger) ArgumentCount() int {
	n := 0
	for i := range l.entries {
		if l.entries[i].Type == debate.TypeArgument {
			n++
		}
	}
	return n
}

// ArgumentContents returns the contents of all argument-type entries
// in ledger order.
func (l *Ledger) ArgumentContents() []string {
	out := make([]string, 0, len(l.entries))
	for i := range l.entries {
		if l.entries[i].Type == debate.TypeArgument {
			out = append(out, l.entries[i].Content)
		}
	}
	return out
}

// Snapshot copies the entries for readers outside the session.
func (l *Ledger) Snapshot() []debate.Argument {
	out := make([]debate.Argument, len(l.entries))
	copy(out, l.entries)
	return out
}

// At returns the entry at index i without copying enrichment pointers'
// targets; test helper and observer convenience.
func (l *Ledger) At(i int) debate.Argument {
	return l.entries[i]
}
