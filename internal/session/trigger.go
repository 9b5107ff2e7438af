package session

import "context"

// Suggester is the moderation-suggestion collaborator. The api client
// satisfies it.
type Suggester interface {
	SuggestQuestion(ctx context.Context, topic string, history []string) (string, error)
}

// Trigger decides when the session should ask the moderator for a
// follow-up question: once per threshold-sized run of new arguments.
type Trigger struct {
	threshold int
	baseline  int
}

func NewTrigger(threshold int) *Trigger {
	if threshold <= 0 {
		threshold = 5
	}
	return &Trigger{threshold: threshold}
}

// Reset pins the baseline, typically to the seeded argument count so
// history alone never fires the trigger.
func (t *Trigger) Reset(count int) {
	t.baseline = count
}

// Evaluate is called once per ledger mutation pass with the current
// argument count. When the accumulation since the last firing reaches
// the threshold the baseline advances in the same pass, so one
// crossing dispatches exactly one request.
func (t *Trigger) Evaluate(count int) bool {
	if count-t.baseline >= t.threshold {
		t.baseline = count
		return true
	}
	return false
}
