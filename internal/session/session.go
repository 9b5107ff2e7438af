// Package session implements the live debate engine: the message
// ledger reconciliation, the lifecycle compose gate, and the
// moderation trigger. It renders nothing; any UI (the console loop,
// the observer API) reads snapshots and calls Send.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/debatehub/console/internal/debate"
	"github.com/debatehub/console/internal/identity"
)

var (
	ErrEmptyContent    = errors.New("session: argument content is empty")
	ErrComposeDisabled = errors.New("session: composing is not permitted")
	ErrNotCreator      = errors.New("session: only the debate creator may change status")
	ErrBadTransition   = errors.New("session: illegal status transition")
	ErrClosed          = errors.New("session: closed")
)

// Sender transmits outbound frames; the channel manager satisfies it.
type Sender interface {
	Send(debate.OutboundArgument) error
}

// StatusUpdater performs the authoritative lifecycle transition; the
// api client satisfies it.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, debateID int64, status debate.Status) (debate.Status, error)
}

// Observer sees every entry the moment it lands in the ledger,
// including the seed. Observers run on the event path and must not
// call back into the session.
type Observer func(debate.Argument)

// NewTempID generates a correlation id for locally authored entries.
func NewTempID() string {
	return ulid.Make().String()
}

type Config struct {
	Debate   debate.Debate
	Identity identity.Identity

	Sender    Sender
	Suggester Suggester
	Statuses  StatusUpdater

	ModerationThreshold int

	// TempID and Now are injectable for deterministic tests.
	TempID func() string
	Now    func() time.Time

	// Dispatch runs the fire-and-forget suggestion request; defaults
	// to a goroutine.
	Dispatch func(func())

	Logger    *slog.Logger
	Observers []Observer
}

type Session struct {
	mu sync.Mutex

	deb debate.Debate
	id  identity.Identity

	roster      []debate.Participant
	participant debate.Participant
	pstate      ParticipantState

	ledger  *Ledger
	trigger *Trigger
	pending []debate.Event

	sender    Sender
	suggester Suggester
	statuses  StatusUpdater

	tempID   func() string
	now      func() time.Time
	dispatch func(func())

	log       *slog.Logger
	observers []Observer

	closed bool
}

func New(cfg Config) *Session {
	tempID := cfg.TempID
	if tempID == nil {
		tempID = NewTempID
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	dispatch := cfg.Dispatch
	if dispatch == nil {
		dispatch = func(f func()) { go f() }
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Session{
		deb:       cfg.Debate,
		id:        cfg.Identity,
		pstate:    ParticipantUnresolved,
		ledger:    NewLedger(),
		trigger:   NewTrigger(cfg.ModerationThreshold),
		sender:    cfg.Sender,
		suggester: cfg.Suggester,
		statuses:  cfg.Statuses,
		tempID:    tempID,
		now:       now,
		dispatch:  dispatch,
		log:       log,
		observers: cfg.Observers,
	}
}

// Run consumes channel events until the channel closes or the context
// is cancelled. Events are handled strictly in arrival order, one at a
// time.
func (s *Session) Run(ctx context.Context, events <-chan debate.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.HandleEvent(ctx, ev)
		}
	}
}

// Seed installs the REST history. Channel events that arrived before
// the seed were held aside and are flushed here in arrival order, so
// ledger order is deterministic regardless of how the seed raced the
// first frames.
func (s *Session) Seed(ctx context.Context, history []debate.Argument) {
	s.mu.Lock()
	if s.closed || s.ledger.Seeded() {
		s.mu.Unlock()
		return
	}

	s.ledger.Seed(history)
	for _, arg := range history {
		s.notify(arg)
	}
	s.trigger.Reset(s.ledger.ArgumentCount())

	buffered := s.pending
	s.pending = nil
	var tasks []func()
	for _, ev := range buffered {
		if task := s.apply(ctx, ev); task != nil {
			tasks = append(tasks, task)
		}
	}
	s.mu.Unlock()

	for _, task := range tasks {
		s.dispatch(task)
	}
}

// HandleEvent reconciles one channel event into the ledger. Before the
// seed has been applied, events are buffered rather than applied.
func (s *Session) HandleEvent(ctx context.Context, ev debate.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if !s.ledger.Seeded() {
		s.pending = append(s.pending, ev)
		s.mu.Unlock()
		return
	}
	task := s.apply(ctx, ev)
	s.mu.Unlock()

	if task != nil {
		s.dispatch(task)
	}
}

// apply holds the lock. It returns the moderation-suggestion task to
// dispatch once the lock is released, if the trigger fired.
func (s *Session) apply(ctx context.Context, ev debate.Event) func() {
	switch e := ev.(type) {
	case debate.ArgumentEvent:
		s.ledger.Append(e.Argument)
		s.notify(e.Argument)
		return s.evaluateTrigger(ctx)
	case debate.CivilityEvent:
		s.ledger.MergeCivility(e)
	case debate.CredibilityEvent:
		s.ledger.MergeCredibility(e)
	case debate.ModeratorEvent:
		entry := s.ledger.AppendModerator(e, s.tempID(), s.deb.ID, s.now())
		s.notify(entry)
	default:
		// Unknown discriminators are ignored by design.
	}
	return nil
}

func (s *Session) notify(arg debate.Argument) {
	for _, o := range s.observers {
		o(arg)
	}
}

// evaluateTrigger holds the lock and only decides; the returned task
// runs off the event path, because the suggestion request must never
// block message delivery and its failure is invisible to the user.
func (s *Session) evaluateTrigger(ctx context.Context) func() {
	if s.suggester == nil {
		return nil
	}
	if !s.trigger.Evaluate(s.ledger.ArgumentCount()) {
		return nil
	}

	topic := s.deb.Title
	history := s.ledger.ArgumentContents()

	return func() {
		suggestion, err := s.suggester.SuggestQuestion(ctx, topic, history)
		if err != nil {
			s.log.Warn("moderation suggestion failed", "debate", s.deb.ID, "error", err)
			return
		}
		if suggestion == "" {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			// Completed after teardown: drop it.
			return
		}
		entry := s.ledger.AppendSystem(suggestion, s.tempID(), s.deb.ID, s.now())
		s.notify(entry)
	}
}

// SetRoster resolves the current user's participation from a fetched
// roster. Until it is called the gate treats participation as loading.
func (s *Session) SetRoster(roster []debate.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = roster
	if p, ok := CurrentParticipant(roster, s.id.UserID); ok {
		s.participant = p
		s.pstate = ParticipantConfirmed
	} else {
		s.participant = debate.Participant{}
		s.pstate = ParticipantDenied
	}
}

// Send validates and transmits a locally composed argument. It is
// fire-and-forget: a transmission failure is logged and swallowed, and
// no optimistic copy is appended; the entry appears when the server
// echoes it back.
func (s *Session) Send(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	if !ComposeAllowed(s.deb.Status, s.pstate) {
		return ErrComposeDisabled
	}

	frame := debate.OutboundArgument{
		Type:      debate.TypeArgument,
		DebateID:  s.deb.ID,
		UserID:    s.id.UserID,
		Role:      s.participant.Role,
		Content:   content,
		FullName:  s.id.FullName,
		Timestamp: s.now(),
		TempID:    s.tempID(),
	}
	if err := s.sender.Send(frame); err != nil {
		s.log.Warn("argument transmission failed", "debate", s.deb.ID, "error", err)
	}
	return nil
}

// UpdateStatus requests a lifecycle transition. The local status flips
// optimistically, then reconciles against the authoritative response;
// on failure the optimistic flip is rolled back and the error returned
// for the UI to surface.
func (s *Session) UpdateStatus(ctx context.Context, next debate.Status) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.id.UserID != s.deb.CreatedBy {
		s.mu.Unlock()
		return ErrNotCreator
	}
	prev := s.deb.Status
	if !prev.CanTransitionTo(next) {
		s.mu.Unlock()
		return ErrBadTransition
	}
	s.deb.Status = next
	s.mu.Unlock()

	authoritative, err := s.statuses.UpdateStatus(ctx, s.deb.ID, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.deb.Status = prev
		return err
	}
	if authoritative.Valid() {
		s.deb.Status = authoritative
	}
	return nil
}

// Close marks the session torn down. Late completions (suggestions,
// channel stragglers) become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) Debate() debate.Debate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deb
}

func (s *Session) Status() debate.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deb.Status
}

// ComposeAllowed reports whether the gate currently permits sending.
func (s *Session) ComposeAllowed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComposeAllowed(s.deb.Status, s.pstate)
}

// Notice is the user-facing reason composing is unavailable, if any.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComposeNotice(s.deb.Status)
}

func (s *Session) Participant() (debate.Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.participant, s.pstate == ParticipantConfirmed
}

func (s *Session) RosterState() ParticipantState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pstate
}

// Messages is an immutable snapshot of the ledger in display order.
func (s *Session) Messages() []debate.Argument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot()
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Len()
}
