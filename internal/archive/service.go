package archive

import (
	"context"
	"log/slog"
	"time"

	"github.com/debatehub/console/internal/debate"
)

// Service keeps a local, offline-readable copy of every session the
// console sits in. Archiving is best-effort: a write failure is logged
// and never interrupts the live session.
type Service struct {
	repo *Repo
	log  *slog.Logger
}

func NewService(repo *Repo, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log}
}

// OpenTranscript returns the transcript for a debate, creating it on
// first sight and refreshing the stored title/status otherwise.
func (s *Service) OpenTranscript(ctx context.Context, deb debate.Debate) (*Transcript, error) {
	existing, err := s.repo.GetTranscriptByDebateID(ctx, deb.ID)
	if err == nil {
		_ = s.repo.UpdateTranscriptStatus(ctx, existing.ID, string(deb.Status))
		existing.Status = string(deb.Status)
		return existing, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	t := &Transcript{
		ID:       NewTranscriptID(),
		DebateID: deb.ID,
		Title:    deb.Title,
		Status:   string(deb.Status),
	}
	if err := s.repo.CreateTranscript(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Sink returns a session observer that mirrors every ledger entry into
// the transcript.
func (s *Service) Sink(transcriptID string) func(debate.Argument) {
	return func(arg debate.Argument) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rec := &Record{
			TranscriptID: transcriptID,
			TempID:       arg.TempID,
			Kind:         arg.Type,
			UserID:       arg.UserID,
			Role:         arg.Role,
			FullName:     arg.FullName,
			Content:      arg.Content,
			SentAt:       arg.Timestamp,
		}
		if err := s.repo.AppendRecord(ctx, rec); err != nil {
			s.log.Warn("archive append failed", "transcript", transcriptID, "error", err)
		}
	}
}

// SetStatus records the final status at teardown.
func (s *Service) SetStatus(ctx context.Context, transcriptID string, status debate.Status) {
	if err := s.repo.UpdateTranscriptStatus(ctx, transcriptID, string(status)); err != nil {
		s.log.Warn("archive status update failed", "transcript", transcriptID, "error", err)
	}
}
