package archive

import (
	"context"
	"errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Open opens (or creates) the embedded archive database and migrates
// the schema. Pass "file::memory:?cache=shared" for an ephemeral store.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Transcript{}, &Record{}); err != nil {
		return nil, err
	}
	return db, nil
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateTranscript(ctx context.Context, t *Transcript) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *Repo) GetTranscriptByDebateID(ctx context.Context, debateID int64) (*Transcript, error) {
	var t Transcript
	if err := r.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) UpdateTranscriptStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).Model(&Transcript{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *Repo) AppendRecord(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// ListRecords returns a transcript's records in ASC id order, which is
// the ledger's display order.
func (r *Repo) ListRecords(ctx context.Context, transcriptID string, limit int) ([]Record, error) {
	if limit <= 0 || limit > 1000 {
		limit = 500
	}
	var recs []Record
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("id ASC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// RecentTranscripts returns the most recently updated transcripts.
func (r *Repo) RecentTranscripts(ctx context.Context, limit int) ([]Transcript, error) {
	if limit <= 0 {
		limit = 20
	}
	var ts []Transcript
	if err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&ts).Error; err != nil {
		return nil, err
	}
	return ts, nil
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
