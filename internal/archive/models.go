package archive

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Transcript is the local record of one debate session, keyed by a
// client-generated ULID. One transcript per debate.
type Transcript struct {
	ID        string    `gorm:"primaryKey;type:varchar(26)" json:"transcript_id"`
	DebateID  int64     `gorm:"uniqueIndex;not null" json:"debate_id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Status    string    `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Transcript) TableName() string { return "transcripts" }

// Record is one archived ledger entry. Rows are append-only, like the
// ledger they mirror.
type Record struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TranscriptID string    `gorm:"type:varchar(26);index;not null" json:"-"`
	TempID       string    `gorm:"type:varchar(64);index" json:"temp_id"`
	Kind         string    `gorm:"type:varchar(16);not null" json:"kind"`
	UserID       int64     `json:"user_id"`
	Role         string    `gorm:"type:varchar(16)" json:"role"`
	FullName     string    `gorm:"type:varchar(128)" json:"fullName"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	SentAt       time.Time `json:"sent_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Record) TableName() string { return "transcript_records" }

// NewTranscriptID returns a fresh ULID string.
func NewTranscriptID() string {
	return ulid.Make().String()
}
